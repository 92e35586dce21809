package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"pictoroute/internal/adapters/cache"
	"pictoroute/internal/adapters/geocoding"
	"pictoroute/internal/adapters/repositories"
	"pictoroute/internal/adapters/vision"
	"pictoroute/internal/api"
	"pictoroute/internal/config"
	"pictoroute/internal/platform/db"
	"pictoroute/internal/ports"
	"pictoroute/internal/services"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (SQL/Redis cache, Nominatim, Claude) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	geocodeCache, closeCache, err := openGeocodeCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	geocoder := geocoding.NewNominatimGeocoder(geocoding.NominatimConfig{
		BaseURL:     cfg.NominatimURL,
		UserAgent:   cfg.NominatimUserAgent,
		CountryCode: cfg.NominatimCountry,
		RPS:         cfg.NominatimRPS,
	}, geocodeCache)

	extractor, err := vision.NewClaudeExtractor(vision.ClaudeConfig{
		APIKey:  cfg.AnthropicAPIKey,
		Model:   cfg.AnthropicModel,
		BaseURL: cfg.AnthropicURL,
	})
	if err != nil {
		return err
	}

	home := cfg.Home
	router := api.NewRouter(api.RouterConfig{
		Extractor:   extractor,
		Geocoder:    geocoder,
		Concurrency: cfg.GeocodeConcurrency,
		Plan: services.PlanOptions{
			Home:     &home,
			MaxStops: cfg.MaxStops,
			Routing:  cfg.Routing,
		},
		MaxUploadBytes: cfg.MaxUploadBytes,
		CORSOrigins:    cfg.CORSOrigins,
		FrontendDir:    cfg.FrontendDir,
	})

	// Timeouts are tuned for image extraction and cold-cache geocoding (external API latency).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      300 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening addr=:%s", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openGeocodeCache builds the configured cache backend. The returned close
// function releases its connections and is never nil.
func openGeocodeCache(ctx context.Context, cfg *config.Config) (ports.GeocodeCache, func(), error) {
	switch cfg.GeocodeCache {
	case config.CacheNone:
		log.Println("Geocode cache disabled")
		return nil, func() {}, nil

	case config.CacheRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("connect redis %q: %w", cfg.RedisAddr, err)
		}
		log.Printf("Geocode cache backend=redis addr=%s ttl=%s", cfg.RedisAddr, cfg.RedisTTL)
		return cache.NewRedisGeocodeCache(client, cfg.RedisTTL), func() { client.Close() }, nil

	default:
		conn, err := openAndInit(cfg)
		if err != nil {
			return nil, nil, err
		}
		c, err := cache.NewSQLCacheForDriver(cfg.DBDriver, conn)
		if err != nil {
			conn.Close()
			return nil, nil, err
		}
		log.Printf("Geocode cache backend=%s", cfg.DBDriver)
		return c, func() { conn.Close() }, nil
	}
}

func openAndInit(cfg *config.Config) (*sql.DB, error) {
	conn, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, err
	}

	// Create the cache table on startup for local runs.
	if err := repositories.InitSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

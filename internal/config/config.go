package config

import (
	"errors"
	"fmt"
	"pictoroute/internal/domain"
	"pictoroute/internal/routing"
	"time"
)

const (
	CacheSQL   = "sql"
	CacheRedis = "redis"
	CacheNone  = "none"
)

type Config struct {
	Port string

	DBDriver    string // "sqlite" or "pgx"
	DBPath      string
	DatabaseURL string
	SeedPath    string

	GeocodeCache string
	RedisAddr    string
	RedisTTL     time.Duration

	NominatimURL       string
	NominatimUserAgent string
	NominatimCountry   string
	NominatimRPS       float64
	GeocodeConcurrency int

	AnthropicAPIKey string
	AnthropicModel  string
	AnthropicURL    string

	CORSOrigins    []string
	FrontendDir    string
	MaxUploadBytes int64

	Home    domain.Address
	Routing routing.Options

	// MaxStops bounds addresses per shortest-path request; 0 means unlimited.
	MaxStops int
}

// DSN returns the data source name for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "pgx" {
		return c.DatabaseURL
	}
	return c.DBPath
}

// Load reads the configuration from the environment and validates it.
// All problems are reported together.
func Load() (*Config, error) {
	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	c := &Config{
		Port:               Get("PORT", "8000"),
		DBDriver:           Get("DB_DRIVER", "sqlite"),
		DBPath:             Get("DB_PATH", "data/app.db"),
		DatabaseURL:        Get("DATABASE_URL", ""),
		SeedPath:           Get("SEED_PATH", "data/seeds/addresses.json"),
		GeocodeCache:       Get("GEOCODE_CACHE", CacheSQL),
		RedisAddr:          Get("REDIS_ADDR", "localhost:6379"),
		NominatimURL:       Get("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		NominatimUserAgent: Get("NOMINATIM_USER_AGENT", "pictoroute/1.0"),
		NominatimCountry:   Get("NOMINATIM_COUNTRY", "nl"),
		AnthropicAPIKey:    Get("ANTHROPIC_API_KEY", Get("CLAUDE_API_KEY", "")),
		AnthropicModel:     Get("ANTHROPIC_MODEL", ""),
		AnthropicURL:       Get("ANTHROPIC_URL", ""),
		CORSOrigins:        GetList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		FrontendDir:        Get("FRONTEND_DIR", "frontend/build"),
	}

	var err error
	c.RedisTTL, err = GetDuration("REDIS_TTL", 30*24*time.Hour)
	collect(err)
	c.NominatimRPS, err = GetFloat("NOMINATIM_RPS", 1)
	collect(err)
	c.GeocodeConcurrency, err = GetInt("GEOCODE_CONCURRENCY", 4)
	collect(err)

	uploadMB, err := GetInt("MAX_UPLOAD_MB", 32)
	collect(err)
	c.MaxUploadBytes = int64(uploadMB) << 20

	c.Routing.ChunkSize, err = GetInt("ROUTE_CHUNK_SIZE", routing.DefaultChunkSize)
	collect(err)
	c.Routing.TimeLimit, err = GetDuration("ROUTE_TIME_LIMIT", 5*time.Second)
	collect(err)
	c.Routing.OpenPath, err = GetBool("ROUTE_OPEN_PATH", false)
	collect(err)
	c.MaxStops, err = GetInt("ROUTE_MAX_STOPS", 500)
	collect(err)

	home, err := loadHome()
	collect(err)
	c.Home = home

	switch c.DBDriver {
	case "sqlite":
	case "pgx":
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when DB_DRIVER=pgx"))
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER: unsupported driver %q (want sqlite or pgx)", c.DBDriver))
	}

	switch c.GeocodeCache {
	case CacheSQL, CacheRedis, CacheNone:
	default:
		errs = append(errs, fmt.Errorf("GEOCODE_CACHE: unsupported cache %q (want sql, redis or none)", c.GeocodeCache))
	}

	if c.AnthropicAPIKey == "" {
		errs = append(errs, errors.New("ANTHROPIC_API_KEY is required"))
	}
	if c.NominatimRPS <= 0 {
		errs = append(errs, errors.New("NOMINATIM_RPS must be positive"))
	}
	if c.GeocodeConcurrency < 1 {
		errs = append(errs, errors.New("GEOCODE_CONCURRENCY must be at least 1"))
	}
	if uploadMB < 1 {
		errs = append(errs, errors.New("MAX_UPLOAD_MB must be at least 1"))
	}
	if c.Routing.ChunkSize < 2 {
		errs = append(errs, errors.New("ROUTE_CHUNK_SIZE must be at least 2"))
	}
	if c.Routing.TimeLimit < 0 {
		errs = append(errs, errors.New("ROUTE_TIME_LIMIT must not be negative"))
	}
	if c.MaxStops < 0 {
		errs = append(errs, errors.New("ROUTE_MAX_STOPS must not be negative"))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("load config: %w", errors.Join(errs...))
	}
	return c, nil
}

// loadHome reads the HOME_* overrides on top of domain.DefaultHome.
func loadHome() (domain.Address, error) {
	def := domain.DefaultHome
	home := domain.Address{
		StreetName:  Get("HOME_STREET", def.StreetName),
		HouseNumber: Get("HOME_HOUSE_NUMBER", def.HouseNumber),
		PostalCode:  Get("HOME_POSTAL_CODE", def.PostalCode),
		City:        Get("HOME_CITY", def.City),
	}

	lat, err := GetFloat("HOME_LAT", def.Coordinates.Lat)
	if err != nil {
		return domain.Address{}, err
	}
	lon, err := GetFloat("HOME_LON", def.Coordinates.Lon)
	if err != nil {
		return domain.Address{}, err
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return domain.Address{}, fmt.Errorf("HOME_LAT/HOME_LON: coordinates out of range (%f, %f)", lat, lon)
	}
	home.Coordinates = &domain.Coordinates{Lat: lat, Lon: lon}

	if err := home.Validate(); err != nil {
		return domain.Address{}, fmt.Errorf("HOME_*: %w", err)
	}
	return home, nil
}

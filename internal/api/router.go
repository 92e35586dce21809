package api

import (
	"log"
	"net/http"
	"os"
	"pictoroute/internal/api/handlers"
	"pictoroute/internal/ports"
	"pictoroute/internal/services"
)

type RouterConfig struct {
	Extractor   ports.AddressExtractor
	Geocoder    ports.Geocoder
	Concurrency int
	Plan        services.PlanOptions

	MaxUploadBytes int64
	CORSOrigins    []string

	// FrontendDir is served at "/" when it exists.
	FrontendDir string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	addrHandler := &handlers.AddressHandler{
		Extractor:      cfg.Extractor,
		Geocoder:       cfg.Geocoder,
		Concurrency:    cfg.Concurrency,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}
	pathHandler := &handlers.PathHandler{Options: cfg.Plan}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/process-images", addrHandler.ProcessImages)
	mux.HandleFunc("/refetch-coordinates", addrHandler.RefetchCoordinates)
	mux.HandleFunc("/get-shortest-path", pathHandler.ShortestPath)

	if cfg.FrontendDir != "" {
		if fi, err := os.Stat(cfg.FrontendDir); err == nil && fi.IsDir() {
			mux.Handle("/", http.FileServer(http.Dir(cfg.FrontendDir)))
		} else {
			log.Printf("frontend dir not served: dir=%q", cfg.FrontendDir)
		}
	}

	return requestIDMiddleware(loggingMiddleware(newCORS(cfg.CORSOrigins).Handler(mux)))
}

package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"pictoroute/internal/domain"
	"pictoroute/internal/ports"
	"strings"
)

// Initialize the database schema. The statements are valid for both
// SQLite and Postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lon DOUBLE PRECISION NOT NULL,
        lat DOUBLE PRECISION NOT NULL
    );
	`

	statements := []string{
		createGeocodeCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type coordinatesSeed struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type AddressSeed struct {
	StreetName  string           `json:"street_name"`
	HouseNumber string           `json:"house_number"`
	PostalCode  string           `json:"postal_code"`
	City        string           `json:"city"`
	Coordinates *coordinatesSeed `json:"coordinates"`
}

// Populate the geocode cache with already resolved addresses from a JSON file.
// Entries are keyed the same way the geocoder keys its lookups, so seeded
// addresses never reach the upstream gazetteer. Returns the number of entries stored.
func SeedFromJSON(ctx context.Context, cache ports.GeocodeCache, jsonPath string) (int, error) {
	if cache == nil {
		return 0, errors.New("seed geocode cache: cache is nil")
	}

	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed geocode cache: read %q: %w", jsonPath, err)
	}

	var data []AddressSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return 0, fmt.Errorf("seed geocode cache: parse json: %w", err)
	}

	rows := make(map[string]domain.Coordinates, len(data))
	for i, item := range data {
		addr := domain.Address{
			StreetName:  strings.TrimSpace(item.StreetName),
			HouseNumber: strings.TrimSpace(item.HouseNumber),
			PostalCode:  strings.TrimSpace(item.PostalCode),
			City:        strings.TrimSpace(item.City),
		}
		if err := addr.Validate(); err != nil {
			return 0, fmt.Errorf("seed geocode cache: item at index %d: %w", i+1, err)
		}

		c := item.Coordinates
		if c == nil || c.Latitude == nil || c.Longitude == nil {
			return 0, fmt.Errorf("seed geocode cache: item at index %d: coordinates are required", i+1)
		}
		if *c.Latitude < -90 || *c.Latitude > 90 || *c.Longitude < -180 || *c.Longitude > 180 {
			return 0, fmt.Errorf("seed geocode cache: item at index %d: coordinates out of range", i+1)
		}

		rows[domain.NormalizeKey(addr.Text())] = domain.Coordinates{Lat: *c.Latitude, Lon: *c.Longitude}
	}

	if err := cache.PutMany(ctx, rows); err != nil {
		return 0, fmt.Errorf("seed geocode cache: %w", err)
	}

	return len(rows), nil
}

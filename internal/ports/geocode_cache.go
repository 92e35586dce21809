package ports

import (
	"context"
	"pictoroute/internal/domain"
)

// Port: persistent cache mapping normalized address keys to coordinates.
type GeocodeCache interface {
	// Fetch cached coordinates; keys that are not cached are absent from the result.
	GetMany(ctx context.Context, keys []string) (map[string]domain.Coordinates, error)
	// Store key -> coordinate mappings, overwriting existing entries.
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}

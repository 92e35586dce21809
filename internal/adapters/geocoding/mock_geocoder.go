package geocoding

import (
	"context"
	"pictoroute/internal/domain"
	"sync"
)

// MockGeocoder resolves queries from a fixed table, keyed by normalized text.
// It records every query it receives.
type MockGeocoder struct {
	mu      sync.Mutex
	m       map[string]domain.Coordinates
	queries []string
}

func NewMockGeocoder(known map[string]domain.Coordinates) *MockGeocoder {
	m := make(map[string]domain.Coordinates, len(known))
	for q, c := range known {
		m[domain.NormalizeKey(q)] = c
	}
	return &MockGeocoder{m: m}
}

func (g *MockGeocoder) Geocode(ctx context.Context, query string) (domain.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinates{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.queries = append(g.queries, query)

	c, ok := g.m[domain.NormalizeKey(query)]
	if !ok {
		return domain.Coordinates{}, &ErrGeocodingFailed{Address: query, Reason: "no results found"}
	}
	return c, nil
}

// Queries returns a copy of the queries received so far.
func (g *MockGeocoder) Queries() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.queries...)
}

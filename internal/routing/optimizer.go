package routing

import (
	"fmt"

	"pictoroute/internal/domain"
)

// Waypoint bundles an opaque payload with its resolved coordinates.
type Waypoint[T any] struct {
	Coords  *domain.Coordinates
	Payload T
}

// Result is the outcome of a single Optimize call.
type Result[T any] struct {
	Length    float64 // kilometres
	Waypoints []T     // payloads in visiting order, pinned start and end included
	Links     []string
	Tour      Tour
	Stats     Stats
}

// Optimize orders waypoints into a short tour from start to end and packages
// the result with its length and navigation links. label renders a payload as
// the address text embedded in the links.
//
// Every waypoint must carry coordinates: a missing one fails fast with a
// *MissingCoordinateError instead of being dropped from the route.
func Optimize[T any](waypoints []Waypoint[T], start, end int, label func(T) string, opts Options) (*Result[T], error) {
	points := make([]domain.Coordinates, len(waypoints))
	labels := make([]string, len(waypoints))
	for i, w := range waypoints {
		if w.Coords == nil {
			return nil, fmt.Errorf("optimize: %w", &MissingCoordinateError{Index: i})
		}
		points[i] = *w.Coords
		labels[i] = label(w.Payload)
	}

	tour, err := BuildTour(points, start, end)
	if err != nil {
		return nil, fmt.Errorf("optimize: %w", err)
	}

	tour, stats := Improve(tour, points, opts)
	if err := ValidateTour(tour, len(points), start, end); err != nil {
		return nil, fmt.Errorf("optimize: improved tour: %w", err)
	}

	chunkSize := opts.ChunkSize
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}
	links, err := BuildLinks(tour, labels, chunkSize)
	if err != nil {
		return nil, fmt.Errorf("optimize: %w", err)
	}

	ordered := make([]T, len(tour))
	for pos, idx := range tour {
		ordered[pos] = waypoints[idx].Payload
	}

	return &Result[T]{
		Length:    Length(tour, points, opts.OpenPath),
		Waypoints: ordered,
		Links:     links,
		Tour:      tour,
		Stats:     stats,
	}, nil
}

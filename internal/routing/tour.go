package routing

import (
	"fmt"
	"math"

	"pictoroute/internal/domain"
)

// Tour is a visiting order expressed as indices into a points slice.
// A valid tour is a permutation whose first and last elements are the
// pinned start and end indices.
type Tour []int

// BuildTour constructs an initial tour with a greedy nearest-neighbor walk.
//
// The walk starts at start, repeatedly moves to the closest unvisited point
// and finishes at end, which is held back until every other point has been
// visited. Ties are broken by the lowest index so the result is deterministic.
// It does not attempt global optimization; Improve refines the result.
func BuildTour(points []domain.Coordinates, start, end int) (Tour, error) {
	n := len(points)
	if n < 2 {
		return nil, fmt.Errorf("build tour: need at least 2 points, got %d: %w", n, ErrInvalidInput)
	}
	if start < 0 || start >= n || end < 0 || end >= n {
		return nil, fmt.Errorf("build tour: start=%d end=%d out of range [0,%d): %w", start, end, n, ErrInvalidInput)
	}
	if start == end {
		return nil, fmt.Errorf("build tour: start and end index must differ (both %d): %w", start, ErrInvalidInput)
	}

	visited := make([]bool, n)
	visited[start] = true
	visited[end] = true

	tour := make(Tour, 0, n)
	tour = append(tour, start)

	for remaining := n - 2; remaining > 0; remaining-- {
		last := points[tour[len(tour)-1]]

		next := -1
		best := math.Inf(1)
		// Strict comparison keeps the lowest index on ties.
		for i := 0; i < n; i++ {
			if visited[i] {
				continue
			}
			if d := Haversine(last, points[i]); next == -1 || d < best {
				best = d
				next = i
			}
		}

		visited[next] = true
		tour = append(tour, next)
	}

	return append(tour, end), nil
}

// Length returns the tour length in kilometres. Unless openPath is set, the
// closing edge from the last point back to the first is included.
func Length(tour Tour, points []domain.Coordinates, openPath bool) float64 {
	if len(tour) < 2 {
		return 0
	}

	total := 0.0
	for i := 0; i < len(tour)-1; i++ {
		total += Haversine(points[tour[i]], points[tour[i+1]])
	}
	if !openPath {
		total += Haversine(points[tour[len(tour)-1]], points[tour[0]])
	}
	return total
}

// ValidateTour checks that tour is a permutation of [0,n) pinned to start and end.
func ValidateTour(tour Tour, n, start, end int) error {
	if len(tour) != n {
		return fmt.Errorf("validate tour: length %d, want %d: %w", len(tour), n, ErrInvalidInput)
	}
	if n == 0 {
		return nil
	}
	if tour[0] != start || tour[n-1] != end {
		return fmt.Errorf("validate tour: endpoints (%d,%d), want (%d,%d): %w", tour[0], tour[n-1], start, end, ErrInvalidInput)
	}

	seen := make([]bool, n)
	for pos, idx := range tour {
		if idx < 0 || idx >= n {
			return fmt.Errorf("validate tour: index %d at position %d out of range: %w", idx, pos, ErrInvalidInput)
		}
		if seen[idx] {
			return fmt.Errorf("validate tour: index %d repeated at position %d: %w", idx, pos, ErrInvalidInput)
		}
		seen[idx] = true
	}
	return nil
}

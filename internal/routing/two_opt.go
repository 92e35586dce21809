package routing

import (
	"time"

	"pictoroute/internal/domain"
)

// minGain is the smallest length decrease (km) accepted as an improvement.
// It keeps floating-point noise from triggering moves that change nothing.
const minGain = 1e-9

// Options tunes the optimizer. The zero value runs 2-opt to a local optimum
// with the cyclic objective and the default chunk size.
type Options struct {
	// OpenPath drops the closing edge (last → first) from the reported length.
	// The 2-opt search is unaffected: both endpoints are pinned, so the
	// closing edge is the same for every candidate tour.
	OpenPath bool

	// MaxPasses bounds the number of full 2-opt passes; 0 means unlimited.
	MaxPasses int

	// TimeLimit bounds the wall-clock time spent in Improve; 0 means unlimited.
	TimeLimit time.Duration

	// ChunkSize is the number of points per navigation link; 0 means DefaultChunkSize.
	ChunkSize int
}

// Stats reports what Improve did.
type Stats struct {
	Passes    int
	Moves     int
	Truncated bool // a pass or time budget expired before a local optimum was reached
}

// Improve refines tour in place with 2-opt local search and returns it.
//
// A candidate move reverses tour[i..k] for interior positions 1 <= i < k <= len-2,
// so the first and last elements never move. Reversing the segment only
// replaces the edges (a,b) and (c,d) with (a,c) and (b,d), where
// a=tour[i-1], b=tour[i], c=tour[k], d=tour[k+1]; the length change is computed
// from those four edges in O(1).
//
// Scanning follows lexicographic (i,k) order; an improving move is applied as
// soon as it is found and the scan continues on the modified tour. Passes are
// repeated until one applies no move, or until a budget in opts expires.
// Tours with fewer than four points have no interior pair and are returned as is.
func Improve(tour Tour, points []domain.Coordinates, opts Options) (Tour, Stats) {
	var stats Stats

	n := len(tour)
	if n < 4 {
		return tour, stats
	}

	var deadline time.Time
	if opts.TimeLimit > 0 {
		deadline = time.Now().Add(opts.TimeLimit)
	}

	for {
		if opts.MaxPasses > 0 && stats.Passes >= opts.MaxPasses {
			stats.Truncated = true
			return tour, stats
		}
		stats.Passes++

		improved := false
		for i := 1; i <= n-3; i++ {
			if !deadline.IsZero() && time.Now().After(deadline) {
				stats.Truncated = true
				return tour, stats
			}

			for k := i + 1; k <= n-2; k++ {
				a := points[tour[i-1]]
				b := points[tour[i]]
				c := points[tour[k]]
				d := points[tour[k+1]]

				delta := Haversine(a, c) + Haversine(b, d) - Haversine(a, b) - Haversine(c, d)
				if delta < -minGain {
					reverse(tour, i, k)
					stats.Moves++
					improved = true
				}
			}
		}

		if !improved {
			return tour, stats
		}
	}
}

func reverse(tour Tour, i, k int) {
	for i < k {
		tour[i], tour[k] = tour[k], tour[i]
		i++
		k--
	}
}

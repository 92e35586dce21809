package routing

import (
	"math/rand/v2"

	"pictoroute/internal/domain"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// randomPoints scatters n points over roughly the province of Utrecht.
func randomPoints(r *rand.Rand, n int) []domain.Coordinates {
	points := make([]domain.Coordinates, n)
	for i := range points {
		points[i] = domain.Coordinates{
			Lat: 51.9 + r.Float64()*0.4,
			Lon: 4.9 + r.Float64()*0.7,
		}
	}
	return points
}

// withPinnedHome prepends and appends the same home coordinate to points,
// mirroring how the service pins the home base to both ends.
func withPinnedHome(home domain.Coordinates, points []domain.Coordinates) []domain.Coordinates {
	out := make([]domain.Coordinates, 0, len(points)+2)
	out = append(out, home)
	out = append(out, points...)
	return append(out, home)
}

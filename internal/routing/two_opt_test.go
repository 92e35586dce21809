package routing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pictoroute/internal/domain"
)

func TestImproveNeverIncreasesLength(t *testing.T) {
	r := newRand(2024)
	for trial := 0; trial < 30; trial++ {
		n := 4 + r.IntN(40)
		points := withPinnedHome(home, randomPoints(r, n))
		start, end := 0, len(points)-1

		tour, err := BuildTour(points, start, end)
		require.NoError(t, err)
		before := Length(tour, points, false)

		tour, _ = Improve(tour, points, Options{})
		require.NoError(t, ValidateTour(tour, len(points), start, end))
		assert.LessOrEqual(t, Length(tour, points, false), before+1e-9, "trial %d", trial)
	}
}

func TestImproveIsIdempotentAtLocalOptimum(t *testing.T) {
	points := withPinnedHome(home, randomPoints(newRand(99), 30))

	tour, err := BuildTour(points, 0, len(points)-1)
	require.NoError(t, err)
	tour, _ = Improve(tour, points, Options{})

	first := append(Tour(nil), tour...)
	firstLen := Length(first, points, false)

	again, stats := Improve(tour, points, Options{})
	assert.Equal(t, first, again)
	assert.Equal(t, firstLen, Length(again, points, false))
	assert.Equal(t, 1, stats.Passes)
	assert.Zero(t, stats.Moves)
	assert.False(t, stats.Truncated)
}

func TestImproveRemovesCrossing(t *testing.T) {
	// Unit square walked as start → (1,1) → (0,1) → (1,0) → end crosses itself.
	points := []domain.Coordinates{
		{Lat: 0, Lon: 0},
		{Lat: 0.01, Lon: 0.01},
		{Lat: 0.01, Lon: 0},
		{Lat: 0, Lon: 0.01},
		{Lat: 0, Lon: 0.0001},
	}
	tour := Tour{0, 1, 2, 3, 4}
	before := Length(tour, points, false)

	tour, stats := Improve(tour, points, Options{})
	assert.Equal(t, Tour{0, 2, 1, 3, 4}, tour)
	assert.Less(t, Length(tour, points, false), before)
	assert.Equal(t, 1, stats.Moves)
}

func TestImproveShortToursAreNoop(t *testing.T) {
	points := withPinnedHome(home, []domain.Coordinates{{Lat: 52.2, Lon: 5.5}})

	for _, tour := range []Tour{{0, 2}, {0, 1, 2}} {
		got, stats := Improve(append(Tour(nil), tour...), points, Options{})
		assert.Equal(t, tour, got)
		assert.Zero(t, stats.Passes)
	}
}

func TestImproveRespectsPassBudget(t *testing.T) {
	points := withPinnedHome(home, randomPoints(newRand(5), 40))
	// Identity order over random points is far from a local optimum.
	tour := make(Tour, len(points))
	for i := range tour {
		tour[i] = i
	}

	_, stats := Improve(tour, points, Options{MaxPasses: 1})
	assert.Equal(t, 1, stats.Passes)
	assert.True(t, stats.Truncated)
	require.NoError(t, ValidateTour(tour, len(points), 0, len(points)-1))
}

func TestImproveStopsAtTimeLimit(t *testing.T) {
	points := withPinnedHome(home, randomPoints(newRand(7), 200))

	tour, err := BuildTour(points, 0, len(points)-1)
	require.NoError(t, err)
	before := Length(tour, points, false)

	tour, stats := Improve(tour, points, Options{TimeLimit: time.Nanosecond})

	assert.True(t, stats.Truncated)
	assert.Equal(t, 1, stats.Passes)
	require.NoError(t, ValidateTour(tour, len(points), 0, len(points)-1))
	assert.LessOrEqual(t, Length(tour, points, false), before+1e-9)
}

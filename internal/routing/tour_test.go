package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pictoroute/internal/domain"
)

var home = domain.Coordinates{Lat: 52.1588, Lon: 5.3820}

func TestBuildTourVisitsNearerPointFirst(t *testing.T) {
	west := domain.Coordinates{Lat: 52.10, Lon: 5.10} // ~20.3 km from home
	east := domain.Coordinates{Lat: 52.20, Lon: 5.50} // ~9.3 km from home

	points := withPinnedHome(home, []domain.Coordinates{west, east})

	tour, err := BuildTour(points, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, Tour{0, 2, 1, 3}, tour)
}

func TestBuildTourTieBreaksOnLowestIndex(t *testing.T) {
	same := domain.Coordinates{Lat: 52.2, Lon: 5.4}
	points := withPinnedHome(home, []domain.Coordinates{same, same, same})

	tour, err := BuildTour(points, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, Tour{0, 1, 2, 3, 4}, tour)
}

func TestBuildTourIsPinnedPermutation(t *testing.T) {
	r := newRand(42)
	for _, n := range []int{2, 3, 4, 7, 25, 60} {
		points := randomPoints(r, n)
		start, end := n-1, 0

		tour, err := BuildTour(points, start, end)
		require.NoError(t, err, "n=%d", n)
		require.NoError(t, ValidateTour(tour, n, start, end), "n=%d", n)
	}
}

func TestBuildTourInvalidInput(t *testing.T) {
	points := randomPoints(newRand(1), 5)

	tests := []struct {
		name       string
		points     []domain.Coordinates
		start, end int
	}{
		{"start equals end", points, 2, 2},
		{"too few points", points[:1], 0, 1},
		{"start out of range", points, -1, 3},
		{"end out of range", points, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildTour(tt.points, tt.start, tt.end)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestLengthCyclicAndOpen(t *testing.T) {
	west := domain.Coordinates{Lat: 52.10, Lon: 5.10}
	east := domain.Coordinates{Lat: 52.20, Lon: 5.50}
	points := []domain.Coordinates{home, east, west}
	tour := Tour{0, 1, 2}

	open := Haversine(home, east) + Haversine(east, west)
	assert.InDelta(t, open, Length(tour, points, true), 1e-9)
	assert.InDelta(t, open+Haversine(west, home), Length(tour, points, false), 1e-9)
	assert.Zero(t, Length(Tour{0}, points, false))
}

func TestValidateTour(t *testing.T) {
	assert.NoError(t, ValidateTour(Tour{0, 2, 1, 3}, 4, 0, 3))
	assert.ErrorIs(t, ValidateTour(Tour{0, 2, 3}, 4, 0, 3), ErrInvalidInput)
	assert.ErrorIs(t, ValidateTour(Tour{1, 2, 0, 3}, 4, 0, 3), ErrInvalidInput)
	assert.ErrorIs(t, ValidateTour(Tour{0, 2, 2, 3}, 4, 0, 3), ErrInvalidInput)
	assert.ErrorIs(t, ValidateTour(Tour{0, 9, 1, 3}, 4, 0, 3), ErrInvalidInput)
}

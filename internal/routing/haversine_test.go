package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pictoroute/internal/domain"
)

func TestHaversineReferenceDistances(t *testing.T) {
	tests := []struct {
		name string
		a, b domain.Coordinates
		want float64
	}{
		{"home to west", domain.Coordinates{Lat: 52.1588, Lon: 5.3820}, domain.Coordinates{Lat: 52.10, Lon: 5.10}, 20.3295},
		{"home to east", domain.Coordinates{Lat: 52.1588, Lon: 5.3820}, domain.Coordinates{Lat: 52.20, Lon: 5.50}, 9.2585},
		{"west to east", domain.Coordinates{Lat: 52.10, Lon: 5.10}, domain.Coordinates{Lat: 52.20, Lon: 5.50}, 29.4698},
		{"amsterdam to utrecht", domain.Coordinates{Lat: 52.3676, Lon: 4.9041}, domain.Coordinates{Lat: 52.0907, Lon: 5.1214}, 34.1621},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Haversine(tt.a, tt.b), 0.1)
		})
	}
}

func TestHaversineSymmetryAndIdentity(t *testing.T) {
	points := randomPoints(newRand(7), 50)

	for i, a := range points {
		assert.Zero(t, Haversine(a, a), "point %d", i)
		for j, b := range points {
			assert.Equal(t, Haversine(a, b), Haversine(b, a), "pair (%d,%d)", i, j)
			assert.GreaterOrEqual(t, Haversine(a, b), 0.0)
		}
	}
}

package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"pictoroute/internal/adapters/cache"
	"pictoroute/internal/domain"
	"pictoroute/internal/platform/httpx"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGeocoder(t *testing.T, h http.HandlerFunc, c *cache.RedisGeocodeCache) *NominatimGeocoder {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg := NominatimConfig{
		BaseURL:     srv.URL,
		UserAgent:   "pictoroute-test",
		CountryCode: "NL",
		RPS:         1000,
		Retry:       httpx.RetryPolicy{MaxAttempts: 2, Backoff: time.Millisecond},
	}
	if c == nil {
		return NewNominatimGeocoder(cfg, nil)
	}
	return NewNominatimGeocoder(cfg, c)
}

func writeResults(w http.ResponseWriter, results []nominatimResponse) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}

func TestNominatimGeocodeSuccess(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "nl", r.URL.Query().Get("countrycodes"))
		assert.Equal(t, "eemplein 65 3812ea amersfoort", r.URL.Query().Get("q"))
		assert.Equal(t, "pictoroute-test", r.Header.Get("User-Agent"))

		writeResults(w, []nominatimResponse{{Lat: "52.1588444", Lon: "5.3820278", DisplayName: "Eemplein 65"}})
	}, nil)

	c, err := g.Geocode(context.Background(), "Eemplein 65  3812EA Amersfoort")
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinates{Lat: 52.1588444, Lon: 5.3820278}, c)
}

func TestNominatimGeocodeNotFound(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		writeResults(w, []nominatimResponse{})
	}, nil)

	_, err := g.Geocode(context.Background(), "Nonexistent 1 Nowhere")

	var gf *ErrGeocodingFailed
	require.True(t, errors.As(err, &gf))
	assert.Equal(t, "no results found", gf.Reason)
}

func TestNominatimGeocodeInvalidLatitude(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		writeResults(w, []nominatimResponse{{Lat: "north", Lon: "5.38"}})
	}, nil)

	_, err := g.Geocode(context.Background(), "Kamp 1 Amersfoort")

	var gf *ErrGeocodingFailed
	require.True(t, errors.As(err, &gf))
	assert.Equal(t, "invalid latitude", gf.Reason)
}

func TestNominatimGeocodeAddressFallsBackWithoutPostalCode(t *testing.T) {
	var queries []string
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		queries = append(queries, q)
		if strings.Contains(q, "3811") {
			writeResults(w, nil)
			return
		}
		writeResults(w, []nominatimResponse{{Lat: "52.155", Lon: "5.389"}})
	}, nil)

	addr := domain.Address{StreetName: "Langestraat", HouseNumber: "84", PostalCode: "3811AB84", City: "Amersfoort"}
	c, err := g.GeocodeAddress(context.Background(), addr)
	require.NoError(t, err)

	assert.Equal(t, domain.Coordinates{Lat: 52.155, Lon: 5.389}, c)
	assert.Equal(t, []string{"langestraat 84 3811ab amersfoort", "langestraat 84 amersfoort"}, queries)
}

func TestNominatimGeocodeAddressRetriesUpstreamErrors(t *testing.T) {
	var calls atomic.Int32
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}, nil)

	_, err := g.GeocodeAddress(context.Background(), domain.DefaultHome)
	require.Error(t, err)

	// A 503 on the first query is reported as a geocoding failure after the
	// retry budget, so the fallback query is attempted too.
	assert.Equal(t, int32(4), calls.Load())
}

func TestNominatimGeocodeAddressStopsOnCancellation(t *testing.T) {
	var calls atomic.Int32
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.GeocodeAddress(ctx, domain.DefaultHome)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.Load())
}

func TestNominatimGeocodeUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	rc := cache.NewRedisGeocodeCache(client, 0)

	var calls atomic.Int32
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeResults(w, []nominatimResponse{{Lat: "52.1588444", Lon: "5.3820278"}})
	}, rc)

	ctx := context.Background()
	first, err := g.Geocode(ctx, "Eemplein 65 3812EA Amersfoort")
	require.NoError(t, err)
	second, err := g.Geocode(ctx, "eemplein 65 3812ea  AMERSFOORT")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, mr.Exists("geocode:eemplein 65 3812ea amersfoort"))
}

func TestNominatimGeocodeEmptyQuery(t *testing.T) {
	g := NewNominatimGeocoder(NominatimConfig{}, nil)

	_, err := g.Geocode(context.Background(), "   ")

	var gf *ErrGeocodingFailed
	assert.True(t, errors.As(err, &gf))
}

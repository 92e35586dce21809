package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"pictoroute/internal/domain"
	"pictoroute/internal/platform/httpx"
	"pictoroute/internal/platform/obs"
	"pictoroute/internal/ports"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ErrGeocodingFailed is returned when an address cannot be geocoded.
type ErrGeocodingFailed struct {
	Address string
	Reason  string
}

func (e *ErrGeocodingFailed) Error() string {
	return fmt.Sprintf("geocoding failed for address: %s - %s", e.Address, e.Reason)
}

type nominatimResponse struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NominatimConfig configures NominatimGeocoder. Zero values fall back to the
// public OpenStreetMap instance and its usage policy of one request per second.
type NominatimConfig struct {
	BaseURL     string
	UserAgent   string
	CountryCode string  // optional ISO 3166-1 alpha-2 filter, e.g. "nl"
	RPS         float64 // upstream requests per second
	Timeout     time.Duration
	Retry       httpx.RetryPolicy
}

// NominatimGeocoder implements Geocoder using the OpenStreetMap Nominatim search API.
//
// It coordinates:
//   - Address normalization
//   - Persistent geocode caching
//   - Client-side rate limiting
//   - External API calls with retry/backoff
//
// The geocoder is safe for concurrent use.
type NominatimGeocoder struct {
	client    *http.Client
	baseURL   string
	userAgent string
	country   string
	limiter   *rate.Limiter
	retry     httpx.RetryPolicy
	cache     ports.GeocodeCache
}

func NewNominatimGeocoder(cfg NominatimConfig, cache ports.GeocodeCache) *NominatimGeocoder {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "pictoroute/1.0"
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &NominatimGeocoder{
		client:    &http.Client{Timeout: cfg.Timeout},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		country:   strings.ToLower(strings.TrimSpace(cfg.CountryCode)),
		limiter:   rate.NewLimiter(rate.Limit(cfg.RPS), 1),
		retry:     cfg.Retry,
		cache:     cache,
	}
}

// GeocodeAddress resolves a structured address, trying the full text first
// and falling back to street, house number and city when the postal code
// yields no match.
func (g *NominatimGeocoder) GeocodeAddress(ctx context.Context, addr domain.Address) (domain.Coordinates, error) {
	attempts := []string{addr.Text(), addr.ShortText()}

	var lastErr error
	for i, q := range attempts {
		if i > 0 && q == attempts[i-1] {
			continue
		}

		c, err := g.Geocode(ctx, q)
		if err == nil {
			return c, nil
		}
		lastErr = err

		var gf *ErrGeocodingFailed
		if !errors.As(err, &gf) {
			// Transport or context failure: another query variant will not help.
			return domain.Coordinates{}, err
		}
	}

	return domain.Coordinates{}, lastErr
}

// Geocode resolves free-form address text, consulting the cache first.
func (g *NominatimGeocoder) Geocode(ctx context.Context, query string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "nominatim.Geocode")(&err)

	key := domain.NormalizeKey(query)
	if key == "" {
		return domain.Coordinates{}, &ErrGeocodingFailed{Address: query, Reason: "empty query"}
	}

	// Check persistent geocode cache before issuing external API calls.
	if g.cache != nil {
		hits, err := g.cache.GetMany(ctx, []string{key})
		if err != nil {
			log.Printf("req_id=%s geocode cache read failed: %v", obs.RequestID(ctx), err)
		} else if c, ok := hits[key]; ok {
			return c, nil
		}
	}

	c, err := g.search(ctx, key)
	if err != nil {
		return domain.Coordinates{}, err
	}

	if g.cache != nil {
		if err := g.cache.PutMany(ctx, map[string]domain.Coordinates{key: c}); err != nil {
			log.Printf("req_id=%s geocode cache write failed: %v", obs.RequestID(ctx), err)
		}
	}

	return c, nil
}

func (g *NominatimGeocoder) search(ctx context.Context, query string) (domain.Coordinates, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return domain.Coordinates{}, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	if g.country != "" {
		params.Set("countrycodes", g.country)
	}
	endpoint := g.baseURL + "/search?" + params.Encode()

	resp, err := httpx.DoWithRetry(ctx, g.client, g.retry, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", g.userAgent)
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		var se *httpx.StatusError
		if errors.As(err, &se) {
			return domain.Coordinates{}, &ErrGeocodingFailed{Address: query, Reason: se.Error()}
		}
		return domain.Coordinates{}, fmt.Errorf("nominatim search %q: %w", query, err)
	}
	defer resp.Body.Close()

	var results []nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Coordinates{}, &ErrGeocodingFailed{Address: query, Reason: "decode response: " + err.Error()}
	}

	if len(results) == 0 {
		return domain.Coordinates{}, &ErrGeocodingFailed{Address: query, Reason: "no results found"}
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, &ErrGeocodingFailed{Address: query, Reason: "invalid latitude"}
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, &ErrGeocodingFailed{Address: query, Reason: "invalid longitude"}
	}

	log.Printf("req_id=%s geocoded query=%q lat=%.6f lon=%.6f display_name=%q",
		obs.RequestID(ctx), query, lat, lon, results[0].DisplayName)

	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"pictoroute/internal/domain"
	"pictoroute/internal/platform/obs"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "geocode:"

type redisCoordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RedisGeocodeCache stores address -> coordinate mappings as JSON strings
// under "geocode:<address>" keys. A zero TTL keeps entries forever.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

// Fetch cached coordinates for the given addresses with a single MGET.
func (r *RedisGeocodeCache) GetMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.redis.GetMany")(&err)

	if r.Client == nil {
		return nil, errors.New("geocode cache: redis client is nil")
	}

	uniq := uniqueKeys(addresses)
	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	keys := make([]string, len(uniq))
	for i, a := range uniq {
		keys[i] = redisKeyPrefix + a
	}

	vals, err := r.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: redis mget: %w", err)
	}

	out := make(map[string]domain.Coordinates, len(uniq))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			// nil marks a missing key.
			continue
		}

		var c redisCoordinates
		if err := json.Unmarshal([]byte(s), &c); err != nil {
			return nil, fmt.Errorf("get geocode cache: decode %q: %w", uniq[i], err)
		}
		out[uniq[i]] = domain.Coordinates{Lat: c.Lat, Lon: c.Lon}
	}

	return out, nil
}

// Store address -> coordinate mappings in one pipelined round trip.
func (r *RedisGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if r.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	if len(results) == 0 {
		return nil
	}

	pipe := r.Client.Pipeline()
	for addr, c := range results {
		if strings.TrimSpace(addr) == "" {
			return fmt.Errorf("insert geocode cache: empty address key")
		}

		b, err := json.Marshal(redisCoordinates{Lat: c.Lat, Lon: c.Lon})
		if err != nil {
			return fmt.Errorf("insert geocode cache coord=%q: %w", addr, err)
		}
		pipe.Set(ctx, redisKeyPrefix+addr, b, r.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert geocode cache: redis pipeline: %w", err)
	}

	return nil
}

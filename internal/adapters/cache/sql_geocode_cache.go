package cache

import (
	"context"
	"database/sql"
	"pictoroute/internal/domain"
)

// SQLGeocodeCache is the Postgres (pgx) flavour of the geocode cache. Keys are
// looked up with a single array parameter and written with ON CONFLICT upserts.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

func (s *SQLGeocodeCache) GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error) {
	return getMany(ctx, s.DB, postgresDialect, addresses)
}

func (s *SQLGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	return putMany(ctx, s.DB, postgresDialect, results)
}

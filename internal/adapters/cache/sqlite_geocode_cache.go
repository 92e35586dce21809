package cache

import (
	"context"
	"database/sql"
	"pictoroute/internal/domain"
)

// SQLite backed cache mapping address keys to geographic coordinates.
// Address keys are expected to be consistent (e.g., normalized)
// by the caller.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

func (s *SqliteGeocodeCache) GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error) {
	return getMany(ctx, s.DB, sqliteDialect, addresses)
}

func (s *SqliteGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	return putMany(ctx, s.DB, sqliteDialect, results)
}

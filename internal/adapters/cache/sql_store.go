package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"pictoroute/internal/domain"
	"pictoroute/internal/platform/obs"
	"strings"
)

// geocodeDialect is the backend-specific SQL for the geocode_cache table.
type geocodeDialect struct {
	name string
	// selectQuery returns the lookup statement and its arguments for a
	// non-empty set of unique keys.
	selectQuery func(keys []string) (string, []any)
	// upsert takes (address, lon, lat).
	upsert string
}

var sqliteDialect = geocodeDialect{
	name: "sqlite",
	selectQuery: func(keys []string) (string, []any) {
		args := make([]any, 0, len(keys))
		for _, k := range keys {
			args = append(args, k)
		}

		// SQLite does not support binding slices directly in an IN (...) clause.
		// Only the placeholder structure is interpolated; all values remain parameterized.
		q := fmt.Sprintf(`
	SELECT address, lon, lat
    FROM geocode_cache
    WHERE address IN (%s);
	`, strings.TrimSuffix(strings.Repeat("?,", len(keys)), ","))
		return q, args
	},
	upsert: `
	INSERT OR REPLACE INTO geocode_cache (address, lon, lat)
    VALUES (?, ?, ?);
	`,
}

var postgresDialect = geocodeDialect{
	name: "postgres",
	selectQuery: func(keys []string) (string, []any) {
		return `
	SELECT address, lon, lat
    FROM geocode_cache
    WHERE address = ANY($1::text[]);
	`, []any{keys}
	},
	upsert: `
	INSERT INTO geocode_cache (address, lon, lat)
    VALUES ($1, $2, $3)
	ON CONFLICT (address) DO UPDATE
	SET lon = EXCLUDED.lon,
		lat = EXCLUDED.lat;
	`,
}

// getMany fetches cached coordinates; keys without an entry are absent from the result.
func getMany(
	ctx context.Context,
	db *sql.DB,
	d geocodeDialect,
	addresses []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode."+d.name+".GetMany")(&err)

	if db == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	uniq := uniqueKeys(addresses)
	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	q, args := d.selectQuery(uniq)
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Coordinates, len(uniq))
	for rows.Next() {
		var addr string
		var lon, lat float64
		if err := rows.Scan(&addr, &lon, &lat); err != nil {
			return nil, fmt.Errorf("get geocode cache: scan rows: %w", err)
		}
		out[addr] = domain.Coordinates{Lon: lon, Lat: lat}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get geocode cache: row iteration: %w", err)
	}

	return out, nil
}

// putMany stores all mappings in one transaction; an empty key aborts it.
func putMany(ctx context.Context, db *sql.DB, d geocodeDialect, results map[string]domain.Coordinates) error {
	if db == nil {
		return errors.New("geocode cache: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, d.upsert)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for addr, c := range results {
		if strings.TrimSpace(addr) == "" {
			return errors.New("insert geocode cache: empty address key")
		}

		if _, err := stmt.ExecContext(ctx, addr, c.Lon, c.Lat); err != nil {
			return fmt.Errorf("insert geocode cache key=%q: %w", addr, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert geocode cache commit: %w", err)
	}

	return nil
}

// uniqueKeys trims keys and drops empty and duplicate entries, keeping order.
func uniqueKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	uniq := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}

		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		uniq = append(uniq, k)
	}
	return uniq
}

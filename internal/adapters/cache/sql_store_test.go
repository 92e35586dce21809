package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostgresDialectSelect(t *testing.T) {
	q, args := postgresDialect.selectQuery([]string{"kamp 1 amersfoort", "eemplein 65 amersfoort"})

	assert.Contains(t, q, "WHERE address = ANY($1::text[])")
	assert.Equal(t, []any{[]string{"kamp 1 amersfoort", "eemplein 65 amersfoort"}}, args)
}

func TestPostgresDialectUpsert(t *testing.T) {
	assert.Contains(t, postgresDialect.upsert, "VALUES ($1, $2, $3)")
	assert.Contains(t, postgresDialect.upsert, "ON CONFLICT (address) DO UPDATE")
	assert.Contains(t, postgresDialect.upsert, "lat = EXCLUDED.lat")
}

func TestSqliteDialectSelect(t *testing.T) {
	q, args := sqliteDialect.selectQuery([]string{"a", "b", "c"})

	assert.Contains(t, q, "WHERE address IN (?,?,?)")
	assert.Equal(t, []any{"a", "b", "c"}, args)

	q, _ = sqliteDialect.selectQuery([]string{"a"})
	assert.Contains(t, q, "IN (?)")
}

func TestSQLGeocodeCacheNilDB(t *testing.T) {
	c := NewSQLGeocodeCache(nil)

	_, err := c.GetMany(context.Background(), []string{"a"})
	assert.Error(t, err)
	assert.Error(t, c.PutMany(context.Background(), nil))
}

func TestSQLGeocodeCacheEmptyInputsSkipDB(t *testing.T) {
	// The Postgres SQL is invalid on SQLite, so success means no statement ran.
	c := &SQLGeocodeCache{DB: newTestDB(t)}

	got, err := c.GetMany(context.Background(), []string{" ", ""})
	assert.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, c.PutMany(context.Background(), nil))
}

func TestUniqueKeys(t *testing.T) {
	assert.Equal(t, []string{"b", "a"}, uniqueKeys([]string{" b", "a", "", "b ", "a"}))
}

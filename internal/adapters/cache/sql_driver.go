package cache

import (
	"database/sql"
	"fmt"
	"pictoroute/internal/platform/db"
	"pictoroute/internal/ports"
)

// NewSQLCacheForDriver returns the geocode cache implementation matching the
// SQL dialect of driver.
func NewSQLCacheForDriver(driver string, conn *sql.DB) (ports.GeocodeCache, error) {
	switch driver {
	case db.DriverSQLite:
		return NewSqliteGeocodeCache(conn), nil
	case db.DriverPostgres:
		return NewSQLGeocodeCache(conn), nil
	default:
		return nil, fmt.Errorf("geocode cache: unsupported driver %q", driver)
	}
}

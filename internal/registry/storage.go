package registry

import (
	"database/sql"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Storage drivers accepted by OpenDB. The memory driver never reaches here;
// callers wire MemoryDocumentRepository directly.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// OpenDB opens a bun database handle for the configured driver and DSN.
func OpenDB(driver, dsn string) (*bun.DB, error) {
	switch driver {
	case DriverSQLite:
		sqlDB, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to open sqlite database").
				WithTextCode("STORAGE_OPEN_FAILED")
		}
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case DriverPostgres:
		sqlDB, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to open postgres database").
				WithTextCode("STORAGE_OPEN_FAILED")
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, goerrors.New("unknown storage driver: "+driver, goerrors.CategoryValidation).
			WithTextCode("STORAGE_DRIVER_UNKNOWN")
	}
}

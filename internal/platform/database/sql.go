package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"   // driver "postgres"
	_ "modernc.org/sqlite" // driver "sqlite"
)

// Driver names registered with database/sql.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// OpenSQL opens a database/sql pool for driver and verifies it with a ping.
// sqlite is limited to a single connection so writers never contend for the file lock.
func OpenSQL(ctx context.Context, driver, dsn string, maxConns int32) (*sqlx.DB, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(int(maxConns))
		db.SetMaxIdleConns(int(maxConns))
		db.SetConnMaxLifetime(defaultMaxConnLifetime)
		db.SetConnMaxIdleTime(defaultMaxConnIdleTime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database (%s): %w", RedactDSN(dsn), err)
	}

	if driver == DriverSQLite {
		if _, err := db.ExecContext(ctx, `PRAGMA journal_mode=WAL;`); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("enable WAL: %w", err)
		}
	}
	return db, nil
}

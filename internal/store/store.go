package store

import (
	"context"

	"bookly/internal/book"
	"bookly/internal/config"
	"bookly/internal/platform/database"
)

// Store bundles the book repository with the pool it was built on.
type Store struct {
	Books book.Repository
	ping  func(context.Context) error
	close func()
}

// Open constructs the connection pool for the configured driver, creates the
// schema if absent and returns the repository bound to that pool.
func Open(ctx context.Context, cfg config.Config) (*Store, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres, config.DriverSQLite:
		db, err := database.OpenSQL(ctx, cfg.DBDriver, cfg.DatabaseURL, cfg.MaxConns)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureSchemaSQL(ctx, db, cfg.DBDriver); err != nil {
			_ = db.Close()
			return nil, err
		}
		dialect := book.DialectPostgres
		if cfg.DBDriver == config.DriverSQLite {
			dialect = book.DialectSQLite
		}
		return &Store{
			Books: book.NewSQLRepo(db, dialect, cfg.QueryTimeout),
			ping:  db.PingContext,
			close: func() { _ = db.Close() },
		}, nil
	default:
		pool, err := database.NewPool(ctx, cfg.DatabaseURL, cfg.MaxConns)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureSchemaPool(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Store{
			Books: book.NewPostgresRepo(pool, cfg.QueryTimeout),
			ping:  pool.Ping,
			close: pool.Close,
		}, nil
	}
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Close releases every pooled connection.
func (s *Store) Close() {
	s.close()
}

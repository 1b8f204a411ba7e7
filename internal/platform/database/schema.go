package database

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// schemaStatements returns the CREATE statements for the given schema file.
func schemaStatements(name string) ([]string, error) {
	raw, err := schemaFS.ReadFile("schema/" + name + ".sql")
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", name, err)
	}
	var stmts []string
	for _, s := range strings.Split(string(raw), ";") {
		if s = strings.TrimSpace(s); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts, nil
}

// EnsureSchemaPool creates the books table through a pgx pool if it does not exist.
func EnsureSchemaPool(ctx context.Context, pool *pgxpool.Pool) error {
	stmts, err := schemaStatements("postgres")
	if err != nil {
		return err
	}
	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// EnsureSchemaSQL creates the books table through database/sql if it does not exist.
func EnsureSchemaSQL(ctx context.Context, db *sqlx.DB, driver string) error {
	name := "postgres"
	if driver == DriverSQLite {
		name = "sqlite"
	}
	stmts, err := schemaStatements(name)
	if err != nil {
		return err
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

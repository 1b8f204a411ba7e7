package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepo stores books through a pgx connection pool.
type PostgresRepo struct {
	db      *pgxpool.Pool
	sql     statements
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, sql: newStatements(DialectPostgres), timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// session acquires one pooled connection for the duration of fn.
func (r *PostgresRepo) session(ctx context.Context, fn func(conn *pgxpool.Conn) error) error {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()
	return fn(conn)
}

func (r *PostgresRepo) List(ctx context.Context) ([]Book, error) {
	query, args, err := r.sql.list()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var out []Book
	err = r.session(ctx, func(conn *pgxpool.Conn) error {
		timeoutCtx, cancel := r.withTimeout(ctx)
		defer cancel()
		rows, err := conn.Query(timeoutCtx, query, args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, pgx.RowToStructByName[Book])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return out, nil
}

func (r *PostgresRepo) Get(ctx context.Context, uid uuid.UUID) (Book, error) {
	var b Book
	err := r.session(ctx, func(conn *pgxpool.Conn) error {
		var err error
		b, err = r.get(ctx, conn, uid)
		return err
	})
	return b, err
}

func (r *PostgresRepo) Create(ctx context.Context, b Book) (Book, error) {
	query, args, err := r.sql.insert(b)
	if err != nil {
		return Book{}, fmt.Errorf("build insert query: %w", err)
	}

	var out Book
	err = r.session(ctx, func(conn *pgxpool.Conn) error {
		if err := r.exec(ctx, conn, query, args, nil); err != nil {
			return fmt.Errorf("insert book: %w", err)
		}
		var err error
		out, err = r.get(ctx, conn, b.UID)
		return err
	})
	return out, err
}

func (r *PostgresRepo) Update(ctx context.Context, uid uuid.UUID, apply func(*Book)) (Book, error) {
	var out Book
	err := r.session(ctx, func(conn *pgxpool.Conn) error {
		current, err := r.get(ctx, conn, uid)
		if err != nil {
			return err
		}
		apply(&current)
		current.UID = uid

		query, args, err := r.sql.update(current)
		if err != nil {
			return fmt.Errorf("build update query: %w", err)
		}
		var affected int64
		if err := r.exec(ctx, conn, query, args, &affected); err != nil {
			return fmt.Errorf("update book: %w", err)
		}
		if affected == 0 {
			return ErrNotFound
		}
		out, err = r.get(ctx, conn, uid)
		return err
	})
	return out, err
}

func (r *PostgresRepo) Delete(ctx context.Context, uid uuid.UUID) error {
	query, args, err := r.sql.delete(uid)
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}
	return r.session(ctx, func(conn *pgxpool.Conn) error {
		var affected int64
		if err := r.exec(ctx, conn, query, args, &affected); err != nil {
			return fmt.Errorf("delete book: %w", err)
		}
		if affected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *PostgresRepo) get(ctx context.Context, conn *pgxpool.Conn, uid uuid.UUID) (Book, error) {
	query, args, err := r.sql.get(uid)
	if err != nil {
		return Book{}, fmt.Errorf("build get query: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := conn.Query(timeoutCtx, query, args...)
	if err != nil {
		return Book{}, fmt.Errorf("get book: %w", err)
	}
	b, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Book])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, fmt.Errorf("get book: %w", err)
	}
	return b, nil
}

func (r *PostgresRepo) exec(ctx context.Context, conn *pgxpool.Conn, query string, args []any, affected *int64) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := conn.Exec(timeoutCtx, query, args...)
	if err != nil {
		return err
	}
	if affected != nil {
		*affected = tag.RowsAffected()
	}
	return nil
}

package book

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SQLRepo stores books through database/sql, used for the lib/pq and sqlite drivers.
type SQLRepo struct {
	db      *sqlx.DB
	sql     statements
	timeout time.Duration
}

// NewSQLRepo creates a repository for db; dialect is DialectPostgres or DialectSQLite.
func NewSQLRepo(db *sqlx.DB, dialect string, timeout time.Duration) *SQLRepo {
	return &SQLRepo{db: db, sql: newStatements(dialect), timeout: timeout}
}

func (r *SQLRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// session pins one connection from the pool for the duration of fn.
func (r *SQLRepo) session(ctx context.Context, fn func(conn *sqlx.Conn) error) error {
	conn, err := r.db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()
	return fn(conn)
}

func (r *SQLRepo) List(ctx context.Context) ([]Book, error) {
	query, args, err := r.sql.list()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var out []Book
	err = r.session(ctx, func(conn *sqlx.Conn) error {
		timeoutCtx, cancel := r.withTimeout(ctx)
		defer cancel()
		return conn.SelectContext(timeoutCtx, &out, query, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return out, nil
}

func (r *SQLRepo) Get(ctx context.Context, uid uuid.UUID) (Book, error) {
	var b Book
	err := r.session(ctx, func(conn *sqlx.Conn) error {
		var err error
		b, err = r.get(ctx, conn, uid)
		return err
	})
	return b, err
}

func (r *SQLRepo) Create(ctx context.Context, b Book) (Book, error) {
	query, args, err := r.sql.insert(b)
	if err != nil {
		return Book{}, fmt.Errorf("build insert query: %w", err)
	}

	var out Book
	err = r.session(ctx, func(conn *sqlx.Conn) error {
		if _, err := r.exec(ctx, conn, query, args); err != nil {
			return fmt.Errorf("insert book: %w", err)
		}
		var err error
		out, err = r.get(ctx, conn, b.UID)
		return err
	})
	return out, err
}

func (r *SQLRepo) Update(ctx context.Context, uid uuid.UUID, apply func(*Book)) (Book, error) {
	var out Book
	err := r.session(ctx, func(conn *sqlx.Conn) error {
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
		affected, err := r.exec(ctx, conn, query, args)
		if err != nil {
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

func (r *SQLRepo) Delete(ctx context.Context, uid uuid.UUID) error {
	query, args, err := r.sql.delete(uid)
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}
	return r.session(ctx, func(conn *sqlx.Conn) error {
		affected, err := r.exec(ctx, conn, query, args)
		if err != nil {
			return fmt.Errorf("delete book: %w", err)
		}
		if affected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *SQLRepo) get(ctx context.Context, conn *sqlx.Conn, uid uuid.UUID) (Book, error) {
	query, args, err := r.sql.get(uid)
	if err != nil {
		return Book{}, fmt.Errorf("build get query: %w", err)
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var b Book
	if err := conn.GetContext(timeoutCtx, &b, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, fmt.Errorf("get book: %w", err)
	}
	return b, nil
}

func (r *SQLRepo) exec(ctx context.Context, conn *sqlx.Conn, query string, args []any) (int64, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	res, err := conn.ExecContext(timeoutCtx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

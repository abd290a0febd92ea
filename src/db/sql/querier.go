package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"caudal-server/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx so the same statements
// run standalone or inside a transaction. Begin on a pgx.Tx opens a
// savepoint.
type Querier interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// mapError translates driver errors into the shared storage sentinels.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%s: %w", op, models.ErrConflict)
		case foreignKeyViolation:
			return fmt.Errorf("%s: %w", op, models.ErrInUse)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func notFoundIfNone(op string, tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}

// nullableDate converts an optional date into a driver argument.
func nullableDate(d *models.Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

func dateFromNullable(t *time.Time) *models.Date {
	if t == nil {
		return nil
	}
	d := models.DateOf(*t)
	return &d
}

// upperBound turns a zero "to" date into nil so SQL can treat it as open.
func upperBound(to models.Date) *time.Time {
	if to.IsZero() {
		return nil
	}
	t := to.Time
	return &t
}

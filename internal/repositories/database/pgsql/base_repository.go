package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/shop_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db querier
}

// begin starts a new database transaction
func begin(ctx context.Context, db interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}) (pgx.Tx, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// rollback rolls back a transaction, ignoring one that already finished
func rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// notFound turns pgx.ErrNoRows into a NotFound AppError and wraps anything else.
func notFound(err error, entity, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.New(apperrors.ErrNotFound, "%s %s not found", entity, id)
	}
	return fmt.Errorf("failed to find %s %s: %w", entity, id, err)
}

// duplicate turns a unique violation into a Duplicate AppError and wraps anything else.
func duplicate(err error, format string, args ...any) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperrors.New(apperrors.ErrDuplicate, format, args...)
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// requireRow reports NotFound when an UPDATE touched nothing.
func requireRow(tag pgconn.CommandTag, entity, id string) error {
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.ErrNotFound, "%s %s not found", entity, id)
	}
	return nil
}

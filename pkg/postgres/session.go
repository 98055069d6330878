package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// WithSession runs fn on a connection taken from the pool for the duration
// of the call. The connection is returned to the pool on every exit path.
func WithSession(ctx context.Context, db *sqlx.DB, fn func(conn *sqlx.Conn) error) error {
	const op = "postgres.WithSession"

	conn, err := db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("%s: failed to acquire connection: %w", op, err)
	}
	defer conn.Close()

	return fn(conn)
}

// WithTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back when fn fails or panics.
func WithTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) (err error) {
	const op = "postgres.WithTx"

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%s: failed to rollback transaction: %w", op, errors.Join(err, rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return nil
}

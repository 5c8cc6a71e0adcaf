package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// TxFunc runs inside a unit of work. Returning an error rolls the whole unit back.
type TxFunc func(ctx context.Context, tx *sqlx.Tx) error

// Transactor opens a unit of work on the write connection.
type Transactor interface {
	WithTx(ctx context.Context, fn TxFunc) error
}

type transactorImpl struct {
	db *Connection
}

func NewTransactor(db *Connection) Transactor {
	return &transactorImpl{db: db}
}

// WithTx commits once after fn returns nil. Errors and panics roll back.
func (t *transactorImpl) WithTx(ctx context.Context, fn TxFunc) (err error) {
	tx, err := t.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin transaction")

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			rollback(tx)

			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		rollback(tx)

		return err
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit transaction")

		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func rollback(tx *sqlx.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		log.Error().Err(err).Msg("failed to rollback transaction")
	}
}

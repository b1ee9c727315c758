package postgres

//go:generate go run go.uber.org/mock/mockgen -source=./tx.go -destination=./mocks/tx_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Txer runs a unit of work inside one database transaction. Every
// check-then-write sequence in the reservation core goes through it so that
// an overlap check and the writes it guards either all commit or all roll
// back. Mutating operations are never retried here: none carry an
// idempotency token, and a blind retry risks double allocation.
type Txer interface {
	WithinTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

type txerImpl struct {
	db *Connection
}

func NewTxer(db *Connection) Txer {
	return &txerImpl{db: db}
}

func (t *txerImpl) WithinTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := t.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to roll back transaction")
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

package repository

//go:generate go run go.uber.org/mock/mockgen -source=./ledger.go -destination=../mocks/ledger_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gostitut/infras/otel"
	"gostitut/infras/postgres"
	"gostitut/internal/domains/room/model"
	"gostitut/shared/constant"
	"gostitut/shared/logger"
)

// StatusLedger is the single write path for room status. TransitionTx flips
// the status and appends exactly one history row in the caller's
// transaction; a transition that commits without its history row, or the
// other way round, cannot happen.
type StatusLedger interface {
	TransitionTx(ctx context.Context, tx *sqlx.Tx, roomID, oldStatus, newStatus, actor string) error
	History(ctx context.Context, roomID string) ([]model.StatusHistory, error)
}

type ledgerImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func NewStatusLedger(db *postgres.Connection, otel otel.Otel) StatusLedger {
	return &ledgerImpl{
		db:   db,
		otel: otel,
	}
}

func (l *ledgerImpl) TransitionTx(ctx context.Context, tx *sqlx.Tx, roomID, oldStatus, newStatus, actor string) error {
	ctx, scope := l.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.TransitionTx")
	defer scope.End()

	query := "UPDATE rooms SET status = $1 WHERE id = $2"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := tx.ExecContext(ctx, query, newStatus, roomID); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to update room status: %w", err)
	}

	history := model.StatusHistory{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ChangedBy: actor,
		ChangedAt: time.Now().UTC(),
	}

	historyQuery := "INSERT INTO room_status_history (id, room_id, old_status, new_status, changed_by, changed_at) " +
		"VALUES (:id, :room_id, :old_status, :new_status, :changed_by, :changed_at)"

	if _, err := tx.NamedExecContext(ctx, historyQuery, history); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to insert room status history: %w", err)
	}

	return nil
}

func (l *ledgerImpl) History(ctx context.Context, roomID string) ([]model.StatusHistory, error) {
	ctx, scope := l.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.History")
	defer scope.End()

	query := "SELECT id, room_id, old_status, new_status, changed_by, changed_at " +
		"FROM room_status_history WHERE room_id = $1 ORDER BY changed_at DESC"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var history []model.StatusHistory

	err := l.db.Read.SelectContext(ctx, &history, query, roomID)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return history, fmt.Errorf("failed to get room status history: %w", err)
	}

	return history, nil
}

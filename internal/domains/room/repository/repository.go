package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gostitut/infras/otel"
	"gostitut/infras/postgres"
	"gostitut/internal/domains/room/model"
	"gostitut/shared/constant"
	gDto "gostitut/shared/dto"
	"gostitut/shared/failure"
	"gostitut/shared/logger"
)

const selectRoomWithType = "SELECT r.id, r.number, r.type_id, r.floor, r.max_guests, r.status, r.created_at, " +
	"t.name AS type_name, t.base_price FROM rooms r JOIN room_types t ON t.id = r.type_id"

type Room interface {
	Insert(ctx context.Context, room model.Room) error
	GetByID(ctx context.Context, id string) (model.RoomWithType, error)
	GetAll(ctx context.Context, params gDto.QueryParams) ([]model.RoomWithType, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, room model.Room) error
	LockTx(ctx context.Context, tx *sqlx.Tx, id string) (model.RoomWithType, error)
	DeleteTx(ctx context.Context, tx *sqlx.Tx, id string) error
	CountByTypeTx(ctx context.Context, tx *sqlx.Tx, typeID string) (int, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (repo *repositoryImpl) Insert(ctx context.Context, room model.Room) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.Insert")
	defer scope.End()

	query := "INSERT INTO rooms (id, number, type_id, floor, max_guests, status, created_at) " +
		"VALUES (:id, :number, :type_id, :floor, :max_guests, :status, :created_at)"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := repo.db.Write.NamedExecContext(ctx, query, room)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return failure.Conflict("room number already exists") //nolint:wrapcheck
		}

		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *repositoryImpl) GetByID(ctx context.Context, id string) (model.RoomWithType, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.GetByID")
	defer scope.End()

	query := selectRoomWithType + " WHERE r.id = $1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var room model.RoomWithType

	err := repo.db.Read.GetContext(ctx, &room, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return room, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return room, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return room, nil
}

func (repo *repositoryImpl) GetAll(ctx context.Context, params gDto.QueryParams) ([]model.RoomWithType, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.GetAll")
	defer scope.End()

	query := selectRoomWithType + " ORDER BY r.number ASC"

	args := []any{}
	if params.Limit > 0 {
		query += " LIMIT $1 OFFSET $2"
		args = append(args, params.Limit, (max(params.Page, 1)-1)*params.Limit)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var rooms []model.RoomWithType

	err := repo.db.Read.SelectContext(ctx, &rooms, query, args...)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return rooms, fmt.Errorf("failed to get all data (%s): %w", model.EntityName, err)
	}

	return rooms, nil
}

func (repo *repositoryImpl) Count(ctx context.Context) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.Count")
	defer scope.End()

	query := "SELECT COUNT(id) FROM rooms"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int

	err := repo.db.Read.GetContext(ctx, &count, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count data (%s): %w", model.EntityName, err)
	}

	return count, nil
}

func (repo *repositoryImpl) Update(ctx context.Context, room model.Room) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.Update")
	defer scope.End()

	query := "UPDATE rooms SET number = :number, type_id = :type_id, floor = :floor, max_guests = :max_guests WHERE id = :id"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := repo.db.Write.NamedExecContext(ctx, query, room)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return failure.Conflict("room number already exists") //nolint:wrapcheck
		}

		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to update data (%s): %w", model.EntityName, err)
	}

	return nil
}

// LockTx reads the room and its rate under a FOR UPDATE row lock. Every
// allocation decision takes this lock before checking for conflicts, so two
// transactions racing for the same room serialize here.
func (repo *repositoryImpl) LockTx(ctx context.Context, tx *sqlx.Tx, id string) (model.RoomWithType, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.LockTx")
	defer scope.End()

	query := selectRoomWithType + " WHERE r.id = $1 FOR UPDATE OF r"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var room model.RoomWithType

	err := tx.GetContext(ctx, &room, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return room, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return room, fmt.Errorf("failed to lock data (%s): %w", model.EntityName, err)
	}

	return room, nil
}

func (repo *repositoryImpl) DeleteTx(ctx context.Context, tx *sqlx.Tx, id string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.DeleteTx")
	defer scope.End()

	query := "DELETE FROM rooms WHERE id = $1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := tx.ExecContext(ctx, query, id)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to delete data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *repositoryImpl) CountByTypeTx(ctx context.Context, tx *sqlx.Tx, typeID string) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.CountByTypeTx")
	defer scope.End()

	query := "SELECT COUNT(id) FROM rooms WHERE type_id = $1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int

	err := tx.GetContext(ctx, &count, query, typeID)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count data (%s): %w", model.EntityName, err)
	}

	return count, nil
}

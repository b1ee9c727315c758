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
	"gostitut/internal/domains/roomtype/model"
	"gostitut/shared/constant"
	gDto "gostitut/shared/dto"
	"gostitut/shared/failure"
	"gostitut/shared/logger"
)

type RoomType interface {
	Insert(ctx context.Context, roomType model.RoomType) error
	GetByID(ctx context.Context, id string) (model.RoomType, error)
	GetAll(ctx context.Context, params gDto.QueryParams) ([]model.RoomType, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, roomType model.RoomType) error
	Delete(ctx context.Context, id string) error
	DeleteTx(ctx context.Context, tx *sqlx.Tx, id string) error
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) RoomType {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (repo *repositoryImpl) Insert(ctx context.Context, roomType model.RoomType) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".roomtype.Insert")
	defer scope.End()

	query := "INSERT INTO room_types (id, name, description, base_price) VALUES (:id, :name, :description, :base_price)"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := repo.db.Write.NamedExecContext(ctx, query, roomType)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return failure.Conflict("room type name already exists") //nolint:wrapcheck
		}

		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *repositoryImpl) GetByID(ctx context.Context, id string) (model.RoomType, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".roomtype.GetByID")
	defer scope.End()

	query := "SELECT id, name, description, base_price FROM room_types WHERE id = $1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var roomType model.RoomType

	err := repo.db.Read.GetContext(ctx, &roomType, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return roomType, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return roomType, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return roomType, nil
}

func (repo *repositoryImpl) GetAll(ctx context.Context, params gDto.QueryParams) ([]model.RoomType, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".roomtype.GetAll")
	defer scope.End()

	query := "SELECT id, name, description, base_price FROM room_types ORDER BY name ASC"

	args := []any{}
	if params.Limit > 0 {
		query += " LIMIT $1 OFFSET $2"
		args = append(args, params.Limit, (max(params.Page, 1)-1)*params.Limit)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var roomTypes []model.RoomType

	err := repo.db.Read.SelectContext(ctx, &roomTypes, query, args...)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return roomTypes, fmt.Errorf("failed to get all data (%s): %w", model.EntityName, err)
	}

	return roomTypes, nil
}

func (repo *repositoryImpl) Count(ctx context.Context) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".roomtype.Count")
	defer scope.End()

	query := "SELECT COUNT(id) FROM room_types"
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

func (repo *repositoryImpl) Update(ctx context.Context, roomType model.RoomType) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".roomtype.Update")
	defer scope.End()

	query := "UPDATE room_types SET name = :name, description = :description, base_price = :base_price WHERE id = :id"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := repo.db.Write.NamedExecContext(ctx, query, roomType)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return failure.Conflict("room type name already exists") //nolint:wrapcheck
		}

		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to update data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *repositoryImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".roomtype.Delete")
	defer scope.End()

	query := "DELETE FROM room_types WHERE id = $1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := repo.db.Write.ExecContext(ctx, query, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeFkViolation {
			return failure.Conflict("room type is still in use") //nolint:wrapcheck
		}

		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to delete data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *repositoryImpl) DeleteTx(ctx context.Context, tx *sqlx.Tx, id string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".roomtype.DeleteTx")
	defer scope.End()

	query := "DELETE FROM room_types WHERE id = $1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := tx.ExecContext(ctx, query, id)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to delete data (%s): %w", model.EntityName, err)
	}

	return nil
}

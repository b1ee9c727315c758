package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gostitut/infras/otel"
	"gostitut/infras/postgres"
	"gostitut/internal/domains/admin/model"
	"gostitut/shared/constant"
	"gostitut/shared/logger"
)

type Admin interface {
	GetByUsername(ctx context.Context, username string) (model.Admin, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Admin {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (repo *repositoryImpl) GetByUsername(ctx context.Context, username string) (model.Admin, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".admin.GetByUsername")
	defer scope.End()

	query := "SELECT id, username, password_hash, first_name, last_name, created_at FROM admins WHERE username = $1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var admin model.Admin

	err := repo.db.Read.GetContext(ctx, &admin, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return admin, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return admin, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return admin, nil
}

package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gostitut/infras/otel"
	"gostitut/infras/postgres"
	"gostitut/internal/domains/guest/model"
	"gostitut/shared/constant"
	gDto "gostitut/shared/dto"
	"gostitut/shared/logger"
)

const selectGuest = "SELECT id, first_name, last_name, phone, email, passport_ciphertext, passport_nonce, " +
	"discount_percent, created_at FROM guests"

type Guest interface {
	Insert(ctx context.Context, guest model.Guest) error
	GetByID(ctx context.Context, id string) (model.Guest, error)
	GetByIDTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Guest, error)
	GetAll(ctx context.Context, params gDto.QueryParams) ([]model.Guest, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, guest model.Guest) error
	Delete(ctx context.Context, id string) error
	BookingHistory(ctx context.Context, guestID string) ([]model.ReportBooking, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Guest {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (repo *repositoryImpl) Insert(ctx context.Context, guest model.Guest) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".guest.Insert")
	defer scope.End()

	query := "INSERT INTO guests (id, first_name, last_name, phone, email, passport_ciphertext, passport_nonce, discount_percent, created_at) " +
		"VALUES (:id, :first_name, :last_name, :phone, :email, :passport_ciphertext, :passport_nonce, :discount_percent, :created_at)"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := repo.db.Write.NamedExecContext(ctx, query, guest)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *repositoryImpl) GetByID(ctx context.Context, id string) (model.Guest, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".guest.GetByID")
	defer scope.End()

	query := selectGuest + " WHERE id = $1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var guest model.Guest

	err := repo.db.Read.GetContext(ctx, &guest, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return guest, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return guest, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return guest, nil
}

// GetByIDTx reads the guest in the caller's transaction. Allocation uses it
// so the discount applied to the price is the one committed at decision
// time.
func (repo *repositoryImpl) GetByIDTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Guest, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".guest.GetByIDTx")
	defer scope.End()

	query := selectGuest + " WHERE id = $1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var guest model.Guest

	err := tx.GetContext(ctx, &guest, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return guest, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return guest, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return guest, nil
}

func (repo *repositoryImpl) GetAll(ctx context.Context, params gDto.QueryParams) ([]model.Guest, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".guest.GetAll")
	defer scope.End()

	query := selectGuest + " ORDER BY last_name ASC, first_name ASC"

	args := []any{}
	if params.Limit > 0 {
		query += " LIMIT $1 OFFSET $2"
		args = append(args, params.Limit, (max(params.Page, 1)-1)*params.Limit)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var guests []model.Guest

	err := repo.db.Read.SelectContext(ctx, &guests, query, args...)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return guests, fmt.Errorf("failed to get all data (%s): %w", model.EntityName, err)
	}

	return guests, nil
}

func (repo *repositoryImpl) Count(ctx context.Context) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".guest.Count")
	defer scope.End()

	query := "SELECT COUNT(id) FROM guests"
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

func (repo *repositoryImpl) Update(ctx context.Context, guest model.Guest) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".guest.Update")
	defer scope.End()

	query := "UPDATE guests SET first_name = :first_name, last_name = :last_name, phone = :phone, email = :email, " +
		"passport_ciphertext = :passport_ciphertext, passport_nonce = :passport_nonce, discount_percent = :discount_percent WHERE id = :id"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := repo.db.Write.NamedExecContext(ctx, query, guest)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to update data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *repositoryImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".guest.Delete")
	defer scope.End()

	query := "DELETE FROM guests WHERE id = $1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := repo.db.Write.ExecContext(ctx, query, id)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to delete data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *repositoryImpl) BookingHistory(ctx context.Context, guestID string) ([]model.ReportBooking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".guest.BookingHistory")
	defer scope.End()

	query := "SELECT b.id AS booking_id, r.number AS room_number, b.date_from, b.date_to, b.status, b.total_price " +
		"FROM bookings b JOIN rooms r ON r.id = b.room_id WHERE b.guest_id = $1 ORDER BY b.date_from DESC"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var bookings []model.ReportBooking

	err := repo.db.Read.SelectContext(ctx, &bookings, query, guestID)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return bookings, fmt.Errorf("failed to get booking history (%s): %w", model.EntityName, err)
	}

	return bookings, nil
}

package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"gostitut/infras/otel"
	"gostitut/infras/postgres"
	"gostitut/internal/domains/booking/model"
	"gostitut/shared/constant"
	gDto "gostitut/shared/dto"
	"gostitut/shared/logger"
)

const selectBookingWithNames = "SELECT b.id, b.room_id, b.guest_id, b.created_by, b.date_from, b.date_to, " +
	"b.status, b.total_price, b.created_at, r.number AS room_number, " +
	"g.first_name AS guest_first_name, g.last_name AS guest_last_name " +
	"FROM bookings b JOIN rooms r ON r.id = b.room_id JOIN guests g ON g.id = b.guest_id"

type Booking interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking) error
	GetByID(ctx context.Context, id string) (model.BookingWithNames, error)
	LockTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Booking, error)
	HasOverlapTx(ctx context.Context, tx *sqlx.Tx, roomID string, from, to time.Time, excludeID string) (bool, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking) error
	GetAll(ctx context.Context, params gDto.QueryParams) ([]model.BookingWithNames, error)
	Count(ctx context.Context) (int, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (repo *repositoryImpl) InsertTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.InsertTx")
	defer scope.End()

	query := "INSERT INTO bookings (id, room_id, guest_id, created_by, date_from, date_to, status, total_price, created_at) " +
		"VALUES (:id, :room_id, :guest_id, :created_by, :date_from, :date_to, :status, :total_price, :created_at)"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := tx.NamedExecContext(ctx, query, booking)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *repositoryImpl) GetByID(ctx context.Context, id string) (model.BookingWithNames, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetByID")
	defer scope.End()

	query := selectBookingWithNames + " WHERE b.id = $1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var booking model.BookingWithNames

	err := repo.db.Read.GetContext(ctx, &booking, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return booking, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return booking, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return booking, nil
}

// LockTx reads the booking under a FOR UPDATE lock, serializing concurrent
// edits of the same reservation.
func (repo *repositoryImpl) LockTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.LockTx")
	defer scope.End()

	query := "SELECT id, room_id, guest_id, created_by, date_from, date_to, status, total_price, created_at " +
		"FROM bookings WHERE id = $1 FOR UPDATE"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var booking model.Booking

	err := tx.GetContext(ctx, &booking, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return booking, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return booking, fmt.Errorf("failed to lock data (%s): %w", model.EntityName, err)
	}

	return booking, nil
}

// HasOverlapTx reports whether any active booking of the room intersects
// [from, to). Half-open intervals: [a,b) and [c,d) overlap iff a<d and c<b,
// so back-to-back stays sharing a boundary date do not conflict. excludeID
// keeps a booking's own row out of the check during edits.
func (repo *repositoryImpl) HasOverlapTx(ctx context.Context, tx *sqlx.Tx, roomID string, from, to time.Time, excludeID string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.HasOverlapTx")
	defer scope.End()

	query := "SELECT EXISTS (SELECT 1 FROM bookings WHERE room_id = $1 AND status = $2 " +
		"AND date_from < $4 AND $3 < date_to AND id <> $5)"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var overlap bool

	err := tx.GetContext(ctx, &overlap, query, roomID, model.StatusActive, from, to, excludeID)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check overlap (%s): %w", model.EntityName, err)
	}

	return overlap, nil
}

func (repo *repositoryImpl) UpdateTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.UpdateTx")
	defer scope.End()

	query := "UPDATE bookings SET room_id = :room_id, date_from = :date_from, date_to = :date_to, " +
		"status = :status, total_price = :total_price WHERE id = :id"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := tx.NamedExecContext(ctx, query, booking)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to update data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *repositoryImpl) GetAll(ctx context.Context, params gDto.QueryParams) ([]model.BookingWithNames, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetAll")
	defer scope.End()

	query := selectBookingWithNames + " ORDER BY b.date_from DESC"

	args := []any{}
	if params.Limit > 0 {
		query += " LIMIT $1 OFFSET $2"
		args = append(args, params.Limit, (max(params.Page, 1)-1)*params.Limit)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var bookings []model.BookingWithNames

	err := repo.db.Read.SelectContext(ctx, &bookings, query, args...)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return bookings, fmt.Errorf("failed to get all data (%s): %w", model.EntityName, err)
	}

	return bookings, nil
}

func (repo *repositoryImpl) Count(ctx context.Context) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Count")
	defer scope.End()

	query := "SELECT COUNT(id) FROM bookings"
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

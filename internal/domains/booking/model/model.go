package model

import (
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	StatusActive    = "active"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusCancelled, StatusCompleted:
		return true
	}

	return false
}

// Booking is one reservation over the half-open interval
// [DateFrom, DateTo). Only rows in the active status count for conflict
// detection; cancelled and completed rows are history.
type Booking struct {
	ID         string    `db:"id"`
	RoomID     string    `db:"room_id"`
	GuestID    string    `db:"guest_id"`
	CreatedBy  string    `db:"created_by"`
	DateFrom   time.Time `db:"date_from"`
	DateTo     time.Time `db:"date_to"`
	Status     string    `db:"status"`
	TotalPrice float64   `db:"total_price"`
	CreatedAt  time.Time `db:"created_at"`
}

func (b Booking) IsActive() bool {
	return b.Status == StatusActive
}

// BookingWithNames joins display fields for read projections.
type BookingWithNames struct {
	Booking
	RoomNumber     string `db:"room_number"`
	GuestFirstName string `db:"guest_first_name"`
	GuestLastName  string `db:"guest_last_name"`
}

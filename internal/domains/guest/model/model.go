package model

import (
	"time"
)

const (
	TableName  = "guests"
	EntityName = "guest"

	// PassportUnavailable is shown in display reads when the stored
	// passport cannot be authenticated.
	PassportUnavailable = "unavailable"
)

// Guest holds identity plus the encrypted passport envelope. Ciphertext and
// nonce are both set or both nil, never one without the other.
type Guest struct {
	ID                 string    `db:"id"`
	FirstName          string    `db:"first_name"`
	LastName           string    `db:"last_name"`
	Phone              string    `db:"phone"`
	Email              string    `db:"email"`
	PassportCiphertext []byte    `db:"passport_ciphertext"`
	PassportNonce      []byte    `db:"passport_nonce"`
	DiscountPercent    float64   `db:"discount_percent"`
	CreatedAt          time.Time `db:"created_at"`
}

func (g Guest) HasPassport() bool {
	return len(g.PassportCiphertext) > 0 && len(g.PassportNonce) > 0
}

// ReportBooking is one stay line of the guest report projection.
type ReportBooking struct {
	BookingID  string    `db:"booking_id"`
	RoomNumber string    `db:"room_number"`
	DateFrom   time.Time `db:"date_from"`
	DateTo     time.Time `db:"date_to"`
	Status     string    `db:"status"`
	TotalPrice float64   `db:"total_price"`
}

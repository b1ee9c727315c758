package model

import (
	"time"
)

const (
	TableName        = "rooms"
	HistoryTableName = "room_status_history"
	EntityName       = "room"

	StatusFree     = "free"
	StatusCleaning = "cleaning"
	StatusOccupied = "occupied"
	StatusBooked   = "booked"
)

// ValidStatus reports whether s is one of the four room states. Overrides
// may move a room between any two of them; anything else is rejected before
// it reaches the ledger.
func ValidStatus(s string) bool {
	switch s {
	case StatusFree, StatusCleaning, StatusOccupied, StatusBooked:
		return true
	}

	return false
}

type Room struct {
	ID        string    `db:"id"`
	Number    string    `db:"number"`
	TypeID    string    `db:"type_id"`
	Floor     int       `db:"floor"`
	MaxGuests int       `db:"max_guests"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

// RoomWithType joins the room with its rate category for display and for
// pricing inside an allocation transaction.
type RoomWithType struct {
	Room
	TypeName  string  `db:"type_name"`
	BasePrice float64 `db:"base_price"`
}

// StatusHistory is one immutable audit row. Rows are only ever appended,
// one per transition, by the ledger.
type StatusHistory struct {
	ID        string    `db:"id"`
	RoomID    string    `db:"room_id"`
	OldStatus string    `db:"old_status"`
	NewStatus string    `db:"new_status"`
	ChangedBy string    `db:"changed_by"`
	ChangedAt time.Time `db:"changed_at"`
}

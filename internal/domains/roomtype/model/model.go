package model

const (
	TableName  = "room_types"
	EntityName = "room type"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldBasePrice   = "base_price"
)

// RoomType is a rate category. BasePrice is the nightly rate every booking
// price is derived from.
type RoomType struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	BasePrice   float64 `db:"base_price"`
}

package dto

import (
	"time"

	"gostitut/internal/domains/booking/model"
	"gostitut/shared"
	"gostitut/shared/constant"
	"gostitut/shared/failure"
)

type CreateBookingRequest struct {
	RoomID   string `json:"room_id"   validate:"required,uuid"`
	GuestID  string `json:"guest_id"  validate:"required,uuid"`
	DateFrom string `json:"date_from" validate:"required"`
	DateTo   string `json:"date_to"   validate:"required"`
}

// Dates parses the stay interval and enforces date_from < date_to.
func (c *CreateBookingRequest) Dates() (from, to time.Time, err error) {
	return parseInterval(c.DateFrom, c.DateTo)
}

// ModifyBookingRequest carries the optional changes of a booking edit. Nil
// fields keep the current value.
type ModifyBookingRequest struct {
	RoomID   *string `json:"room_id"   validate:"omitempty,uuid"`
	DateFrom *string `json:"date_from" validate:"omitempty"`
	DateTo   *string `json:"date_to"   validate:"omitempty"`
	Status   *string `json:"status"    validate:"omitempty,oneof=active cancelled completed"`
}

type BookingResponse struct {
	ID         string  `json:"id"`
	RoomID     string  `json:"room_id"`
	RoomNumber string  `json:"room_number"`
	GuestID    string  `json:"guest_id"`
	GuestName  string  `json:"guest_name"`
	CreatedBy  string  `json:"created_by"`
	DateFrom   string  `json:"date_from"`
	DateTo     string  `json:"date_to"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"total_price"`
	CreatedAt  string  `json:"created_at"`
}

func (r *BookingResponse) FromModel(model model.BookingWithNames) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.RoomNumber = model.RoomNumber
	r.GuestID = model.GuestID
	r.GuestName = model.GuestFirstName + " " + model.GuestLastName
	r.CreatedBy = model.CreatedBy
	r.DateFrom = model.DateFrom.Format(constant.DateFormat)
	r.DateTo = model.DateTo.Format(constant.DateFormat)
	r.Status = model.Status
	r.TotalPrice = model.TotalPrice
	r.CreatedAt = model.CreatedAt.Format(constant.TimeFormat)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.BookingWithNames, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

func parseInterval(rawFrom, rawTo string) (from, to time.Time, err error) {
	from, err = time.Parse(constant.DateFormat, rawFrom)
	if err != nil {
		return from, to, failure.BadRequestFromString("date_from must be formatted " + constant.DateFormat) //nolint:wrapcheck
	}

	to, err = time.Parse(constant.DateFormat, rawTo)
	if err != nil {
		return from, to, failure.BadRequestFromString("date_to must be formatted " + constant.DateFormat) //nolint:wrapcheck
	}

	if !from.Before(to) {
		return from, to, failure.BadRequestFromString("date_from must be before date_to") //nolint:wrapcheck
	}

	return from, to, nil
}

// ParseDate parses one edited boundary; the interval ordering is re-checked
// by the service once both boundaries are known.
func ParseDate(raw, field string) (time.Time, error) {
	t, err := time.Parse(constant.DateFormat, raw)
	if err != nil {
		return t, failure.BadRequestFromString(field + " must be formatted " + constant.DateFormat) //nolint:wrapcheck
	}

	return t, nil
}

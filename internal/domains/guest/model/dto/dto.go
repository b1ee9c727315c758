package dto

import (
	"time"

	"github.com/google/uuid"

	"gostitut/internal/domains/guest/model"
	"gostitut/shared"
	"gostitut/shared/constant"
)

type CreateGuestRequest struct {
	FirstName       string  `json:"first_name"       validate:"required,max=100"`
	LastName        string  `json:"last_name"        validate:"required,max=100"`
	Phone           string  `json:"phone"            validate:"omitempty,max=30"`
	Email           string  `json:"email"            validate:"omitempty,email"`
	Passport        string  `json:"passport"         validate:"omitempty,max=50"`
	DiscountPercent float64 `json:"discount_percent" validate:"gte=0,lte=100"`
}

// ToModel maps the identity fields; the passport envelope is filled by the
// service after encryption.
func (c *CreateGuestRequest) ToModel() model.Guest {
	return model.Guest{
		ID:              uuid.NewString(),
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		Phone:           c.Phone,
		Email:           c.Email,
		DiscountPercent: c.DiscountPercent,
		CreatedAt:       time.Now().UTC(),
	}
}

type UpdateGuestRequest struct {
	FirstName       string  `json:"first_name"       validate:"required,max=100"`
	LastName        string  `json:"last_name"        validate:"required,max=100"`
	Phone           string  `json:"phone"            validate:"omitempty,max=30"`
	Email           string  `json:"email"            validate:"omitempty,email"`
	Passport        string  `json:"passport"         validate:"omitempty,max=50"`
	DiscountPercent float64 `json:"discount_percent" validate:"gte=0,lte=100"`
}

type GuestResponse struct {
	ID              string  `json:"id"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Phone           string  `json:"phone"`
	Email           string  `json:"email"`
	Passport        string  `json:"passport"`
	DiscountPercent float64 `json:"discount_percent"`
	CreatedAt       string  `json:"created_at"`
}

func (r *GuestResponse) FromModel(model model.Guest, passport string) {
	r.ID = model.ID
	r.FirstName = model.FirstName
	r.LastName = model.LastName
	r.Phone = model.Phone
	r.Email = model.Email
	r.Passport = passport
	r.DiscountPercent = model.DiscountPercent
	r.CreatedAt = model.CreatedAt.Format(constant.TimeFormat)
}

type GetGuestsResponse struct {
	Guests    []GuestResponse `json:"guests"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetGuestsResponse) FromModels(models []model.Guest, passports []string, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Guests = make([]GuestResponse, len(models))
	for i, mod := range models {
		r.Guests[i].FromModel(mod, passports[i])
	}
}

type ReportBookingResponse struct {
	BookingID  string  `json:"booking_id"`
	RoomNumber string  `json:"room_number"`
	DateFrom   string  `json:"date_from"`
	DateTo     string  `json:"date_to"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"total_price"`
}

// GuestReportResponse is the raw projection handed to external document
// generators. PassportOK tells formatting layers apart from a real value of
// "unavailable".
type GuestReportResponse struct {
	Guest      GuestResponse           `json:"guest"`
	PassportOK bool                    `json:"passport_ok"`
	Bookings   []ReportBookingResponse `json:"bookings"`
}

func (r *GuestReportResponse) FromModels(guest model.Guest, passport string, passportOK bool, bookings []model.ReportBooking) {
	r.Guest.FromModel(guest, passport)
	r.PassportOK = passportOK

	r.Bookings = make([]ReportBookingResponse, len(bookings))
	for i, b := range bookings {
		r.Bookings[i] = ReportBookingResponse{
			BookingID:  b.BookingID,
			RoomNumber: b.RoomNumber,
			DateFrom:   b.DateFrom.Format(constant.DateFormat),
			DateTo:     b.DateTo.Format(constant.DateFormat),
			Status:     b.Status,
			TotalPrice: b.TotalPrice,
		}
	}
}

package dto

import (
	"time"

	"github.com/google/uuid"

	"gostitut/internal/domains/room/model"
	"gostitut/shared"
	"gostitut/shared/constant"
)

type CreateRoomRequest struct {
	Number    string `json:"number"     validate:"required,max=20"`
	TypeID    string `json:"type_id"    validate:"required,uuid"`
	Floor     int    `json:"floor"      validate:"gte=0"`
	MaxGuests int    `json:"max_guests" validate:"gte=1"`
}

func (c *CreateRoomRequest) ToModel() model.Room {
	return model.Room{
		ID:        uuid.NewString(),
		Number:    c.Number,
		TypeID:    c.TypeID,
		Floor:     c.Floor,
		MaxGuests: c.MaxGuests,
		Status:    model.StatusFree,
		CreatedAt: time.Now().UTC(),
	}
}

type UpdateRoomRequest struct {
	Number    string `json:"number"     validate:"required,max=20"`
	TypeID    string `json:"type_id"    validate:"required,uuid"`
	Floor     int    `json:"floor"      validate:"gte=0"`
	MaxGuests int    `json:"max_guests" validate:"gte=1"`
}

type OverrideStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=free cleaning occupied booked"`
}

type RoomResponse struct {
	ID        string  `json:"id"`
	Number    string  `json:"number"`
	TypeID    string  `json:"type_id"`
	TypeName  string  `json:"type_name"`
	BasePrice float64 `json:"base_price"`
	Floor     int     `json:"floor"`
	MaxGuests int     `json:"max_guests"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
}

func (r *RoomResponse) FromModel(model model.RoomWithType) {
	r.ID = model.ID
	r.Number = model.Number
	r.TypeID = model.TypeID
	r.TypeName = model.TypeName
	r.BasePrice = model.BasePrice
	r.Floor = model.Floor
	r.MaxGuests = model.MaxGuests
	r.Status = model.Status
	r.CreatedAt = model.CreatedAt.Format(constant.TimeFormat)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.RoomWithType, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

type StatusHistoryResponse struct {
	ID        string `json:"id"`
	RoomID    string `json:"room_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	ChangedBy string `json:"changed_by"`
	ChangedAt string `json:"changed_at"`
}

func (r *StatusHistoryResponse) FromModel(model model.StatusHistory) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.OldStatus = model.OldStatus
	r.NewStatus = model.NewStatus
	r.ChangedBy = model.ChangedBy
	r.ChangedAt = model.ChangedAt.Format(constant.TimeFormat)
}

type GetStatusHistoryResponse struct {
	History []StatusHistoryResponse `json:"history"`
}

func (r *GetStatusHistoryResponse) FromModels(models []model.StatusHistory) {
	r.History = make([]StatusHistoryResponse, len(models))
	for i, mod := range models {
		r.History[i].FromModel(mod)
	}
}

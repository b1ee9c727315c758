package dto

import (
	"github.com/google/uuid"

	"gostitut/internal/domains/roomtype/model"
	"gostitut/shared"
)

type CreateRoomTypeRequest struct {
	Name        string  `json:"name"        validate:"required,max=100"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	BasePrice   float64 `json:"base_price"  validate:"gte=0"`
}

func (c *CreateRoomTypeRequest) ToModel() model.RoomType {
	return model.RoomType{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		BasePrice:   c.BasePrice,
	}
}

type UpdateRoomTypeRequest struct {
	Name        string   `json:"name"        validate:"required,max=100"`
	Description string   `json:"description" validate:"omitempty,max=500"`
	BasePrice   *float64 `json:"base_price"  validate:"omitempty,gte=0"`
}

type RoomTypeResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	BasePrice   float64 `json:"base_price"`
}

func (r *RoomTypeResponse) FromModel(model model.RoomType) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.BasePrice = model.BasePrice
}

type GetRoomTypesResponse struct {
	RoomTypes []RoomTypeResponse `json:"room_types"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetRoomTypesResponse) FromModels(models []model.RoomType, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.RoomTypes = make([]RoomTypeResponse, len(models))
	for i, mod := range models {
		r.RoomTypes[i].FromModel(mod)
	}
}

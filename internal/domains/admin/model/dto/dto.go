package dto

import (
	"gostitut/internal/domains/admin/model"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
}

type AdminResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (r *AdminResponse) FromModel(model model.Admin) {
	r.ID = model.ID
	r.Username = model.Username
	r.FirstName = model.FirstName
	r.LastName = model.LastName
}

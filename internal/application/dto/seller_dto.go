package dto

import "time"

// SellerRequest entrada para crear o actualizar un vendedor.
// Active es opcional: en create nil => true; en update nil => conserva el estado actual.
type SellerRequest struct {
	Name    string  `json:"name" validate:"required,min=2,max=100"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=20"`
	Address *string `json:"address" validate:"omitempty,max=200"`
	TaxID   *string `json:"tax_id" validate:"omitempty,max=20"`
	Active  *bool   `json:"active"`
}

// SellerResponse salida de un vendedor.
type SellerResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	TaxID     *string   `json:"tax_id,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

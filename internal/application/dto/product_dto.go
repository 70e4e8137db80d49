package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Stock nil => 0.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=100"`
	Description *string         `json:"description" validate:"omitempty,max=500"`
	Price       decimal.Decimal `json:"price" validate:"gt=0,decimals=2"`
	Stock       *int            `json:"stock" validate:"omitempty,min=0"`
	SellerID    int64           `json:"seller_id" validate:"required,gt=0"`
	Category    *string         `json:"category" validate:"omitempty,max=50"`
	ImageURL    *string         `json:"image_url"`
}

// UpdateProductRequest entrada para actualizar un producto.
// Todos los campos se sobrescriben; no incluye vendedor ni estado activo.
type UpdateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=100"`
	Description *string         `json:"description" validate:"omitempty,max=500"`
	Price       decimal.Decimal `json:"price" validate:"gt=0,decimals=2"`
	Stock       *int            `json:"stock" validate:"omitempty,min=0"`
	Category    *string         `json:"category" validate:"omitempty,max=50"`
	ImageURL    *string         `json:"image_url"`
}

// ProductResponse salida de un producto. SellerName/SellerEmail se leen del vendedor vigente.
type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	SellerID    int64           `json:"seller_id"`
	Category    *string         `json:"category,omitempty"`
	ImageURL    *string         `json:"image_url,omitempty"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	SellerName  string          `json:"seller_name,omitempty"`
	SellerEmail string          `json:"seller_email,omitempty"`
}

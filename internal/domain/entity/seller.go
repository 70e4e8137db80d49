package entity

import "time"

// Seller representa un vendedor del marketplace.
// Active es el "estado": habilita la creación de productos, no su visibilidad.
type Seller struct {
	ID        int64
	Name      string
	Email     string // único entre vendedores
	Phone     *string
	Address   *string
	TaxID     *string // RUC/DNI
	Active    bool
	CreatedAt time.Time
}

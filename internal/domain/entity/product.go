package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto publicado por un vendedor.
// SellerID no cambia después de la creación; Active=false es el borrado lógico.
type Product struct {
	ID          int64
	SellerID    int64
	Name        string
	Description *string
	Price       decimal.Decimal
	Stock       int
	Category    *string
	ImageURL    *string
	Active      bool
	CreatedAt   time.Time
}

// Available informa si el producto puede mostrarse como disponible para compra.
// El estado del vendedor se evalúa aparte (no hay referencia viva al vendedor).
func (p *Product) Available() bool {
	return p.Active && p.Stock > 0
}

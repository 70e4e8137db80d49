package repository

import (
	"context"

	"github.com/jhoicas/marketplace-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// No hay borrado físico: el borrado lógico es un Update con Active=false.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context) ([]*entity.Product, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]*entity.Product, error)
	ListByCategory(ctx context.Context, category string) ([]*entity.Product, error)
	// ListActiveForActiveSellers: producto activo y vendedor activo.
	ListActiveForActiveSellers(ctx context.Context) ([]*entity.Product, error)
	// ListInStock: stock > 0, producto activo y vendedor activo.
	ListInStock(ctx context.Context) ([]*entity.Product, error)
}

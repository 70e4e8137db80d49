package repository

import (
	"context"

	"github.com/jhoicas/marketplace-api/internal/domain/entity"
)

// SellerRepository define el puerto de persistencia para Seller (DIP).
type SellerRepository interface {
	Create(ctx context.Context, seller *entity.Seller) error
	GetByID(ctx context.Context, id int64) (*entity.Seller, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.Seller, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, seller *entity.Seller) error
	List(ctx context.Context) ([]*entity.Seller, error)
	ListActive(ctx context.Context) ([]*entity.Seller, error)
	// Delete elimina físicamente el vendedor y, en cascada, sus productos.
	Delete(ctx context.Context, id int64) error
}

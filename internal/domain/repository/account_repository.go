package repository

import (
	"context"

	"github.com/jhoicas/marketplace-api/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia para Account (almacén de credenciales).
// Las búsquedas devuelven (nil, nil) cuando no hay coincidencia.
type AccountRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Account, error)
	FindByUsername(ctx context.Context, username string) (*entity.Account, error)
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
	FindByToken(ctx context.Context, token string) (*entity.Account, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Save inserta si ID == 0 (asigna el ID) o actualiza la fila existente.
	// Una violación de unicidad se devuelve como domain.ErrConflict.
	Save(ctx context.Context, account *entity.Account) error
}

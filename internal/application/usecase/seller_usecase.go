package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

// SellerUseCase aplica reglas de negocio para vendedores (unicidad de email, estado opcional en update).
type SellerUseCase struct {
	tx    TxRunner
	cache SellerCache
	log   zerolog.Logger
	now   func() time.Time
}

// NewSellerUseCase construye el caso de uso. cache puede ser nil.
func NewSellerUseCase(tx TxRunner, cache SellerCache, log zerolog.Logger) *SellerUseCase {
	if cache == nil {
		cache = noopCache{}
	}
	return &SellerUseCase{tx: tx, cache: cache, log: log, now: time.Now}
}

// List devuelve todos los vendedores.
func (uc *SellerUseCase) List(ctx context.Context) ([]dto.SellerResponse, error) {
	uc.log.Info().Msg("buscando todos los vendedores")
	return uc.list(ctx, repository.SellerRepository.List)
}

// ListActive devuelve solo los vendedores con estado activo.
func (uc *SellerUseCase) ListActive(ctx context.Context) ([]dto.SellerResponse, error) {
	uc.log.Info().Msg("buscando vendedores activos")
	return uc.list(ctx, repository.SellerRepository.ListActive)
}

func (uc *SellerUseCase) list(ctx context.Context, query func(repository.SellerRepository, context.Context) ([]*entity.Seller, error)) ([]dto.SellerResponse, error) {
	var out []dto.SellerResponse
	err := uc.tx.Run(ctx, func(sellers repository.SellerRepository, _ repository.ProductRepository) error {
		list, err := query(sellers, ctx)
		if err != nil {
			return err
		}
		out = make([]dto.SellerResponse, 0, len(list))
		for _, s := range list {
			out = append(out, *toSellerResponse(s))
		}
		return nil
	})
	if err != nil {
		uc.log.Error().Err(err).Msg("listando vendedores")
		return nil, err
	}
	return out, nil
}

// GetByID obtiene un vendedor. NotFound si no existe.
func (uc *SellerUseCase) GetByID(ctx context.Context, id int64) (*dto.SellerResponse, error) {
	uc.log.Info().Int64("seller_id", id).Msg("buscando vendedor")
	cached, gen, ok := uc.cache.Get(ctx, id)
	if ok {
		return cached, nil
	}

	var out *dto.SellerResponse
	err := uc.tx.Run(ctx, func(sellers repository.SellerRepository, _ repository.ProductRepository) error {
		seller, err := sellers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if seller == nil {
			return sellerNotFound(id)
		}
		out = toSellerResponse(seller)
		return nil
	})
	if err != nil {
		uc.logFailure(err, id, "vendedor no encontrado")
		return nil, err
	}
	uc.cache.Set(ctx, out, gen)
	return out, nil
}

// Create crea un vendedor. Conflict si el email ya está registrado. Estado nil => activo.
func (uc *SellerUseCase) Create(ctx context.Context, in dto.SellerRequest) (*dto.SellerResponse, error) {
	uc.log.Info().Str("email", in.Email).Msg("creando nuevo vendedor")

	seller := &entity.Seller{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		TaxID:     in.TaxID,
		Active:    true,
		CreatedAt: uc.now(),
	}
	if in.Active != nil {
		seller.Active = *in.Active
	}

	err := uc.tx.Run(ctx, func(sellers repository.SellerRepository, _ repository.ProductRepository) error {
		exists, err := sellers.ExistsByEmail(ctx, in.Email)
		if err != nil {
			return err
		}
		if exists {
			return emailTaken(in.Email)
		}
		// La restricción única de la BD es la autoridad final ante creaciones concurrentes.
		return sellers.Create(ctx, seller)
	})
	if err != nil {
		uc.logFailure(err, 0, "creación de vendedor rechazada")
		return nil, err
	}

	uc.log.Info().Int64("seller_id", seller.ID).Msg("vendedor creado")
	return toSellerResponse(seller), nil
}

// Update sobrescribe nombre, email, teléfono, dirección y RUC/DNI; el estado solo si viene en la entrada.
func (uc *SellerUseCase) Update(ctx context.Context, id int64, in dto.SellerRequest) (*dto.SellerResponse, error) {
	uc.log.Info().Int64("seller_id", id).Msg("actualizando vendedor")

	var seller *entity.Seller
	err := uc.tx.Run(ctx, func(sellers repository.SellerRepository, _ repository.ProductRepository) error {
		var err error
		seller, err = sellers.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if seller == nil {
			return sellerNotFound(id)
		}
		if seller.Email != in.Email {
			exists, err := sellers.ExistsByEmail(ctx, in.Email)
			if err != nil {
				return err
			}
			if exists {
				return emailTaken(in.Email)
			}
		}

		seller.Name = in.Name
		seller.Email = in.Email
		seller.Phone = in.Phone
		seller.Address = in.Address
		seller.TaxID = in.TaxID
		if in.Active != nil {
			seller.Active = *in.Active
		}
		return sellers.Update(ctx, seller)
	})
	if err != nil {
		uc.logFailure(err, id, "actualización de vendedor rechazada")
		return nil, err
	}

	uc.cache.Invalidate(ctx, id)
	uc.log.Info().Int64("seller_id", id).Bool("active", seller.Active).Msg("vendedor actualizado")
	return toSellerResponse(seller), nil
}

// Delete elimina físicamente el vendedor; sus productos se eliminan en cascada en la misma transacción.
func (uc *SellerUseCase) Delete(ctx context.Context, id int64) error {
	uc.log.Info().Int64("seller_id", id).Msg("eliminando vendedor")

	err := uc.tx.Run(ctx, func(sellers repository.SellerRepository, _ repository.ProductRepository) error {
		seller, err := sellers.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if seller == nil {
			return sellerNotFound(id)
		}
		return sellers.Delete(ctx, id)
	})
	if err != nil {
		uc.logFailure(err, id, "eliminación de vendedor rechazada")
		return err
	}

	uc.cache.Invalidate(ctx, id)
	uc.log.Info().Int64("seller_id", id).Msg("vendedor eliminado")
	return nil
}

func (uc *SellerUseCase) logFailure(err error, id int64, msg string) {
	ev := uc.log.Error().Err(err)
	if domain.IsDomain(err) {
		ev = uc.log.Warn().Str("reason", err.Error())
	}
	if id != 0 {
		ev = ev.Int64("seller_id", id)
	}
	ev.Msg(msg)
}

func sellerNotFound(id int64) error {
	return domain.NotFound("Vendedor no encontrado con ID: %d", id)
}

func emailTaken(email string) error {
	return domain.Conflict("Ya existe un vendedor con el email: %s", email)
}

func toSellerResponse(s *entity.Seller) *dto.SellerResponse {
	if s == nil {
		return nil
	}
	return &dto.SellerResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		Address:   s.Address,
		TaxID:     s.TaxID,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
	}
}

package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo. La creación exige vendedor activo; el borrado es lógico.
type ProductUseCase struct {
	tx      TxRunner
	log     zerolog.Logger
	metrics CatalogMetrics
	now     func() time.Time
}

// NewProductUseCase construye el caso de uso. metrics puede ser nil.
func NewProductUseCase(tx TxRunner, log zerolog.Logger, metrics CatalogMetrics) *ProductUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &ProductUseCase{tx: tx, log: log, metrics: metrics, now: time.Now}
}

// List devuelve todos los productos, incluidos los desactivados.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	uc.log.Info().Msg("buscando todos los productos")
	return uc.list(ctx, func(products repository.ProductRepository) ([]*entity.Product, error) {
		return products.List(ctx)
	})
}

// ListBySeller productos de un vendedor (sin filtrar por estado).
func (uc *ProductUseCase) ListBySeller(ctx context.Context, sellerID int64) ([]dto.ProductResponse, error) {
	uc.log.Info().Int64("seller_id", sellerID).Msg("buscando productos por vendedor")
	return uc.list(ctx, func(products repository.ProductRepository) ([]*entity.Product, error) {
		return products.ListBySeller(ctx, sellerID)
	})
}

// ListByCategory productos con la categoría exacta.
func (uc *ProductUseCase) ListByCategory(ctx context.Context, category string) ([]dto.ProductResponse, error) {
	uc.log.Info().Str("category", category).Msg("buscando productos por categoría")
	return uc.list(ctx, func(products repository.ProductRepository) ([]*entity.Product, error) {
		return products.ListByCategory(ctx, category)
	})
}

// ListActiveForActiveSellers productos activos cuyo vendedor también está activo.
func (uc *ProductUseCase) ListActiveForActiveSellers(ctx context.Context) ([]dto.ProductResponse, error) {
	uc.log.Info().Msg("buscando productos activos")
	return uc.list(ctx, func(products repository.ProductRepository) ([]*entity.Product, error) {
		return products.ListActiveForActiveSellers(ctx)
	})
}

// ListInStock productos activos, con stock > 0 y de vendedores activos.
func (uc *ProductUseCase) ListInStock(ctx context.Context) ([]dto.ProductResponse, error) {
	uc.log.Info().Msg("buscando productos con stock")
	return uc.list(ctx, func(products repository.ProductRepository) ([]*entity.Product, error) {
		return products.ListInStock(ctx)
	})
}

func (uc *ProductUseCase) list(ctx context.Context, query func(repository.ProductRepository) ([]*entity.Product, error)) ([]dto.ProductResponse, error) {
	var out []dto.ProductResponse
	err := uc.tx.Run(ctx, func(sellers repository.SellerRepository, products repository.ProductRepository) error {
		list, err := query(products)
		if err != nil {
			return err
		}
		owners := make(map[int64]*entity.Seller)
		out = make([]dto.ProductResponse, 0, len(list))
		for _, p := range list {
			owner, ok := owners[p.SellerID]
			if !ok {
				owner, err = sellers.GetByID(ctx, p.SellerID)
				if err != nil {
					return err
				}
				owners[p.SellerID] = owner
			}
			out = append(out, *toProductResponse(p, owner))
		}
		return nil
	})
	if err != nil {
		uc.log.Error().Err(err).Msg("listando productos")
		return nil, err
	}
	return out, nil
}

// GetByID obtiene un producto aunque esté desactivado. NotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	uc.log.Info().Int64("product_id", id).Msg("buscando producto")

	var out *dto.ProductResponse
	err := uc.tx.Run(ctx, func(sellers repository.SellerRepository, products repository.ProductRepository) error {
		product, err := products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return productNotFound(id)
		}
		owner, err := sellers.GetByID(ctx, product.SellerID)
		if err != nil {
			return err
		}
		out = toProductResponse(product, owner)
		return nil
	})
	if err != nil {
		uc.logFailure(err, id, "producto no encontrado")
		return nil, err
	}
	return out, nil
}

// Create crea un producto activo para un vendedor existente y activo. Stock nil => 0.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	uc.log.Info().Int64("seller_id", in.SellerID).Str("name", in.Name).Msg("creando nuevo producto")

	var out *dto.ProductResponse
	err := uc.tx.Run(ctx, func(sellers repository.SellerRepository, products repository.ProductRepository) error {
		// FOR UPDATE: el vendedor no puede desactivarse entre la verificación y el insert.
		seller, err := sellers.GetByIDForUpdate(ctx, in.SellerID)
		if err != nil {
			return err
		}
		if seller == nil {
			return sellerNotFound(in.SellerID)
		}
		if !seller.Active {
			return domain.Invalid("No se pueden crear productos para vendedores inactivos")
		}

		product := &entity.Product{
			SellerID:    seller.ID,
			Name:        in.Name,
			Description: in.Description,
			Price:       in.Price,
			Stock:       stockOrZero(in.Stock),
			Category:    in.Category,
			ImageURL:    in.ImageURL,
			Active:      true,
			CreatedAt:   uc.now(),
		}
		if err := products.Create(ctx, product); err != nil {
			return err
		}
		out = toProductResponse(product, seller)
		return nil
	})
	if err != nil {
		uc.metrics.ProductRejected(rejectReason(err))
		uc.logFailure(err, 0, "creación de producto rechazada")
		return nil, err
	}

	uc.metrics.ProductCreated()
	uc.log.Info().Int64("product_id", out.ID).Msg("producto creado")
	return out, nil
}

// Update sobrescribe los campos editables. No cambia el vendedor ni el estado activo.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	uc.log.Info().Int64("product_id", id).Msg("actualizando producto")

	var out *dto.ProductResponse
	err := uc.tx.Run(ctx, func(sellers repository.SellerRepository, products repository.ProductRepository) error {
		product, err := products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return productNotFound(id)
		}

		product.Name = in.Name
		product.Description = in.Description
		product.Price = in.Price
		product.Stock = stockOrZero(in.Stock)
		product.Category = in.Category
		product.ImageURL = in.ImageURL
		if err := products.Update(ctx, product); err != nil {
			return err
		}

		owner, err := sellers.GetByID(ctx, product.SellerID)
		if err != nil {
			return err
		}
		out = toProductResponse(product, owner)
		return nil
	})
	if err != nil {
		uc.logFailure(err, id, "actualización de producto rechazada")
		return nil, err
	}

	uc.log.Info().Int64("product_id", id).Msg("producto actualizado")
	return out, nil
}

// Delete desactiva el producto (borrado lógico). La fila sigue accesible por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	uc.log.Info().Int64("product_id", id).Msg("eliminando producto")

	err := uc.tx.Run(ctx, func(_ repository.SellerRepository, products repository.ProductRepository) error {
		product, err := products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return productNotFound(id)
		}
		product.Active = false
		return products.Update(ctx, product)
	})
	if err != nil {
		uc.logFailure(err, id, "eliminación de producto rechazada")
		return err
	}

	uc.metrics.ProductDeactivated()
	uc.log.Info().Int64("product_id", id).Msg("producto desactivado")
	return nil
}

func (uc *ProductUseCase) logFailure(err error, id int64, msg string) {
	ev := uc.log.Error().Err(err)
	if domain.IsDomain(err) {
		ev = uc.log.Warn().Str("reason", err.Error())
	}
	if id != 0 {
		ev = ev.Int64("product_id", id)
	}
	ev.Msg(msg)
}

func productNotFound(id int64) error {
	return domain.NotFound("Producto no encontrado con ID: %d", id)
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "seller_not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "seller_inactive"
	default:
		return "internal"
	}
}

func stockOrZero(stock *int) int {
	if stock == nil {
		return 0
	}
	return *stock
}

// toProductResponse mapea el producto; owner puede ser nil (vendedor ya eliminado).
func toProductResponse(p *entity.Product, owner *entity.Seller) *dto.ProductResponse {
	out := &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		SellerID:    p.SellerID,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
	}
	if owner != nil {
		out.SellerName = owner.Name
		out.SellerEmail = owner.Email
	}
	return out
}

package catalogxml

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/pkg/validator"
)

// SellerCreator alta de vendedores (usecase.SellerUseCase).
type SellerCreator interface {
	Create(ctx context.Context, in dto.SellerRequest) (*dto.SellerResponse, error)
}

// ProductCreator alta de productos (usecase.ProductUseCase).
type ProductCreator interface {
	Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error)
}

// Result resumen de una importación.
type Result struct {
	Sellers  int
	Products int
	Skipped  int
}

// Importer carga un catálogo leído con Read pasando por las mismas reglas que la API.
type Importer struct {
	sellers  SellerCreator
	products ProductCreator
	log      zerolog.Logger
}

// NewImporter construye el importador.
func NewImporter(sellers SellerCreator, products ProductCreator, log zerolog.Logger) *Importer {
	return &Importer{sellers: sellers, products: products, log: log}
}

// Import crea cada vendedor y luego sus productos. Un registro rechazado (validación o regla de negocio)
// se omite y se registra; si el vendedor se omite también se omiten sus productos.
// Los fallos de almacenamiento cortan la importación.
func (im *Importer) Import(ctx context.Context, entries []SellerEntry) (Result, error) {
	var res Result
	for _, e := range entries {
		if fields := validator.ValidateStruct(&e.Seller); len(fields) > 0 {
			im.log.Warn().Str("email", e.Seller.Email).Interface("fields", fields).Msg("vendedor inválido, omitido")
			res.Skipped += 1 + len(e.Products)
			continue
		}
		seller, err := im.sellers.Create(ctx, e.Seller)
		if err != nil {
			if !domain.IsDomain(err) {
				return res, fmt.Errorf("crear vendedor %s: %w", e.Seller.Email, err)
			}
			im.log.Warn().Err(err).Str("email", e.Seller.Email).Msg("vendedor rechazado, omitido")
			res.Skipped += 1 + len(e.Products)
			continue
		}
		res.Sellers++

		for _, p := range e.Products {
			p.SellerID = seller.ID
			if fields := validator.ValidateStruct(&p); len(fields) > 0 {
				im.log.Warn().Str("producto", p.Name).Interface("fields", fields).Msg("producto inválido, omitido")
				res.Skipped++
				continue
			}
			if _, err := im.products.Create(ctx, p); err != nil {
				if !domain.IsDomain(err) {
					return res, fmt.Errorf("crear producto %s: %w", p.Name, err)
				}
				im.log.Warn().Err(err).Str("producto", p.Name).Int64("seller_id", seller.ID).Msg("producto rechazado, omitido")
				res.Skipped++
				continue
			}
			res.Products++
		}
	}
	return res, nil
}

package usecase

import (
	"context"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn retorna error se hace rollback: ninguna operación deja efectos parciales.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		sellers repository.SellerRepository,
		products repository.ProductRepository,
	) error) error
}

// SellerCache caché de lectura de vendedores por ID. Las fallas se ignoran (la BD es la fuente de verdad).
//
// Get devuelve también la generación de la clave, que Invalidate incrementa. Set recibe la
// generación leída antes de consultar la BD y no escribe si cambió: una lectura que se cruza
// con un Update o Delete no repone el registro viejo.
type SellerCache interface {
	Get(ctx context.Context, id int64) (seller *dto.SellerResponse, gen int64, ok bool)
	Set(ctx context.Context, seller *dto.SellerResponse, gen int64)
	Invalidate(ctx context.Context, id int64)
}

// CatalogMetrics contadores del catálogo.
type CatalogMetrics interface {
	ProductCreated()
	ProductDeactivated()
	ProductRejected(reason string)
}

type noopCache struct{}

func (noopCache) Get(context.Context, int64) (*dto.SellerResponse, int64, bool) { return nil, 0, false }
func (noopCache) Set(context.Context, *dto.SellerResponse, int64)               {}
func (noopCache) Invalidate(context.Context, int64)                             {}

type noopMetrics struct{}

func (noopMetrics) ProductCreated()        {}
func (noopMetrics) ProductDeactivated()    {}
func (noopMetrics) ProductRejected(string) {}

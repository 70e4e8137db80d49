package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/application/usecase"
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/infrastructure/memory"
)

type catalog struct {
	sellers  *usecase.SellerUseCase
	products *usecase.ProductUseCase
	metrics  *catalogMetrics
}

type catalogMetrics struct {
	created     int
	deactivated int
	rejected    []string
}

func (m *catalogMetrics) ProductCreated()               { m.created++ }
func (m *catalogMetrics) ProductDeactivated()           { m.deactivated++ }
func (m *catalogMetrics) ProductRejected(reason string) { m.rejected = append(m.rejected, reason) }

func newCatalog(t *testing.T) catalog {
	t.Helper()
	store := memory.New()
	metrics := &catalogMetrics{}
	return catalog{
		sellers:  usecase.NewSellerUseCase(store, nil, zerolog.Nop()),
		products: usecase.NewProductUseCase(store, zerolog.Nop(), metrics),
		metrics:  metrics,
	}
}

func boolPtr(b bool) *bool    { return &b }
func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func (c catalog) seller(t *testing.T, name, email string, active *bool) *dto.SellerResponse {
	t.Helper()
	s, err := c.sellers.Create(context.Background(), dto.SellerRequest{Name: name, Email: email, Active: active})
	require.NoError(t, err)
	return s
}

func (c catalog) product(t *testing.T, sellerID int64, name string, stock *int) *dto.ProductResponse {
	t.Helper()
	p, err := c.products.Create(context.Background(), dto.CreateProductRequest{
		Name:     name,
		Price:    decimal.RequireFromString("19.90"),
		Stock:    stock,
		SellerID: sellerID,
		Category: strPtr("hogar"),
	})
	require.NoError(t, err)
	return p
}

func TestSeller_CreateEstadoPorDefectoActivo(t *testing.T) {
	c := newCatalog(t)
	s := c.seller(t, "Ana", "ana@x.com", nil)
	assert.True(t, s.Active)
	assert.NotZero(t, s.ID)
	assert.False(t, s.CreatedAt.IsZero())
}

func TestSeller_EmailDuplicadoConflict(t *testing.T) {
	c := newCatalog(t)
	c.seller(t, "Uno", "dup@x.com", nil)

	_, err := c.sellers.Create(context.Background(), dto.SellerRequest{Name: "Dos", Email: "dup@x.com"})
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, "Ya existe un vendedor con el email: dup@x.com", err.Error())
}

func TestSeller_GetInexistente(t *testing.T) {
	c := newCatalog(t)
	_, err := c.sellers.GetByID(context.Background(), 7)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Vendedor no encontrado con ID: 7", err.Error())
}

func TestSeller_UpdateConservaEstadoSiNoViene(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	s := c.seller(t, "Ana", "ana@x.com", boolPtr(false))

	updated, err := c.sellers.Update(ctx, s.ID, dto.SellerRequest{Name: "Ana María", Email: "ana@x.com", Phone: strPtr("555")})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", updated.Name)
	assert.False(t, updated.Active)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "555", *updated.Phone)

	// teléfono se sobrescribe incondicionalmente
	updated, err = c.sellers.Update(ctx, s.ID, dto.SellerRequest{Name: "Ana María", Email: "ana@x.com", Active: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, updated.Active)
	assert.Nil(t, updated.Phone)
}

func TestSeller_UpdateEmailDeOtroVendedor(t *testing.T) {
	c := newCatalog(t)
	c.seller(t, "Uno", "uno@x.com", nil)
	dos := c.seller(t, "Dos", "dos@x.com", nil)

	_, err := c.sellers.Update(context.Background(), dos.ID, dto.SellerRequest{Name: "Dos", Email: "uno@x.com"})
	require.ErrorIs(t, err, domain.ErrConflict)

	got, err := c.sellers.GetByID(context.Background(), dos.ID)
	require.NoError(t, err)
	assert.Equal(t, "dos@x.com", got.Email)
}

func TestSeller_UpdateInexistente(t *testing.T) {
	c := newCatalog(t)
	_, err := c.sellers.Update(context.Background(), 99, dto.SellerRequest{Name: "X", Email: "x@x.com"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSeller_ListActive(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	c.seller(t, "On", "on@x.com", nil)
	c.seller(t, "Off", "off@x.com", boolPtr(false))

	all, err := c.sellers.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := c.sellers.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "on@x.com", active[0].Email)
}

func TestSeller_DeleteEnCascada(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	s := c.seller(t, "Ana", "ana@x.com", nil)
	p := c.product(t, s.ID, "Lámpara", intPtr(2))

	require.NoError(t, c.sellers.Delete(ctx, s.ID))

	_, err := c.sellers.GetByID(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = c.products.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, c.sellers.Delete(ctx, s.ID), domain.ErrNotFound)
}

func TestProduct_FlujoVendedorInactivo(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	bob := c.seller(t, "Bob", "bob@x.com", boolPtr(false))

	in := dto.CreateProductRequest{Name: "Silla", Price: decimal.NewFromInt(50), SellerID: bob.ID}
	_, err := c.products.Create(ctx, in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "No se pueden crear productos para vendedores inactivos", err.Error())

	all, err := c.products.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = c.sellers.Update(ctx, bob.ID, dto.SellerRequest{Name: "Bob", Email: "bob@x.com", Active: boolPtr(true)})
	require.NoError(t, err)

	p, err := c.products.Create(ctx, in)
	require.NoError(t, err)
	assert.True(t, p.Active)
	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, "Bob", p.SellerName)
	assert.Equal(t, "bob@x.com", p.SellerEmail)

	assert.Equal(t, 1, c.metrics.created)
	assert.Equal(t, []string{"seller_inactive"}, c.metrics.rejected)
}

func TestProduct_CreateVendedorInexistente(t *testing.T) {
	c := newCatalog(t)
	_, err := c.products.Create(context.Background(), dto.CreateProductRequest{Name: "Mesa", Price: decimal.NewFromInt(1), SellerID: 404})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Vendedor no encontrado con ID: 404", err.Error())
}

func TestProduct_DeleteEsLogico(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	s := c.seller(t, "Ana", "ana@x.com", nil)
	p := c.product(t, s.ID, "Lámpara", intPtr(3))

	require.NoError(t, c.products.Delete(ctx, p.ID))

	got, err := c.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	all, err := c.products.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	visible, err := c.products.ListActiveForActiveSellers(ctx)
	require.NoError(t, err)
	assert.Empty(t, visible)

	inStock, err := c.products.ListInStock(ctx)
	require.NoError(t, err)
	assert.Empty(t, inStock)

	assert.Equal(t, 1, c.metrics.deactivated)
	assert.ErrorIs(t, c.products.Delete(ctx, 999), domain.ErrNotFound)
}

func TestProduct_UpdateNoCambiaVendedorNiEstado(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	s := c.seller(t, "Ana", "ana@x.com", nil)
	p := c.product(t, s.ID, "Lámpara", intPtr(3))
	require.NoError(t, c.products.Delete(ctx, p.ID))

	updated, err := c.products.Update(ctx, p.ID, dto.UpdateProductRequest{
		Name:  "Lámpara LED",
		Price: decimal.RequireFromString("25.50"),
		Stock: intPtr(10),
	})
	require.NoError(t, err)
	assert.Equal(t, "Lámpara LED", updated.Name)
	assert.True(t, decimal.RequireFromString("25.50").Equal(updated.Price))
	assert.Equal(t, 10, updated.Stock)
	assert.Nil(t, updated.Category)
	assert.Equal(t, s.ID, updated.SellerID)
	assert.False(t, updated.Active)

	_, err = c.products.Update(ctx, 999, dto.UpdateProductRequest{Name: "X", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_VisibilidadSegunEstadoDelVendedor(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	s := c.seller(t, "Ana", "ana@x.com", nil)
	c.product(t, s.ID, "Con stock", intPtr(4))
	c.product(t, s.ID, "Sin stock", nil)

	visible, err := c.products.ListActiveForActiveSellers(ctx)
	require.NoError(t, err)
	assert.Len(t, visible, 2)

	inStock, err := c.products.ListInStock(ctx)
	require.NoError(t, err)
	require.Len(t, inStock, 1)
	assert.Equal(t, "Con stock", inStock[0].Name)

	_, err = c.sellers.Update(ctx, s.ID, dto.SellerRequest{Name: "Ana", Email: "ana@x.com", Active: boolPtr(false)})
	require.NoError(t, err)

	visible, err = c.products.ListActiveForActiveSellers(ctx)
	require.NoError(t, err)
	assert.Empty(t, visible)

	// desactivar al vendedor no toca el flag propio del producto
	all, err := c.products.ListBySeller(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, p := range all {
		assert.True(t, p.Active)
	}
}

func TestProduct_DatosDelVendedorSeLeenEnVivo(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	s := c.seller(t, "Ana", "ana@x.com", nil)
	p := c.product(t, s.ID, "Lámpara", nil)

	_, err := c.sellers.Update(ctx, s.ID, dto.SellerRequest{Name: "Ana Store", Email: "store@x.com"})
	require.NoError(t, err)

	got, err := c.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Store", got.SellerName)
	assert.Equal(t, "store@x.com", got.SellerEmail)
}

func TestProduct_ListByCategory(t *testing.T) {
	c := newCatalog(t)
	ctx := context.Background()
	s := c.seller(t, "Ana", "ana@x.com", nil)
	c.product(t, s.ID, "Lámpara", nil)
	_, err := c.products.Create(ctx, dto.CreateProductRequest{
		Name: "Taladro", Price: decimal.NewFromInt(80), SellerID: s.ID, Category: strPtr("herramientas"),
	})
	require.NoError(t, err)

	hogar, err := c.products.ListByCategory(ctx, "hogar")
	require.NoError(t, err)
	require.Len(t, hogar, 1)
	assert.Equal(t, "Lámpara", hogar[0].Name)

	none, err := c.products.ListByCategory(ctx, "jardín")
	require.NoError(t, err)
	assert.Empty(t, none)
}

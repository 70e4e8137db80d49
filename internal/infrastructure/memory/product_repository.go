package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*productRepo)(nil)

type productRepo struct {
	st *state
}

func (r *productRepo) Create(_ context.Context, product *entity.Product) error {
	if _, ok := r.st.sellers[product.SellerID]; !ok {
		return fmt.Errorf("insert product: seller %d no existe", product.SellerID)
	}
	r.st.lastProduct++
	product.ID = r.st.lastProduct
	r.st.products[product.ID] = *product
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := r.st.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// Update no cambia el vendedor dueño aunque venga distinto en product.
func (r *productRepo) Update(_ context.Context, product *entity.Product) error {
	current, ok := r.st.products[product.ID]
	if !ok {
		return fmt.Errorf("update product: id %d no existe", product.ID)
	}
	updated := *product
	updated.SellerID = current.SellerID
	updated.CreatedAt = current.CreatedAt
	r.st.products[product.ID] = updated
	return nil
}

func (r *productRepo) List(_ context.Context) ([]*entity.Product, error) {
	return r.filter(func(*entity.Product) bool { return true }), nil
}

func (r *productRepo) ListBySeller(_ context.Context, sellerID int64) ([]*entity.Product, error) {
	return r.filter(func(p *entity.Product) bool { return p.SellerID == sellerID }), nil
}

func (r *productRepo) ListByCategory(_ context.Context, category string) ([]*entity.Product, error) {
	return r.filter(func(p *entity.Product) bool { return p.Category != nil && *p.Category == category }), nil
}

func (r *productRepo) ListActiveForActiveSellers(_ context.Context) ([]*entity.Product, error) {
	return r.filter(func(p *entity.Product) bool { return p.Active && r.sellerActive(p.SellerID) }), nil
}

func (r *productRepo) ListInStock(_ context.Context) ([]*entity.Product, error) {
	return r.filter(func(p *entity.Product) bool { return p.Available() && r.sellerActive(p.SellerID) }), nil
}

func (r *productRepo) sellerActive(id int64) bool {
	s, ok := r.st.sellers[id]
	return ok && s.Active
}

func (r *productRepo) filter(keep func(*entity.Product) bool) []*entity.Product {
	list := make([]*entity.Product, 0, len(r.st.products))
	for _, p := range r.st.products {
		p := p
		if keep(&p) {
			list = append(list, &p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

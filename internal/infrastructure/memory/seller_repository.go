package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

var _ repository.SellerRepository = (*sellerRepo)(nil)

type sellerRepo struct {
	st *state
}

func (r *sellerRepo) Create(_ context.Context, seller *entity.Seller) error {
	if r.emailTaken(seller.Email, 0) {
		return domain.Conflict("Ya existe un vendedor con el email: %s", seller.Email)
	}
	r.st.lastSeller++
	seller.ID = r.st.lastSeller
	r.st.sellers[seller.ID] = *seller
	return nil
}

func (r *sellerRepo) GetByID(_ context.Context, id int64) (*entity.Seller, error) {
	s, ok := r.st.sellers[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// GetByIDForUpdate equivale a GetByID: la transacción ya tiene el almacén en exclusiva.
func (r *sellerRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Seller, error) {
	return r.GetByID(ctx, id)
}

func (r *sellerRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	return r.emailTaken(email, 0), nil
}

func (r *sellerRepo) Update(_ context.Context, seller *entity.Seller) error {
	if _, ok := r.st.sellers[seller.ID]; !ok {
		return fmt.Errorf("update seller: id %d no existe", seller.ID)
	}
	if r.emailTaken(seller.Email, seller.ID) {
		return domain.Conflict("Ya existe un vendedor con el email: %s", seller.Email)
	}
	r.st.sellers[seller.ID] = *seller
	return nil
}

func (r *sellerRepo) List(_ context.Context) ([]*entity.Seller, error) {
	return r.filter(func(*entity.Seller) bool { return true }), nil
}

func (r *sellerRepo) ListActive(_ context.Context) ([]*entity.Seller, error) {
	return r.filter(func(s *entity.Seller) bool { return s.Active }), nil
}

// Delete borra el vendedor y sus productos (ON DELETE CASCADE).
func (r *sellerRepo) Delete(_ context.Context, id int64) error {
	delete(r.st.sellers, id)
	for pid, p := range r.st.products {
		if p.SellerID == id {
			delete(r.st.products, pid)
		}
	}
	return nil
}

func (r *sellerRepo) emailTaken(email string, except int64) bool {
	for id, s := range r.st.sellers {
		if id != except && s.Email == email {
			return true
		}
	}
	return false
}

func (r *sellerRepo) filter(keep func(*entity.Seller) bool) []*entity.Seller {
	list := make([]*entity.Seller, 0, len(r.st.sellers))
	for _, s := range r.st.sellers {
		s := s
		if keep(&s) {
			list = append(list, &s)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// Package memory implementa los puertos de persistencia en memoria (STORE_DRIVER=memory y tests).
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/marketplace-api/internal/application/auth"
	"github.com/jhoicas/marketplace-api/internal/application/usecase"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

var (
	_ usecase.TxRunner     = (*Store)(nil)
	_ auth.AccountTxRunner = (*Store)(nil)
)

// Store guarda cuentas, vendedores y productos en mapas.
// Cada Run trabaja sobre una copia del estado y la publica solo si fn no falla:
// un error deja el almacén exactamente como estaba. Las transacciones se serializan.
type Store struct {
	mu sync.Mutex
	st *state
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn con repositorios de vendedores y productos atados a una transacción.
func (s *Store) Run(ctx context.Context, fn func(
	sellers repository.SellerRepository,
	products repository.ProductRepository,
) error) error {
	return s.run(ctx, func(work *state) error {
		return fn(&sellerRepo{st: work}, &productRepo{st: work})
	})
}

// RunAccounts ejecuta fn con el repositorio de cuentas atado a una transacción.
func (s *Store) RunAccounts(ctx context.Context, fn func(accounts repository.AccountRepository) error) error {
	return s.run(ctx, func(work *state) error {
		return fn(&accountRepo{st: work})
	})
}

func (s *Store) run(ctx context.Context, fn func(work *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(work); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = work
	return nil
}

type state struct {
	accounts map[int64]entity.Account
	sellers  map[int64]entity.Seller
	products map[int64]entity.Product

	lastAccount int64
	lastSeller  int64
	lastProduct int64
}

func newState() *state {
	return &state{
		accounts: make(map[int64]entity.Account),
		sellers:  make(map[int64]entity.Seller),
		products: make(map[int64]entity.Product),
	}
}

func (s *state) clone() *state {
	c := &state{
		accounts:    make(map[int64]entity.Account, len(s.accounts)),
		sellers:     make(map[int64]entity.Seller, len(s.sellers)),
		products:    make(map[int64]entity.Product, len(s.products)),
		lastAccount: s.lastAccount,
		lastSeller:  s.lastSeller,
		lastProduct: s.lastProduct,
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.sellers {
		c.sellers[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	return c
}

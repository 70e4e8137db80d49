package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*accountRepo)(nil)

type accountRepo struct {
	st *state
}

func (r *accountRepo) FindByID(_ context.Context, id int64) (*entity.Account, error) {
	a, ok := r.st.accounts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *accountRepo) FindByUsername(_ context.Context, username string) (*entity.Account, error) {
	return r.find(func(a *entity.Account) bool { return a.Username == username }), nil
}

func (r *accountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	return r.find(func(a *entity.Account) bool { return a.Email != nil && *a.Email == email }), nil
}

func (r *accountRepo) FindByToken(_ context.Context, token string) (*entity.Account, error) {
	if token == "" {
		return nil, nil
	}
	return r.find(func(a *entity.Account) bool { return a.Token != nil && *a.Token == token }), nil
}

func (r *accountRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	a, err := r.FindByUsername(ctx, username)
	return a != nil, err
}

func (r *accountRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	a, err := r.FindByEmail(ctx, email)
	return a != nil, err
}

// Save aplica las mismas restricciones únicas que la tabla accounts.
func (r *accountRepo) Save(_ context.Context, account *entity.Account) error {
	for id, other := range r.st.accounts {
		if id == account.ID {
			continue
		}
		if other.Username == account.Username {
			return domain.Conflict("El username ya está en uso")
		}
		if account.Email != nil && other.Email != nil && *other.Email == *account.Email {
			return domain.Conflict("El email ya está en uso")
		}
		if account.HasSession() && other.HasSession() && *other.Token == *account.Token {
			return fmt.Errorf("save account: token duplicado")
		}
	}

	if account.ID == 0 {
		r.st.lastAccount++
		account.ID = r.st.lastAccount
	} else if _, ok := r.st.accounts[account.ID]; !ok {
		return fmt.Errorf("save account: id %d no existe", account.ID)
	}
	r.st.accounts[account.ID] = *account
	return nil
}

func (r *accountRepo) find(match func(*entity.Account) bool) *entity.Account {
	for _, a := range r.st.accounts {
		if match(&a) {
			found := a
			return &found
		}
	}
	return nil
}

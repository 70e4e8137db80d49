package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

const accountColumns = `id, username, password_hash, email, token, active, last_login_at, created_at`

// AccountRepo implementación del puerto AccountRepository sobre PostgreSQL (usable con pool o tx).
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador de persistencia para cuentas. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

// FindByID obtiene una cuenta por ID.
func (r *AccountRepo) FindByID(ctx context.Context, id int64) (*entity.Account, error) {
	return r.findOne(ctx, "get account by id", `WHERE id = $1`, id)
}

// FindByUsername obtiene una cuenta por username.
func (r *AccountRepo) FindByUsername(ctx context.Context, username string) (*entity.Account, error) {
	return r.findOne(ctx, "get account by username", `WHERE username = $1`, username)
}

// FindByEmail obtiene una cuenta por email.
func (r *AccountRepo) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.findOne(ctx, "get account by email", `WHERE email = $1`, email)
}

// FindByToken obtiene la cuenta que tiene exactamente ese token de sesión.
func (r *AccountRepo) FindByToken(ctx context.Context, token string) (*entity.Account, error) {
	if token == "" {
		return nil, nil
	}
	return r.findOne(ctx, "get account by token", `WHERE token = $1`, token)
}

// ExistsByUsername informa si el username ya está registrado.
func (r *AccountRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE username = $1)`, username)
}

// ExistsByEmail informa si el email ya está registrado.
func (r *AccountRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1)`, email)
}

// Save inserta (ID == 0) o actualiza la cuenta.
func (r *AccountRepo) Save(ctx context.Context, a *entity.Account) error {
	var err error
	if a.ID == 0 {
		query := `
			INSERT INTO accounts (username, password_hash, email, token, active, last_login_at, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`
		err = r.q.QueryRow(ctx, query,
			a.Username, a.PasswordHash, a.Email, a.Token, a.Active, a.LastLoginAt, a.CreatedAt,
		).Scan(&a.ID)
	} else {
		query := `
			UPDATE accounts SET username = $2, password_hash = $3, email = $4, token = $5, active = $6, last_login_at = $7
			WHERE id = $1`
		_, err = r.q.Exec(ctx, query,
			a.ID, a.Username, a.PasswordHash, a.Email, a.Token, a.Active, a.LastLoginAt,
		)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return accountConflict(err)
		}
		return fmt.Errorf("save account: %w", err)
	}
	return nil
}

func accountConflict(err error) error {
	switch violatedConstraint(err) {
	case "accounts_email_key":
		return domain.Conflict("El email ya está en uso")
	case "accounts_token_key":
		return fmt.Errorf("save account: token duplicado: %w", err)
	default:
		return domain.Conflict("El username ya está en uso")
	}
}

func (r *AccountRepo) findOne(ctx context.Context, op, where string, arg any) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ` + where
	var a entity.Account
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.Email, &a.Token, &a.Active, &a.LastLoginAt, &a.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &a, nil
}

func (r *AccountRepo) exists(ctx context.Context, query string, arg any) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(ctx, query, arg).Scan(&ok); err != nil {
		return false, fmt.Errorf("check account: %w", err)
	}
	return ok, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
)

// Asegura que SellerRepo implementa repository.SellerRepository.
var _ repository.SellerRepository = (*SellerRepo)(nil)

const sellerColumns = `id, name, email, phone, address, tax_id, active, created_at`

// SellerRepo implementación del puerto SellerRepository sobre PostgreSQL.
type SellerRepo struct {
	q Querier
}

// NewSellerRepository construye el adaptador de persistencia para vendedores.
func NewSellerRepository(q Querier) *SellerRepo {
	return &SellerRepo{q: q}
}

// Create persiste un nuevo vendedor y asigna su ID.
func (r *SellerRepo) Create(ctx context.Context, s *entity.Seller) error {
	query := `
		INSERT INTO sellers (name, email, phone, address, tax_id, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		s.Name, s.Email, s.Phone, s.Address, s.TaxID, s.Active, s.CreatedAt,
	).Scan(&s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("Ya existe un vendedor con el email: %s", s.Email)
		}
		return fmt.Errorf("insert seller: %w", err)
	}
	return nil
}

// GetByID obtiene un vendedor por ID.
func (r *SellerRepo) GetByID(ctx context.Context, id int64) (*entity.Seller, error) {
	return r.getOne(ctx, `SELECT `+sellerColumns+` FROM sellers WHERE id = $1`, id)
}

// GetByIDForUpdate igual que GetByID pero bloquea la fila (FOR UPDATE) hasta el fin de la tx.
func (r *SellerRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Seller, error) {
	return r.getOne(ctx, `SELECT `+sellerColumns+` FROM sellers WHERE id = $1 FOR UPDATE`, id)
}

// ExistsByEmail informa si algún vendedor usa el email.
func (r *SellerRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM sellers WHERE email = $1)`, email).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check seller email: %w", err)
	}
	return ok, nil
}

// Update actualiza un vendedor existente.
func (r *SellerRepo) Update(ctx context.Context, s *entity.Seller) error {
	query := `
		UPDATE sellers SET name = $2, email = $3, phone = $4, address = $5, tax_id = $6, active = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		s.ID, s.Name, s.Email, s.Phone, s.Address, s.TaxID, s.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict("Ya existe un vendedor con el email: %s", s.Email)
		}
		return fmt.Errorf("update seller: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update seller %d: sin filas afectadas", s.ID)
	}
	return nil
}

// List devuelve todos los vendedores.
func (r *SellerRepo) List(ctx context.Context) ([]*entity.Seller, error) {
	return r.list(ctx, `SELECT `+sellerColumns+` FROM sellers ORDER BY id`)
}

// ListActive devuelve los vendedores con active = true.
func (r *SellerRepo) ListActive(ctx context.Context) ([]*entity.Seller, error) {
	return r.list(ctx, `SELECT `+sellerColumns+` FROM sellers WHERE active = true ORDER BY id`)
}

// Delete elimina un vendedor por ID. La FK de products tiene ON DELETE CASCADE.
func (r *SellerRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM sellers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete seller: %w", err)
	}
	return nil
}

func (r *SellerRepo) getOne(ctx context.Context, query string, id int64) (*entity.Seller, error) {
	var s entity.Seller
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Email, &s.Phone, &s.Address, &s.TaxID, &s.Active, &s.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get seller: %w", err)
	}
	return &s, nil
}

func (r *SellerRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Seller, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sellers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Seller
	for rows.Next() {
		var s entity.Seller
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Address, &s.TaxID, &s.Active, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan seller: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

package auth_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/marketplace-api/internal/application/auth"
	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
	"github.com/jhoicas/marketplace-api/internal/infrastructure/memory"
)

type countingMetrics struct {
	ok     int
	failed []string
}

func (m *countingMetrics) LoginSucceeded()          { m.ok++ }
func (m *countingMetrics) LoginFailed(reason string) { m.failed = append(m.failed, reason) }

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.Store, *countingMetrics) {
	t.Helper()
	store := memory.New()
	metrics := &countingMetrics{}
	uc := auth.NewAuthUseCase(store, zerolog.Nop(), auth.Options{
		BcryptCost: bcrypt.MinCost,
		Metrics:    metrics,
	})
	return uc, store, metrics
}

func register(t *testing.T, uc *auth.AuthUseCase, username, password, email string) *dto.AccountResponse {
	t.Helper()
	acc, err := uc.Register(context.Background(), dto.RegisterRequest{Username: username, Password: password, Email: email})
	require.NoError(t, err)
	return acc
}

func storedAccount(t *testing.T, store *memory.Store, id int64) *entity.Account {
	t.Helper()
	var acc *entity.Account
	err := store.RunAccounts(context.Background(), func(accounts repository.AccountRepository) error {
		var err error
		acc, err = accounts.FindByID(context.Background(), id)
		return err
	})
	require.NoError(t, err)
	require.NotNil(t, acc)
	return acc
}

func TestRegister_GuardaHashNuncaPlano(t *testing.T) {
	uc, store, _ := newAuth(t)

	acc := register(t, uc, "alice", "secret1", "alice@x.com")
	assert.Equal(t, "alice", acc.Username)
	assert.Equal(t, "alice@x.com", acc.Email)

	stored := storedAccount(t, store, acc.ID)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))
	assert.True(t, stored.Active)
	assert.False(t, stored.HasSession())
}

func TestRegister_UsernameDuplicadoTienePrioridad(t *testing.T) {
	uc, _, _ := newAuth(t)
	register(t, uc, "alice", "secret1", "alice@x.com")

	_, err := uc.Register(context.Background(), dto.RegisterRequest{Username: "alice", Password: "secret2", Email: "alice@x.com"})
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, "El username ya está en uso", err.Error())
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _, _ := newAuth(t)
	register(t, uc, "alice", "secret1", "alice@x.com")

	_, err := uc.Register(context.Background(), dto.RegisterRequest{Username: "alice2", Password: "secret2", Email: "alice@x.com"})
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, "El email ya está en uso", err.Error())
}

func TestLogin_FlujoCompleto(t *testing.T) {
	uc, _, metrics := newAuth(t)
	ctx := context.Background()
	acc := register(t, uc, "alice", "secret1", "alice@x.com")

	session, err := uc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, dto.TokenTypeBearer, session.TokenType)
	assert.Equal(t, acc.ID, session.AccountID)
	assert.Equal(t, "alice", session.Username)
	assert.Equal(t, "alice@x.com", session.Email)
	assert.Len(t, session.Token, 32)

	valid, err := uc.ValidateToken(ctx, session.Token)
	require.NoError(t, err)
	assert.True(t, valid)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "wrong"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, "Contraseña incorrecta", err.Error())

	assert.Equal(t, 1, metrics.ok)
	assert.Equal(t, []string{"unauthorized"}, metrics.failed)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _, metrics := newAuth(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ghost", Password: "x"})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, []string{"not_found"}, metrics.failed)
}

func TestLogin_CuentaInactiva(t *testing.T) {
	uc, store, _ := newAuth(t)
	ctx := context.Background()
	acc := register(t, uc, "bob", "secret1", "bob@x.com")

	err := store.RunAccounts(ctx, func(accounts repository.AccountRepository) error {
		a, err := accounts.FindByID(ctx, acc.ID)
		if err != nil {
			return err
		}
		a.Active = false
		return accounts.Save(ctx, a)
	})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "bob", Password: "secret1"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, "Usuario inactivo", err.Error())
}

func TestLogin_SegundoLoginInvalidaPrimerToken(t *testing.T) {
	uc, store, _ := newAuth(t)
	ctx := context.Background()
	acc := register(t, uc, "alice", "secret1", "alice@x.com")

	first, err := uc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	second, err := uc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	require.NotEqual(t, first.Token, second.Token)

	valid, err := uc.ValidateToken(ctx, first.Token)
	require.NoError(t, err)
	assert.False(t, valid)

	valid, err = uc.ValidateToken(ctx, second.Token)
	require.NoError(t, err)
	assert.True(t, valid)

	assert.NotNil(t, storedAccount(t, store, acc.ID).LastLoginAt)
}

func TestLogout_LimpiaToken(t *testing.T) {
	uc, store, _ := newAuth(t)
	ctx := context.Background()
	acc := register(t, uc, "alice", "secret1", "alice@x.com")
	session, err := uc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, acc.ID))

	valid, err := uc.ValidateToken(ctx, session.Token)
	require.NoError(t, err)
	assert.False(t, valid)
	assert.Nil(t, storedAccount(t, store, acc.ID).Token)
}

func TestLogout_CuentaInexistente(t *testing.T) {
	uc, _, _ := newAuth(t)
	err := uc.Logout(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestValidateToken_ValoresArbitrarios(t *testing.T) {
	uc, _, _ := newAuth(t)
	ctx := context.Background()
	register(t, uc, "alice", "secret1", "alice@x.com")
	_, err := uc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	for _, tok := range []string{"", "   ", "Bearer", strings.Repeat("a", 32), "not-a-token"} {
		valid, err := uc.ValidateToken(ctx, tok)
		require.NoError(t, err, tok)
		assert.False(t, valid, tok)
	}
}

func TestAuthenticate_DevuelveIdentidad(t *testing.T) {
	uc, _, _ := newAuth(t)
	ctx := context.Background()
	acc := register(t, uc, "alice", "secret1", "alice@x.com")
	session, err := uc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	who, err := uc.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	require.NotNil(t, who)
	assert.Equal(t, acc.ID, who.ID)
	assert.Equal(t, "alice", who.Username)
}

func TestLogin_FalloDelGeneradorNoDejaRastro(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	calls := 0
	uc := auth.NewAuthUseCase(store, zerolog.Nop(), auth.Options{
		BcryptCost: bcrypt.MinCost,
		NewToken: func() (string, error) {
			calls++
			if calls > 1 {
				return "", errors.New("sin entropía")
			}
			return fmt.Sprintf("tok-%d", calls), nil
		},
	})
	acc := register(t, uc, "alice", "secret1", "alice@x.com")

	first, err := uc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "secret1"})
	require.Error(t, err)
	assert.False(t, domain.IsDomain(err))

	// la sesión previa sigue vigente
	stored := storedAccount(t, store, acc.ID)
	require.NotNil(t, stored.Token)
	assert.Equal(t, first.Token, *stored.Token)
}

func TestRegister_PasswordDeMasDe72BytesEsInvalida(t *testing.T) {
	uc, _, _ := newAuth(t)

	// 40 runas, 80 bytes.
	long := strings.Repeat("á", 40)
	_, err := uc.Register(context.Background(), dto.RegisterRequest{Username: "alice", Password: long, Email: "alice@x.com"})
	require.Error(t, err)
	assert.True(t, domain.IsDomain(err))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// La cuenta no se creó: el mismo username sigue libre.
	register(t, uc, "alice", "secret1", "alice@x.com")
}

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/internal/domain/entity"
	"github.com/jhoicas/marketplace-api/internal/domain/repository"
	"github.com/jhoicas/marketplace-api/pkg/token"
)

// AccountTxRunner ejecuta fn dentro de una transacción con el repositorio de cuentas atado a ella.
type AccountTxRunner interface {
	RunAccounts(ctx context.Context, fn func(accounts repository.AccountRepository) error) error
}

// Metrics contadores opcionales de autenticación.
type Metrics interface {
	LoginSucceeded()
	LoginFailed(reason string)
}

// Options parámetros del caso de uso.
type Options struct {
	BcryptCost int
	Now        func() time.Time
	NewToken   func() (string, error)
	Metrics    Metrics
}

// AuthUseCase autenticación por sesión: registro, login, logout y validación de tokens opacos.
type AuthUseCase struct {
	tx       AccountTxRunner
	log      zerolog.Logger
	cost     int
	now      func() time.Time
	newToken func() (string, error)
	metrics  Metrics
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(tx AccountTxRunner, log zerolog.Logger, opts Options) *AuthUseCase {
	uc := &AuthUseCase{
		tx:       tx,
		log:      log,
		cost:     opts.BcryptCost,
		now:      opts.Now,
		newToken: opts.NewToken,
		metrics:  opts.Metrics,
	}
	if uc.cost == 0 {
		uc.cost = bcrypt.DefaultCost
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	if uc.newToken == nil {
		uc.newToken = token.New
	}
	if uc.metrics == nil {
		uc.metrics = noopMetrics{}
	}
	return uc
}

// Register crea una cuenta activa con la contraseña hasheada (bcrypt).
// Conflict si el username ya existe (se verifica primero) o si el email ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AccountResponse, error) {
	uc.log.Info().Str("username", in.Username).Msg("registrando nuevo usuario")

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			err = domain.Invalid("La contraseña no puede exceder 72 bytes")
		}
		uc.warnOrError(err).Str("username", in.Username).Msg("registro rechazado")
		return nil, err
	}

	var account *entity.Account
	err = uc.tx.RunAccounts(ctx, func(accounts repository.AccountRepository) error {
		exists, err := accounts.ExistsByUsername(ctx, in.Username)
		if err != nil {
			return err
		}
		if exists {
			return domain.Conflict("El username ya está en uso")
		}
		if in.Email != "" {
			exists, err = accounts.ExistsByEmail(ctx, in.Email)
			if err != nil {
				return err
			}
			if exists {
				return domain.Conflict("El email ya está en uso")
			}
		}

		account = &entity.Account{
			Username:     in.Username,
			PasswordHash: string(hash),
			Email:        optional(in.Email),
			Active:       true,
			CreatedAt:    uc.now(),
		}
		return accounts.Save(ctx, account)
	})
	if err != nil {
		uc.warnOrError(err).Str("username", in.Username).Msg("registro rechazado")
		return nil, err
	}

	uc.log.Info().Int64("account_id", account.ID).Msg("usuario registrado")
	return toAccountResponse(account), nil
}

// Login verifica username/password y emite un token nuevo que reemplaza cualquier sesión anterior.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	uc.log.Info().Str("username", in.Username).Msg("intentando login")

	var out *dto.LoginResponse
	err := uc.tx.RunAccounts(ctx, func(accounts repository.AccountRepository) error {
		account, err := accounts.FindByUsername(ctx, in.Username)
		if err != nil {
			return err
		}
		if account == nil {
			return domain.NotFound("Usuario no encontrado")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(in.Password)); err != nil {
			if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) || errors.Is(err, bcrypt.ErrPasswordTooLong) {
				return domain.Unauthorized("Contraseña incorrecta")
			}
			return err
		}
		if !account.Active {
			return domain.Unauthorized("Usuario inactivo")
		}

		tok, err := uc.newToken()
		if err != nil {
			return err
		}
		now := uc.now()
		account.Token = &tok
		account.LastLoginAt = &now
		if err := accounts.Save(ctx, account); err != nil {
			return err
		}

		out = &dto.LoginResponse{
			Token:     tok,
			TokenType: dto.TokenTypeBearer,
			AccountID: account.ID,
			Username:  account.Username,
			Email:     deref(account.Email),
		}
		return nil
	})
	if err != nil {
		uc.metrics.LoginFailed(failureReason(err))
		uc.warnOrError(err).Str("username", in.Username).Msg("login fallido")
		return nil, err
	}

	uc.metrics.LoginSucceeded()
	uc.log.Info().Int64("account_id", out.AccountID).Msg("login exitoso")
	return out, nil
}

// Logout borra el token de la cuenta. NotFound si la cuenta no existe.
func (uc *AuthUseCase) Logout(ctx context.Context, accountID int64) error {
	uc.log.Info().Int64("account_id", accountID).Msg("cerrando sesión")

	err := uc.tx.RunAccounts(ctx, func(accounts repository.AccountRepository) error {
		account, err := accounts.FindByID(ctx, accountID)
		if err != nil {
			return err
		}
		if account == nil {
			return domain.NotFound("Usuario no encontrado")
		}
		account.Token = nil
		return accounts.Save(ctx, account)
	})
	if err != nil {
		uc.warnOrError(err).Int64("account_id", accountID).Msg("logout fallido")
		return err
	}
	return nil
}

// ValidateToken informa si alguna cuenta tiene exactamente ese token.
// Solo devuelve error ante fallos del almacén.
func (uc *AuthUseCase) ValidateToken(ctx context.Context, tok string) (bool, error) {
	account, err := uc.Authenticate(ctx, tok)
	if err != nil {
		return false, err
	}
	return account != nil, nil
}

// Authenticate resuelve la cuenta dueña del token (nil si no hay ninguna).
func (uc *AuthUseCase) Authenticate(ctx context.Context, tok string) (*dto.AccountResponse, error) {
	if tok == "" {
		return nil, nil
	}
	var account *entity.Account
	err := uc.tx.RunAccounts(ctx, func(accounts repository.AccountRepository) error {
		var err error
		account, err = accounts.FindByToken(ctx, tok)
		return err
	})
	if err != nil {
		uc.log.Error().Err(err).Msg("validando token")
		return nil, err
	}
	if account == nil {
		return nil, nil
	}
	return toAccountResponse(account), nil
}

func (uc *AuthUseCase) warnOrError(err error) *zerolog.Event {
	if domain.IsDomain(err) {
		return uc.log.Warn().Str("reason", err.Error())
	}
	return uc.log.Error().Err(err)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	default:
		return "internal"
	}
}

func toAccountResponse(a *entity.Account) *dto.AccountResponse {
	if a == nil {
		return nil
	}
	return &dto.AccountResponse{
		ID:       a.ID,
		Username: a.Username,
		Email:    deref(a.Email),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type noopMetrics struct{}

func (noopMetrics) LoginSucceeded()    {}
func (noopMetrics) LoginFailed(string) {}

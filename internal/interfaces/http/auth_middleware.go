package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/pkg/token"
)

// Locals keys de la sesión en Fiber.
const (
	LocalAccountID = "account_id"
	LocalAccount   = "account"
)

// Authenticator resuelve la cuenta dueña de un token (nil si ninguna lo tiene).
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*dto.AccountResponse, error)
}

// SessionMiddleware valida el Bearer Token contra las sesiones guardadas y carga la cuenta en c.Locals.
// Header ausente o token desconocido => 401; header mal formado => 400.
func SessionMiddleware(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(CodeUnauthorized, "Authorization header requerido"))
		}
		tok, ok := token.ParseBearer(header)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(CodeInvalid, "Token no válido"))
		}
		account, err := auth.Authenticate(c.UserContext(), tok)
		if err != nil {
			return writeError(c, err)
		}
		if account == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(CodeUnauthorized, "Token inválido o sesión cerrada"))
		}
		c.Locals(LocalAccountID, account.ID)
		c.Locals(LocalAccount, account)
		return c.Next()
	}
}

// GetAccountID devuelve el ID de la cuenta autenticada (0 si la ruta no pasó por SessionMiddleware).
func GetAccountID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalAccountID).(int64)
	return id
}

// GetAccount devuelve la cuenta autenticada (nil fuera de SessionMiddleware).
func GetAccount(c *fiber.Ctx) *dto.AccountResponse {
	a, _ := c.Locals(LocalAccount).(*dto.AccountResponse)
	return a
}

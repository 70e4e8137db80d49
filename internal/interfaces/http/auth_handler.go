package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-api/internal/application/auth"
	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/pkg/token"
)

// AuthHandler maneja registro, login, logout y validación de sesión.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "username, password, email"
// @Success      201   {object}  dto.APIResponse{data=dto.AccountResponse}
// @Failure      400   {object}  dto.APIResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	account, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Usuario registrado exitosamente", account))
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Emite un token Bearer nuevo; la sesión anterior de la cuenta deja de ser válida.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.APIResponse{data=dto.LoginResponse}
// @Failure      401   {object}  dto.APIResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		// Usuario inexistente, contraseña incorrecta o cuenta inactiva: todos responden 401.
		if domain.IsDomain(err) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(CodeUnauthorized, err.Error()))
		}
		return writeError(c, err)
	}
	return c.JSON(dto.OK("Login exitoso", out))
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse
// @Failure      401  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.UserContext(), GetAccountID(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK("Logout exitoso", nil))
}

// Validate godoc
// @Summary      Validar token
// @Description  Responde valid=false para tokens desconocidos o cerrados; 400 si el header no es "Bearer <token>".
// @Tags         auth
// @Produce      json
// @Param        Authorization  header  string  true  "Bearer <token>"
// @Success      200  {object}  dto.APIResponse{data=dto.ValidateResponse}
// @Failure      400  {object}  dto.APIResponse
// @Router       /api/auth/validate [get]
func (h *AuthHandler) Validate(c *fiber.Ctx) error {
	tok, ok := token.ParseBearer(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(CodeInvalid, "Token no válido"))
	}
	valid, err := h.uc.ValidateToken(c.UserContext(), tok)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK("", dto.ValidateResponse{Valid: valid}))
}

// Me godoc
// @Summary      Cuenta de la sesión actual
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=dto.AccountResponse}
// @Failure      401  {object}  dto.APIResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	account := GetAccount(c)
	if account == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(CodeUnauthorized, "Token inválido o sesión cerrada"))
	}
	return c.JSON(dto.OK("", account))
}

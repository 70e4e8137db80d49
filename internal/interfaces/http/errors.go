package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/domain"
	"github.com/jhoicas/marketplace-api/pkg/validator"
)

// Códigos de error del sobre de respuesta.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalid      = "INVALID"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeValidation   = "VALIDATION"
	CodeInvalidBody  = "INVALID_BODY"
	CodeInternal     = "INTERNAL"
)

const internalMessage = "Error interno del servidor"

// writeError traduce un error del core a status + código. Los fallos internos no exponen el detalle.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail(CodeNotFound, err.Error()))
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(CodeConflict, err.Error()))
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(CodeInvalid, err.Error()))
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(CodeUnauthorized, err.Error()))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(CodeInternal, internalMessage))
	}
}

// parseBody decodifica y valida el cuerpo. Si falla ya escribió la respuesta 400 y devuelve ok=false.
func parseBody(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.Fail(CodeInvalidBody, "cuerpo inválido"))
	}
	if fields := validator.ValidateStruct(out); len(fields) > 0 {
		resp := dto.Fail(CodeValidation, "Error de validación")
		resp.Data = fields
		return false, c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	return true, nil
}

// paramID lee un ID numérico positivo de la ruta.
func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidID(c *fiber.Ctx, name string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(CodeInvalid, name+" debe ser un entero positivo"))
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/application/usecase"
)

// SellerHandler maneja las peticiones HTTP para el recurso Seller.
type SellerHandler struct {
	uc *usecase.SellerUseCase
}

// NewSellerHandler construye el handler inyectando el caso de uso.
func NewSellerHandler(uc *usecase.SellerUseCase) *SellerHandler {
	return &SellerHandler{uc: uc}
}

// List godoc
// @Summary      Listar vendedores
// @Tags         sellers
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=[]dto.SellerResponse}
// @Router       /api/sellers [get]
func (h *SellerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK("", out))
}

// ListActive godoc
// @Summary      Listar vendedores activos
// @Tags         sellers
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=[]dto.SellerResponse}
// @Router       /api/sellers/active [get]
func (h *SellerHandler) ListActive(c *fiber.Ctx) error {
	out, err := h.uc.ListActive(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK("", out))
}

// GetByID godoc
// @Summary      Obtener vendedor por ID
// @Tags         sellers
// @Produce      json
// @Param        id   path  int  true  "ID del vendedor"
// @Success      200  {object}  dto.APIResponse{data=dto.SellerResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/sellers/{id} [get]
func (h *SellerHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK("", out))
}

// Create godoc
// @Summary      Crear vendedor
// @Tags         sellers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SellerRequest  true  "Datos del vendedor"
// @Success      201   {object}  dto.APIResponse{data=dto.SellerResponse}
// @Failure      400   {object}  dto.APIResponse
// @Router       /api/sellers [post]
func (h *SellerHandler) Create(c *fiber.Ctx) error {
	var in dto.SellerRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Vendedor creado exitosamente", out))
}

// Update godoc
// @Summary      Actualizar vendedor
// @Description  Sobrescribe todos los campos; "active" solo cambia si viene en el cuerpo.
// @Tags         sellers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "ID del vendedor"
// @Param        body  body  dto.SellerRequest  true  "Datos del vendedor"
// @Success      200   {object}  dto.APIResponse{data=dto.SellerResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/sellers/{id} [put]
func (h *SellerHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.SellerRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK("Vendedor actualizado exitosamente", out))
}

// Delete godoc
// @Summary      Eliminar vendedor
// @Description  Borrado físico; los productos del vendedor se eliminan con él.
// @Tags         sellers
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del vendedor"
// @Success      200  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/sellers/{id} [delete]
func (h *SellerHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK("Vendedor eliminado exitosamente", nil))
}

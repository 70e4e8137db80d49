package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP para Product. Lecturas públicas, escrituras con sesión.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func (h *ProductHandler) respondList(c *fiber.Ctx, out []dto.ProductResponse, err error) error {
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK("", out))
}

// List godoc
// @Summary      Listar productos (incluye desactivados)
// @Tags         products
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=[]dto.ProductResponse}
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	return h.respondList(c, out, err)
}

// ListActive godoc
// @Summary      Productos activos de vendedores activos
// @Tags         products
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=[]dto.ProductResponse}
// @Router       /api/products/active [get]
func (h *ProductHandler) ListActive(c *fiber.Ctx) error {
	out, err := h.uc.ListActiveForActiveSellers(c.UserContext())
	return h.respondList(c, out, err)
}

// ListInStock godoc
// @Summary      Productos con stock
// @Tags         products
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=[]dto.ProductResponse}
// @Router       /api/products/in-stock [get]
func (h *ProductHandler) ListInStock(c *fiber.Ctx) error {
	out, err := h.uc.ListInStock(c.UserContext())
	return h.respondList(c, out, err)
}

// ListBySeller godoc
// @Summary      Productos de un vendedor
// @Tags         products
// @Produce      json
// @Param        sellerId  path  int  true  "ID del vendedor"
// @Success      200  {object}  dto.APIResponse{data=[]dto.ProductResponse}
// @Router       /api/products/seller/{sellerId} [get]
func (h *ProductHandler) ListBySeller(c *fiber.Ctx) error {
	sellerID, ok := paramID(c, "sellerId")
	if !ok {
		return invalidID(c, "sellerId")
	}
	out, err := h.uc.ListBySeller(c.UserContext(), sellerID)
	return h.respondList(c, out, err)
}

// ListByCategory godoc
// @Summary      Productos por categoría
// @Tags         products
// @Produce      json
// @Param        category  path  string  true  "Categoría"
// @Success      200  {object}  dto.APIResponse{data=[]dto.ProductResponse}
// @Failure      400  {object}  dto.APIResponse
// @Router       /api/products/category/{category} [get]
func (h *ProductHandler) ListByCategory(c *fiber.Ctx) error {
	// Fiber entrega el segmento sin decodificar: "Electr%C3%B3nica".
	category, err := url.PathUnescape(c.Params("category"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(CodeInvalid, "category no es un segmento de ruta válido"))
	}
	out, err := h.uc.ListByCategory(c.UserContext(), category)
	return h.respondList(c, out, err)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.APIResponse{data=dto.ProductResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.APIResponse{data=dto.ProductResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("Producto creado exitosamente", out))
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos del producto"
// @Success      200   {object}  dto.APIResponse{data=dto.ProductResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.UpdateProductRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK("Producto actualizado exitosamente", out))
}

// Delete godoc
// @Summary      Eliminar producto (borrado lógico)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK("Producto eliminado exitosamente", nil))
}

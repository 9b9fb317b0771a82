package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/application/variant"
)

// VariantHandler maneja variantes (talla/color) y la resolución de QR.
type VariantHandler struct {
	registry *variant.Registry
}

// NewVariantHandler construye el handler.
func NewVariantHandler(registry *variant.Registry) *VariantHandler {
	return &VariantHandler{registry: registry}
}

// Create godoc
// @Summary      Crear variante de un artículo
// @Description  Valida talla/color contra el tipo de artículo y asigna un QR único.
// @Tags         variants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del artículo"
// @Param        body  body  dto.CreateVariantRequest  true  "size, color, sku"
// @Success      201   {object}  dto.VariantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/variants [post]
func (h *VariantHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVariantRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	v, err := h.registry.CreateVariant(c.UserContext(), variant.CreateVariantInput{
		ItemID: c.Params("id"),
		Size:   in.Size,
		Color:  in.Color,
		SKU:    in.SKU,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToVariantResponse(v))
}

// ListByItem godoc
// @Summary      Listar variantes de un artículo
// @Tags         variants
// @Security     Bearer
// @Produce      json
// @Param        id                path   string  true   "ID del artículo"
// @Param        include_inactive  query  bool    false  "Incluir inactivas"
// @Success      200  {array}   dto.VariantResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/variants [get]
func (h *VariantHandler) ListByItem(c *fiber.Ctx) error {
	list, err := h.registry.ListByItem(c.UserContext(), c.Params("id"), c.QueryBool("include_inactive", false))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToVariantList(list))
}

// GetByID godoc
// @Summary      Obtener variante
// @Tags         variants
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la variante"
// @Success      200  {object}  dto.VariantResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/variants/{id} [get]
func (h *VariantHandler) GetByID(c *fiber.Ctx) error {
	v, err := h.registry.GetVariant(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToVariantResponse(v))
}

// ResolveQR godoc
// @Summary      Resolver código QR
// @Description  Devuelve la variante activa asociada al QR escaneado.
// @Tags         variants
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código QR"
// @Success      200   {object}  dto.VariantResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/variants/qr/{code} [get]
func (h *VariantHandler) ResolveQR(c *fiber.Ctx) error {
	v, err := h.registry.ResolveByQRCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToVariantResponse(v))
}

// Delete godoc
// @Summary      Eliminar variante
// @Description  Por defecto desactiva. Con hard=true elimina si no tiene movimientos.
// @Tags         variants
// @Security     Bearer
// @Param        id    path   string  true   "ID de la variante"
// @Param        hard  query  bool    false  "Eliminación física"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/variants/{id} [delete]
func (h *VariantHandler) Delete(c *fiber.Ctx) error {
	if err := h.registry.DeleteVariant(c.UserContext(), c.Params("id"), c.QueryBool("hard", false)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/application/usecase"
	"github.com/jhoicas/stockroom-api/internal/domain"
)

// CatalogHandler maneja tipos de artículo y artículos (protegido).
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// CreateItemType godoc
// @Summary      Crear tipo de artículo
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemTypeRequest  true  "Tallas y colores disponibles"
// @Success      201   {object}  dto.ItemTypeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/item-types [post]
func (h *CatalogHandler) CreateItemType(c *fiber.Ctx) error {
	var in dto.CreateItemTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Code == "" || in.Name == "" {
		return badRequest(c, "VALIDATION", "type_code y type_name son requeridos")
	}
	out, err := h.uc.CreateItemType(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetItemType godoc
// @Summary      Obtener tipo de artículo
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del tipo"
// @Success      200  {object}  dto.ItemTypeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/item-types/{id} [get]
func (h *CatalogHandler) GetItemType(c *fiber.Ctx) error {
	out, err := h.uc.GetItemType(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return respondError(c, domain.NotFound("tipo de artículo"))
	}
	return c.JSON(out)
}

// ListItemTypes godoc
// @Summary      Listar tipos de artículo
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ItemTypeListResponse
// @Router       /api/item-types [get]
func (h *CatalogHandler) ListItemTypes(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListItemTypes(c.UserContext(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateItem godoc
// @Summary      Crear artículo
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *CatalogHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Code == "" || in.Name == "" || in.ItemTypeID == "" {
		return badRequest(c, "VALIDATION", "item_code, item_name e item_type_id son requeridos")
	}
	if in.UnitPrice.IsNegative() {
		return badRequest(c, "VALIDATION", "unit_price no puede ser negativo")
	}
	out, err := h.uc.CreateItem(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetItem godoc
// @Summary      Obtener artículo
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *CatalogHandler) GetItem(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.GetItem(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return respondError(c, domain.ItemNotFound(id))
	}
	return c.JSON(out)
}

// ListItems godoc
// @Summary      Listar artículos
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        item_type_id  query  string  false  "Filtrar por tipo"
// @Param        search        query  string  false  "Código o nombre"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200           {object}  dto.ItemListResponse
// @Router       /api/items [get]
func (h *CatalogHandler) ListItems(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListItems(c.UserContext(), c.Query("item_type_id"), c.Query("search"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateCategory godoc
// @Summary      Crear categoría
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Código, nombre y orden"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Code == "" || in.Name == "" {
		return badRequest(c, "VALIDATION", "category_code y category_name son requeridos")
	}
	out, err := h.uc.CreateCategory(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetCategory godoc
// @Summary      Obtener categoría con sus tipos
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	out, err := h.uc.GetCategory(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "active | inactive"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.CategoryListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListCategories(c.UserContext(), c.Query("status"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateCategory godoc
// @Summary      Actualizar categoría
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoryRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	var in dto.UpdateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.UpdateCategory(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteCategory godoc
// @Summary      Eliminar categoría sin tipos asociados
// @Tags         catalog
// @Security     Bearer
// @Param        id   path  string  true  "ID de la categoría"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.uc.DeleteCategory(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

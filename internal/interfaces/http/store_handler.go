package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/application/usecase"
)

// StoreHandler maneja las peticiones HTTP para tiendas (protegido).
type StoreHandler struct {
	uc *usecase.StoreUseCase
}

// NewStoreHandler construye el handler.
func NewStoreHandler(uc *usecase.StoreUseCase) *StoreHandler {
	return &StoreHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tienda
// @Tags         stores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStoreRequest  true  "Datos de la tienda"
// @Success      201   {object}  dto.StoreResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stores [post]
func (h *StoreHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStoreRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.PlantID == "" || in.Code == "" || in.Name == "" {
		return badRequest(c, "VALIDATION", "plant_id, store_code y store_name son requeridos")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener tienda por ID
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la tienda"
// @Success      200  {object}  dto.StoreResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{id} [get]
func (h *StoreHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code:    "STORE_NOT_FOUND",
			Message: "tienda no encontrada",
			Details: &dto.ErrorDetails{StoreID: id},
		})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar tienda
// @Tags         stores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la tienda"
// @Param        body  body  dto.UpdateStoreRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.StoreResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stores/{id} [put]
func (h *StoreHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStoreRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	id := c.Params("id")
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code:    "STORE_NOT_FOUND",
			Message: "tienda no encontrada",
			Details: &dto.ErrorDetails{StoreID: id},
		})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar tiendas
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Param        plant_id  query  string  false  "Filtrar por planta"
// @Param        limit     query  int     false  "Límite"   default(20)
// @Param        offset    query  int     false  "Offset"   default(0)
// @Success      200       {object}  dto.StoreListResponse
// @Router       /api/stores [get]
func (h *StoreHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), c.Query("plant_id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/application/usecase"
)

// PlantHandler maneja las peticiones HTTP para plantas (protegido).
type PlantHandler struct {
	uc *usecase.PlantUseCase
}

// NewPlantHandler construye el handler.
func NewPlantHandler(uc *usecase.PlantUseCase) *PlantHandler {
	return &PlantHandler{uc: uc}
}

// Create godoc
// @Summary      Crear planta
// @Tags         plants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePlantRequest  true  "Datos de la planta"
// @Success      201   {object}  dto.PlantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/plants [post]
func (h *PlantHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePlantRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Code == "" || in.Name == "" {
		return badRequest(c, "VALIDATION", "plant_code y name son requeridos")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener planta por ID
// @Tags         plants
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la planta"
// @Success      200  {object}  dto.PlantResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/plants/{id} [get]
func (h *PlantHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "planta no encontrada"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar planta
// @Tags         plants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la planta"
// @Param        body  body  dto.UpdatePlantRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.PlantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/plants/{id} [put]
func (h *PlantHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePlantRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "planta no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar plantas
// @Tags         plants
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.PlantListResponse
// @Router       /api/plants [get]
func (h *PlantHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

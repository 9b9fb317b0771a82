package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// RequireStoreScope restringe las lecturas por tienda de un storekeeper a sus tiendas asignadas.
// Toma el ID del parámetro de ruta param; admin, manager y viewer leen todas.
// Debe usarse DESPUÉS de AuthMiddleware.
func RequireStoreScope(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetRole(c) != entity.RoleStorekeeper {
			return c.Next()
		}
		storeID := c.Params(param)
		if storeID == "" {
			storeID = c.Query(param)
		}
		if storeID == "" {
			return c.Next()
		}
		if !GetActor(c).CanActOnStore(storeID) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "sin permiso sobre la tienda " + storeID,
				Details: &dto.ErrorDetails{StoreID: storeID},
			})
		}
		return c.Next()
	}
}

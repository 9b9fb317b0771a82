package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/pkg/jwt"
)

// Locals keys para la identidad del token en Fiber.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
	LocalRole     = "role"
	LocalStoreIDs = "store_ids"
)

// Grupos de roles usados por el router.
var (
	RolesCatalogWrite = []string{entity.RoleAdmin, entity.RoleManager}
	RolesStockWrite   = []string{entity.RoleAdmin, entity.RoleManager, entity.RoleStorekeeper}
)

// AuthMiddleware valida el Bearer Token JWT y carga la identidad en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, id.UserID)
		c.Locals(LocalUsername, id.Username)
		c.Locals(LocalRole, id.Role)
		c.Locals(LocalStoreIDs, id.StoreIDs)
		return c.Next()
	}
}

// RequireRole permite el paso solo a los roles indicados. Debe ir después de AuthMiddleware.
// Un token sin rol responde 401; un rol no permitido, 403.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no contiene rol"})
		}
		if _, ok := allowed[role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el rol " + role + " no tiene acceso a este recurso"})
		}
		return c.Next()
	}
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

// GetStoreIDs devuelve las tiendas asignadas en el token.
func GetStoreIDs(c *fiber.Ctx) []string {
	ids, _ := c.Locals(LocalStoreIDs).([]string)
	return ids
}

// GetActor arma el actor de dominio con la identidad del token.
func GetActor(c *fiber.Ctx) entity.Actor {
	return entity.Actor{
		UserID:   GetUserID(c),
		Username: localString(c, LocalUsername),
		Role:     GetRole(c),
		StoreIDs: GetStoreIDs(c),
	}
}

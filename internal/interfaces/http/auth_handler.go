package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockroom-api/internal/application/auth"
	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

// AuthHandler maneja login y administración de usuarios.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// CreateUser godoc
// @Summary      Crear usuario
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "username, password, role, store_ids"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *AuthHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Username == "" || in.Password == "" || in.Role == "" {
		return badRequest(c, "VALIDATION", "username, password y role son requeridos")
	}
	user, err := h.uc.CreateUser(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Username == "" || in.Password == "" {
		return badRequest(c, "VALIDATION", "username y password son requeridos")
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListUsers godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        role    query  string  false  "Filtrar por rol"
// @Param        status  query  string  false  "active | inactive"
// @Param        search  query  string  false  "Username, nombre o email"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.UserListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.ListUsers(c.UserContext(), repository.UserFilter{
		Role: c.Query("role"), Status: c.Query("status"), Search: c.Query("search"),
		Limit: limit, Offset: offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetUser godoc
// @Summary      Obtener usuario
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *AuthHandler) GetUser(c *fiber.Ctx) error {
	out, err := h.uc.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateUser godoc
// @Summary      Actualizar usuario (rol, tiendas, estado)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *AuthHandler) UpdateUser(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.UpdateUser(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteUser godoc
// @Summary      Eliminar usuario
// @Tags         users
// @Security     Bearer
// @Param        id   path  string  true  "ID del usuario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *AuthHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.uc.DeleteUser(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me godoc
// @Summary      Usuario de la sesión
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Router       /api/users/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateProfile godoc
// @Summary      Editar el perfil propio
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "email, name"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/users/me [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.UpdateProfile(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ChangePassword godoc
// @Summary      Cambiar la contraseña propia
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.ChangePasswordRequest  true  "current_password, new_password"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/users/me/change-password [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.CurrentPassword == "" || in.NewPassword == "" {
		return badRequest(c, "VALIDATION", "current_password y new_password son requeridos")
	}
	if err := h.uc.ChangePassword(c.UserContext(), GetActor(c), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

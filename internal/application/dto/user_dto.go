package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Username string   `json:"username" validate:"required,min=3,max=100"`
	Email    string   `json:"email" validate:"omitempty,email"`
	Password string   `json:"password" validate:"required,min=8"`
	Name     string   `json:"name" validate:"omitempty,max=200"`
	Role     string   `json:"role" validate:"required,oneof=admin manager storekeeper viewer"`
	StoreIDs []string `json:"store_ids"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	StoreIDs  []string  `json:"store_ids"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateUserRequest cambios de un administrador sobre cualquier usuario; nil = sin cambio.
type UpdateUserRequest struct {
	Email    *string   `json:"email" validate:"omitempty,email"`
	Name     *string   `json:"name" validate:"omitempty,max=200"`
	Role     *string   `json:"role" validate:"omitempty,oneof=admin manager storekeeper viewer"`
	StoreIDs *[]string `json:"store_ids"`
	Status   *string   `json:"status" validate:"omitempty,oneof=active inactive"`
	Password *string   `json:"password" validate:"omitempty,min=8"`
}

// UpdateProfileRequest cambios del propio usuario.
type UpdateProfileRequest struct {
	Email *string `json:"email" validate:"omitempty,email"`
	Name  *string `json:"name" validate:"omitempty,max=200"`
}

// ChangePasswordRequest cambio de contraseña propio.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

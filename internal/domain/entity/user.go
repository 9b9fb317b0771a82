package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin       = "admin"
	RoleManager     = "manager"
	RoleStorekeeper = "storekeeper"
	RoleViewer      = "viewer"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash
	Name         string
	Role         string
	StoreIDs     []string // tiendas asignadas (storekeeper)
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole valida el rol.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleStorekeeper, RoleViewer:
		return true
	}
	return false
}

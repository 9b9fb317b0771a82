package entity

// Actor es la identidad que ejecuta una operación, provista por el proveedor de sesión (JWT).
type Actor struct {
	UserID   string
	Username string
	Role     string
	StoreIDs []string
}

// SystemActor se usa para procesos internos (seed, migraciones).
var SystemActor = Actor{UserID: "system", Username: "system", Role: RoleAdmin}

// CanActOnStore indica si el actor puede operar sobre la tienda.
// admin y manager operan sobre todas; storekeeper solo sobre las asignadas; viewer sobre ninguna.
func (a Actor) CanActOnStore(storeID string) bool {
	switch a.Role {
	case RoleAdmin, RoleManager:
		return true
	case RoleStorekeeper:
		for _, id := range a.StoreIDs {
			if id == storeID {
				return true
			}
		}
	}
	return false
}

package entity

// Estados comunes para entidades de catálogo con borrado lógico.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

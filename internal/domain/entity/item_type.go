package entity

import "time"

// ItemType es la categoría de catálogo que declara si sus artículos llevan talla y/o color.
type ItemType struct {
	ID              string
	CategoryID      string // vacío si no está categorizado
	Code            string
	Name            string
	Description     string
	HasSize         bool
	AvailableSizes  []string
	HasColor        bool
	AvailableColors []string
	MinStockLevel   int64
	MaxStockLevel   int64
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AllowsSize indica si la talla está permitida. Lista vacía = cualquier valor.
func (t *ItemType) AllowsSize(size string) bool {
	return contains(t.AvailableSizes, size)
}

// AllowsColor indica si el color está permitido. Lista vacía = cualquier valor.
func (t *ItemType) AllowsColor(color string) bool {
	return contains(t.AvailableColors, color)
}

func contains(list []string, v string) bool {
	if len(list) == 0 {
		return true
	}
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

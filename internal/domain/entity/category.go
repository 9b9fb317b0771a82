package entity

import "time"

// Category agrupa tipos de artículo (uniformes, accesorios, EPP...).
type Category struct {
	ID           string
	Code         string // único
	Name         string
	Description  string
	DisplayOrder int
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

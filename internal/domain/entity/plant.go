package entity

import "time"

// Plant representa una planta (sede) que agrupa tiendas.
type Plant struct {
	ID        string
	Code      string // único
	Name      string
	Location  string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

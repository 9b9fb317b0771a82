package entity

import "time"

// Modos de salida de stock de una tienda. El core los almacena; la UI decide el flujo de aprobación.
const (
	StockOutModeTrust  = "trust"
	StockOutModeCasual = "casual"
	StockOutModeStrict = "strict"
)

// Store representa una tienda (ubicación física de stock) dentro de una planta.
type Store struct {
	ID           string
	PlantID      string
	Code         string // único
	Name         string
	Location     string
	StoreType    string
	StockOutMode string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si la tienda puede recibir stock.
func (s *Store) IsActive() bool {
	return s != nil && s.Status == StatusActive
}

// ValidStockOutMode valida el modo de salida.
func ValidStockOutMode(mode string) bool {
	switch mode {
	case StockOutModeTrust, StockOutModeCasual, StockOutModeStrict:
		return true
	}
	return false
}

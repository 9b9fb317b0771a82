package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item es el artículo padre de las variantes (talla/color).
type Item struct {
	ID          string
	Code        string
	Name        string
	Description string
	ItemTypeID  string
	Unit        string
	UnitPrice   decimal.Decimal
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

package entity

import "time"

// ItemVariant es la unidad de identidad del stock: una combinación talla/color de un Item.
// El QR es único global e inmutable; la variante nunca se borra si tiene movimientos.
type ItemVariant struct {
	ID        string
	ItemID    string
	Size      string // vacío = sin talla
	Color     string // vacío = sin color
	QRCode    string
	SKU       string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si la variante está activa.
func (v *ItemVariant) IsActive() bool {
	return v != nil && v.Status == StatusActive
}

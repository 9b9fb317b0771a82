package entity

import "time"

// Inventory agregado derivado por (variante, tienda). Solo lo modifica el libro de stock.
type Inventory struct {
	VariantID string
	StoreID   string
	Quantity  int64
	UpdatedAt time.Time
}

// InventoryKey identifica una fila de inventario.
type InventoryKey struct {
	VariantID string
	StoreID   string
}

func (k InventoryKey) String() string {
	return k.VariantID + "@" + k.StoreID
}

// Less orden total usado para adquirir bloqueos sin deadlock.
func (k InventoryKey) Less(o InventoryKey) bool {
	if k.VariantID != o.VariantID {
		return k.VariantID < o.VariantID
	}
	return k.StoreID < o.StoreID
}

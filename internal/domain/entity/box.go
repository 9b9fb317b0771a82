package entity

import "time"

// Estados de una caja. pending_checkin -> checked_in es la única transición.
const (
	BoxStatusPendingCheckin = "pending_checkin"
	BoxStatusCheckedIn      = "checked_in"
)

// Box representa una caja física recibida de un proveedor.
type Box struct {
	ID              string
	Code            string
	Supplier        string
	PONumber        string
	DONumber        string
	InvoiceNumber   string
	Notes           string
	Status          string
	StoreID         string // vacío hasta el check-in
	LocationInStore string
	ReceivedDate    time.Time
	ReceivedBy      string
	CheckedInAt     *time.Time
	CheckedInBy     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Contents        []BoxContent
}

// BoxContent línea de contenido; pertenece exclusivamente a su caja.
type BoxContent struct {
	ID        string
	BoxID     string
	VariantID string
	ItemID    string
	Size      string // snapshot al crear la caja
	Color     string
	Quantity  int64
}

// TotalItems suma de cantidades de las líneas.
func (b *Box) TotalItems() int64 {
	var total int64
	for _, c := range b.Contents {
		total += c.Quantity
	}
	return total
}

// IsPending indica si la caja aún acepta check-in.
func (b *Box) IsPending() bool {
	return b.Status == BoxStatusPendingCheckin
}

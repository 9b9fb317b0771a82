package ports

import "time"

// BoxLabelLine línea impresa en la etiqueta de una caja.
type BoxLabelLine struct {
	SKU      string
	Size     string
	Color    string
	QRCode   string
	Quantity int64
}

// BoxLabel datos para la etiqueta (PDF con QR) de una caja.
type BoxLabel struct {
	BoxCode      string
	Supplier     string
	PONumber     string
	DONumber     string
	Status       string
	StoreName    string
	ReceivedDate time.Time
	ReceivedBy   string
	TotalItems   int64
	Lines        []BoxLabelLine
}

// LabelRenderer colaborador externo que convierte datos + código QR en un documento imprimible.
type LabelRenderer interface {
	RenderBoxLabel(label BoxLabel) ([]byte, error)
}

// ManifestBuilder genera el manifiesto XML de una caja y su digest sobre la forma canónica.
type ManifestBuilder interface {
	BuildManifest(label BoxLabel) (xml []byte, digest string, err error)
}

// SnapshotRow fila de la foto de inventario.
type SnapshotRow struct {
	VariantID string
	SKU       string
	QRCode    string
	Size      string
	Color     string
	Status    string
	Quantity  int64
	UpdatedAt time.Time
}

// SnapshotExporter genera una hoja de cálculo con la foto de inventario de una tienda.
type SnapshotExporter interface {
	ExportInventory(storeName string, rows []SnapshotRow) ([]byte, error)
}

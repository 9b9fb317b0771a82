package dto

import "time"

// StockAlertResponse variante agotada (out_of_stock) o bajo su umbral (low_stock).
type StockAlertResponse struct {
	Type      string          `json:"type"`
	StoreID   string          `json:"store_id"`
	StoreName string          `json:"store_name"`
	Variant   VariantResponse `json:"variant"`
	Quantity  int64           `json:"quantity"`
	Threshold int64           `json:"threshold"`
}

// StockAlertListResponse avisos ordenados: agotados primero.
type StockAlertListResponse struct {
	Items       []StockAlertResponse `json:"items"`
	OutOfStock  int                  `json:"out_of_stock"`
	LowStock    int                  `json:"low_stock"`
	GeneratedAt time.Time            `json:"generated_at"`
}

// PendingCheckinResponse cajas recibidas aún sin check-in.
type PendingCheckinResponse struct {
	Count          int        `json:"count"`
	BoxIDs         []string   `json:"box_ids"`
	BoxCodes       []string   `json:"box_codes"`
	OldestReceived *time.Time `json:"oldest_received,omitempty"`
}

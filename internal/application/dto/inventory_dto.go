package dto

import (
	"time"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// StockInRequest body para POST /api/inventory/stock-in.
type StockInRequest struct {
	VariantID       string `json:"variant_id"`
	StoreID         string `json:"store_id"`
	Quantity        int64  `json:"quantity"`
	ReferenceNumber string `json:"reference_number"`
	Reason          string `json:"reason"`
	Notes           string `json:"notes"`
}

// StockOutRequest body para POST /api/inventory/stock-out.
type StockOutRequest struct {
	VariantID       string `json:"variant_id"`
	StoreID         string `json:"store_id"`
	Quantity        int64  `json:"quantity"`
	ReferenceNumber string `json:"reference_number"`
	Reason          string `json:"reason"`
	Notes           string `json:"notes"`
}

// ScanStockOutRequest body para POST /api/inventory/scan/stock-out (resuelve la variante por QR).
type ScanStockOutRequest struct {
	QRCode   string `json:"qr_code"`
	StoreID  string `json:"store_id"`
	Quantity int64  `json:"quantity"`
	Reason   string `json:"reason"`
	Notes    string `json:"notes"`
}

// TransferRequest body para POST /api/inventory/transfer.
type TransferRequest struct {
	VariantID       string `json:"variant_id"`
	FromStoreID     string `json:"from_store_id"`
	ToStoreID       string `json:"to_store_id"`
	Quantity        int64  `json:"quantity"`
	ReferenceNumber string `json:"reference_number"`
	Reason          string `json:"reason"`
	Notes           string `json:"notes"`
}

// BulkLineRequest línea de una operación masiva.
type BulkLineRequest struct {
	VariantID string `json:"variant_id"`
	Quantity  int64  `json:"quantity"`
}

// BulkStockOutRequest body para POST /api/inventory/bulk-stock-out.
type BulkStockOutRequest struct {
	StoreID         string            `json:"store_id"`
	ReferenceNumber string            `json:"reference_number"`
	Reason          string            `json:"reason"`
	Items           []BulkLineRequest `json:"items"`
}

// BulkTransferRequest body para POST /api/inventory/bulk-transfer.
type BulkTransferRequest struct {
	FromStoreID     string            `json:"from_store_id"`
	ToStoreID       string            `json:"to_store_id"`
	ReferenceNumber string            `json:"reference_number"`
	Reason          string            `json:"reason"`
	Items           []BulkLineRequest `json:"items"`
}

// TransactionResponse salida de un movimiento del libro.
type TransactionResponse struct {
	ID                  string    `json:"id"`
	Type                string    `json:"transaction_type"`
	VariantID           string    `json:"variant_id"`
	StoreID             string    `json:"store_id"`
	Quantity            int64     `json:"quantity"`
	BoxID               string    `json:"box_id,omitempty"`
	PairedTransactionID string    `json:"paired_transaction_id,omitempty"`
	ReferenceType       string    `json:"reference_type,omitempty"`
	ReferenceNumber     string    `json:"reference_number,omitempty"`
	Reason              string    `json:"reason,omitempty"`
	Notes               string    `json:"notes,omitempty"`
	ActorID             string    `json:"actor_id"`
	ActorName           string    `json:"actor_name"`
	CreatedAt           time.Time `json:"created_at"`
}

// TransferResponse par de movimientos de un traslado.
type TransferResponse struct {
	TransferOut TransactionResponse `json:"transfer_out"`
	TransferIn  TransactionResponse `json:"transfer_in"`
}

// BulkLineResponse resultado de una línea masiva.
type BulkLineResponse struct {
	Line        int                  `json:"line"`
	VariantID   string               `json:"variant_id"`
	Quantity    int64                `json:"quantity"`
	Status      string               `json:"status"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
	TransferIn  *TransactionResponse `json:"transfer_in,omitempty"`
	Error       *ErrorResponse       `json:"error,omitempty"`
}

// BulkResponse resultado por línea de una operación masiva.
type BulkResponse struct {
	Committed int                `json:"committed"`
	Failed    int                `json:"failed"`
	Lines     []BulkLineResponse `json:"lines"`
}

// QuantityResponse cantidad de una variante en una tienda.
type QuantityResponse struct {
	VariantID string `json:"variant_id"`
	StoreID   string `json:"store_id"`
	Quantity  int64  `json:"quantity"`
}

// StockLevelResponse fila de inventario con su variante.
type StockLevelResponse struct {
	Variant   VariantResponse `json:"variant"`
	StoreID   string          `json:"store_id"`
	Quantity  int64           `json:"quantity"`
	Threshold int64           `json:"threshold,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// DiscrepancyResponse clave cuyo agregado no coincide con el libro.
type DiscrepancyResponse struct {
	VariantID string `json:"variant_id"`
	StoreID   string `json:"store_id"`
	Stored    int64  `json:"stored_quantity"`
	Replayed  int64  `json:"ledger_quantity"`
}

// ToTransactionResponse mapea la entidad.
func ToTransactionResponse(t *entity.StockTransaction) *TransactionResponse {
	if t == nil {
		return nil
	}
	return &TransactionResponse{
		ID:                  t.ID,
		Type:                t.Type,
		VariantID:           t.VariantID,
		StoreID:             t.StoreID,
		Quantity:            t.Quantity,
		BoxID:               t.BoxID,
		PairedTransactionID: t.PairedTransactionID,
		ReferenceType:       t.ReferenceType,
		ReferenceNumber:     t.ReferenceNumber,
		Reason:              t.Reason,
		Notes:               t.Notes,
		ActorID:             t.ActorID,
		ActorName:           t.ActorName,
		CreatedAt:           t.CreatedAt,
	}
}

// ToTransactionList mapea una lista de movimientos.
func ToTransactionList(list []*entity.StockTransaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *ToTransactionResponse(t))
	}
	return out
}

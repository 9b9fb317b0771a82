package entity

import "time"

// Tipos de movimiento del libro de stock.
const (
	TxTypeStockIn     = "stock_in"
	TxTypeStockOut    = "stock_out"
	TxTypeTransferOut = "transfer_out"
	TxTypeTransferIn  = "transfer_in"
)

// Tipos de referencia de un movimiento.
const (
	ReferenceTypeBox      = "box"
	ReferenceTypeManual   = "manual"
	ReferenceTypeBulk     = "bulk"
	ReferenceTypeTransfer = "transfer"
	ReferenceTypeScan     = "scan"
)

// StockTransaction es una entrada inmutable del libro. Nunca se edita ni se borra;
// las correcciones se hacen con movimientos compensatorios.
type StockTransaction struct {
	ID                  string
	Type                string
	VariantID           string
	StoreID             string
	Quantity            int64 // siempre positivo; el signo lo da Type
	BoxID               string
	PairedTransactionID string
	ReferenceType       string
	ReferenceNumber     string
	Reason              string
	Notes               string
	ActorID             string
	ActorName           string
	CreatedAt           time.Time
}

// ValidTxType valida el tipo de movimiento.
func ValidTxType(t string) bool {
	switch t {
	case TxTypeStockIn, TxTypeStockOut, TxTypeTransferOut, TxTypeTransferIn:
		return true
	}
	return false
}

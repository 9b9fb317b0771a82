package inventory

import (
	"math"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// SignedQuantity devuelve la cantidad con signo de un movimiento:
// stock_in y transfer_in suman; stock_out y transfer_out restan.
func SignedQuantity(t *entity.StockTransaction) int64 {
	switch t.Type {
	case entity.TxTypeStockIn, entity.TxTypeTransferIn:
		return t.Quantity
	case entity.TxTypeStockOut, entity.TxTypeTransferOut:
		return -t.Quantity
	}
	return 0
}

// Replay reconstruye las cantidades por (variante, tienda) a partir del libro.
// Cantidad = Σ(stock_in + transfer_in) − Σ(stock_out + transfer_out).
func Replay(txs []*entity.StockTransaction) map[entity.InventoryKey]int64 {
	out := make(map[entity.InventoryKey]int64)
	for _, t := range txs {
		k := entity.InventoryKey{VariantID: t.VariantID, StoreID: t.StoreID}
		out[k] += SignedQuantity(t)
	}
	return out
}

// ApplyDelta calcula la nueva cantidad; ok=false si quedaría negativa.
func ApplyDelta(current, delta int64) (next int64, ok bool) {
	next = current + delta
	if next < 0 {
		return current, false
	}
	return next, true
}

// Overflows indica si current+delta se sale del rango de int64.
func Overflows(current, delta int64) bool {
	if delta > 0 {
		return current > math.MaxInt64-delta
	}
	return current < math.MinInt64-delta
}

package inventory_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/inventory"
)

func TestReplay_SumaEntradasYRestaSalidas(t *testing.T) {
	txs := []*entity.StockTransaction{
		{Type: entity.TxTypeStockIn, VariantID: "V1", StoreID: "S-07", Quantity: 50},
		{Type: entity.TxTypeStockOut, VariantID: "V1", StoreID: "S-07", Quantity: 10},
		{Type: entity.TxTypeTransferOut, VariantID: "V1", StoreID: "S-07", Quantity: 20},
		{Type: entity.TxTypeTransferIn, VariantID: "V1", StoreID: "S-08", Quantity: 20},
	}
	got := inventory.Replay(txs)

	assert.Equal(t, int64(20), got[entity.InventoryKey{VariantID: "V1", StoreID: "S-07"}])
	assert.Equal(t, int64(20), got[entity.InventoryKey{VariantID: "V1", StoreID: "S-08"}])
}

func TestApplyDelta_RechazaNegativo(t *testing.T) {
	next, ok := inventory.ApplyDelta(5, -6)
	assert.False(t, ok)
	assert.Equal(t, int64(5), next)

	next, ok = inventory.ApplyDelta(5, -5)
	assert.True(t, ok)
	assert.Equal(t, int64(0), next)
}

func TestSignedQuantity_TipoDesconocido(t *testing.T) {
	assert.Zero(t, inventory.SignedQuantity(&entity.StockTransaction{Type: "adjustment", Quantity: 3}))
}

func TestOverflows(t *testing.T) {
	assert.True(t, inventory.Overflows(math.MaxInt64, 1))
	assert.True(t, inventory.Overflows(math.MaxInt64-4, 5))
	assert.False(t, inventory.Overflows(math.MaxInt64-5, 5))
	assert.False(t, inventory.Overflows(10, -10))
	assert.False(t, inventory.Overflows(0, math.MaxInt64))
}

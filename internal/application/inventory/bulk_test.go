package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockroom-api/internal/application/inventory"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

func TestBulkStockOut_LineasIndependientes(t *testing.T) {
	f := newFixture(t)
	f.addVariant(t, "V2", "L", "RED")
	f.stockIn(t, v1, s07, 5)
	f.stockIn(t, "V2", s07, 1)

	res, err := f.bulk.BulkStockOut(context.Background(), admin, s07, []inventory.BulkLine{
		{VariantID: v1, Quantity: 2},
		{VariantID: "V2", Quantity: 3}, // insuficiente
		{VariantID: v1, Quantity: 0},   // inválida
		{VariantID: v1, Quantity: 3},
	}, inventory.Meta{ReferenceNumber: "OUT-9"})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Committed)
	assert.Equal(t, 2, res.Failed)
	require.Len(t, res.Lines, 4)
	for i, l := range res.Lines {
		assert.Equal(t, i, l.Index, "el resultado conserva el orden de la solicitud")
	}
	assert.Equal(t, inventory.LineCommitted, res.Lines[0].Status)
	require.NotNil(t, res.Lines[0].Tx)
	assert.Equal(t, entity.ReferenceTypeBulk, res.Lines[0].Tx.ReferenceType)
	assert.Equal(t, "OUT-9", res.Lines[0].Tx.ReferenceNumber)

	assert.Equal(t, inventory.LineFailed, res.Lines[1].Status)
	require.NotNil(t, res.Lines[1].Err)
	assert.Equal(t, domain.KindInsufficientStock, res.Lines[1].Err.Kind)
	assert.Nil(t, res.Lines[1].Tx)

	assert.Equal(t, domain.KindInvalidQuantity, res.Lines[2].Err.Kind)

	assert.Zero(t, f.qty(t, v1, s07), "las líneas confirmadas descuentan 2 + 3")
	assert.Equal(t, int64(1), f.qty(t, "V2", s07), "la línea fallida no toca su fila")
}

func TestBulkStockOut_SinLineas(t *testing.T) {
	f := newFixture(t)
	_, err := f.bulk.BulkStockOut(context.Background(), admin, s07, nil, inventory.Meta{})
	assert.Equal(t, domain.KindInvalidQuantity, domain.KindOf(err))
}

func TestBulkTransfer(t *testing.T) {
	f := newFixture(t)
	f.addVariant(t, "V2", "L", "RED")
	f.stockIn(t, v1, s07, 4)

	res, err := f.bulk.BulkTransfer(context.Background(), admin, s07, s08, []inventory.BulkLine{
		{VariantID: v1, Quantity: 4},
		{VariantID: "V2", Quantity: 1},
	}, inventory.Meta{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Committed)
	assert.Equal(t, 1, res.Failed)

	ok := res.Lines[0]
	require.NotNil(t, ok.Tx)
	require.NotNil(t, ok.TransferIn)
	assert.Equal(t, ok.TransferIn.ID, ok.Tx.PairedTransactionID)
	assert.Equal(t, int64(4), f.qty(t, v1, s08))

	assert.Nil(t, res.Lines[1].TransferIn)
	assert.Equal(t, domain.KindInsufficientStock, res.Lines[1].Err.Kind)

	_, err = f.bulk.BulkTransfer(context.Background(), admin, s07, s07, []inventory.BulkLine{{VariantID: v1, Quantity: 1}}, inventory.Meta{})
	assert.Equal(t, domain.KindInvalidAttributes, domain.KindOf(err))
}

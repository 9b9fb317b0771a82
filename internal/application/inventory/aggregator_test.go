package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockroom-api/internal/application/inventory"
	"github.com/jhoicas/stockroom-api/internal/application/ports"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/memory"
)

func TestGetQuantity_SinFila(t *testing.T) {
	f := newFixture(t)
	assert.Zero(t, f.qty(t, v1, s07))

	_, err := f.aggregator.GetQuantity(context.Background(), "", s07)
	assert.Equal(t, domain.KindInvalidAttributes, domain.KindOf(err))
}

func TestListLowStock(t *testing.T) {
	f := newFixture(t)
	f.addVariant(t, "V2", "L", "RED")
	f.addVariant(t, "V3", "M", "BLUE")
	f.stockIn(t, v1, s07, 3)
	f.stockIn(t, "V2", s07, 50)
	f.stockIn(t, "V3", s07, 1)
	require.NoError(t, f.variants.UpdateStatus(context.Background(), "V3", entity.StatusInactive))

	levels, err := f.aggregator.ListLowStock(context.Background(), s07, 0)
	require.NoError(t, err)
	require.Len(t, levels, 1, "umbral por defecto 10; variantes inactivas excluidas")
	assert.Equal(t, v1, levels[0].Variant.ID)

	levels, err = f.aggregator.ListLowStock(context.Background(), s07, 100)
	require.NoError(t, err)
	require.Len(t, levels, 2)
	assert.Equal(t, int64(3), levels[0].Quantity, "ordenado por cantidad ascendente")

	_, err = f.aggregator.ListLowStock(context.Background(), "S-99", 0)
	assert.Equal(t, domain.KindStoreNotFound, domain.KindOf(err))
}

func TestListLowStock_MinimoPorTipo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	itemTypes := memory.NewItemTypeRepository(f.store)
	items := memory.NewItemRepository(f.store)
	require.NoError(t, itemTypes.Create(ctx, &entity.ItemType{ID: "T-MIN", Code: "UNI", MinStockLevel: 5, Status: entity.StatusActive}))
	require.NoError(t, itemTypes.Create(ctx, &entity.ItemType{ID: "T-SIN", Code: "ACC", Status: entity.StatusActive}))
	require.NoError(t, items.Create(ctx, &entity.Item{ID: "I1", Code: "SHIRT", ItemTypeID: "T-MIN", Status: entity.StatusActive}))
	require.NoError(t, items.Create(ctx, &entity.Item{ID: "I2", Code: "CAP", ItemTypeID: "T-SIN", Status: entity.StatusActive}))
	require.NoError(t, f.variants.Create(ctx, &entity.ItemVariant{ID: "V9", ItemID: "I2", QRCode: "QR-V9", Status: entity.StatusActive}))
	f.addVariant(t, "V2", "L", "RED")

	f.stockIn(t, v1, s07, 4)
	f.stockIn(t, "V2", s07, 6)
	f.stockIn(t, "V9", s07, 8)

	agg := inventory.NewAggregator(f.inv, f.transactions, f.variants, f.stores, 10).WithTypeMinimums(items, itemTypes)

	levels, err := agg.ListLowStock(ctx, s07, 0)
	require.NoError(t, err)
	require.Len(t, levels, 2, "V2 supera el mínimo de su tipo aunque esté bajo el valor por defecto")
	assert.Equal(t, v1, levels[0].Variant.ID)
	assert.Equal(t, int64(5), levels[0].Threshold)
	assert.Equal(t, "V9", levels[1].Variant.ID)
	assert.Equal(t, int64(10), levels[1].Threshold, "tipo sin mínimo cae al valor por defecto")

	levels, err = agg.ListLowStock(ctx, s07, 5)
	require.NoError(t, err)
	require.Len(t, levels, 1, "un umbral explícito ignora los mínimos por tipo")
	assert.Equal(t, v1, levels[0].Variant.ID)
}

func TestReconcile_DetectaDesvio(t *testing.T) {
	f := newFixture(t)
	f.stockIn(t, v1, s07, 8)

	diff, err := f.aggregator.Reconcile(context.Background(), s07)
	require.NoError(t, err)
	assert.Empty(t, diff)

	// escritura directa al agregado, fuera del libro
	inv, err := f.inv.Get(context.Background(), v1, s07)
	require.NoError(t, err)
	inv.Quantity = 5
	require.NoError(t, f.inv.Upsert(context.Background(), inv))

	diff, err = f.aggregator.Reconcile(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, diff, 1)
	assert.Equal(t, inventory.Discrepancy{VariantID: v1, StoreID: s07, Stored: 5, Replayed: 8}, diff[0])
}

type captureExporter struct {
	store string
	rows  []ports.SnapshotRow
}

func (c *captureExporter) ExportInventory(storeName string, rows []ports.SnapshotRow) ([]byte, error) {
	c.store, c.rows = storeName, rows
	return []byte("xlsx"), nil
}

func TestSnapshotExport(t *testing.T) {
	f := newFixture(t)
	f.stockIn(t, v1, s07, 4)
	exp := &captureExporter{}
	uc := inventory.NewSnapshotUseCase(f.aggregator, f.stores, exp)

	data, name, err := uc.Export(context.Background(), s07)
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), data)
	assert.Equal(t, "inventario_S-07.xlsx", name)
	assert.Equal(t, "Tienda S-07", exp.store)
	require.Len(t, exp.rows, 1)
	assert.Equal(t, "QR-V1", exp.rows[0].QRCode)
	assert.Equal(t, int64(4), exp.rows[0].Quantity)

	_, _, err = uc.Export(context.Background(), "S-99")
	assert.Equal(t, domain.KindStoreNotFound, domain.KindOf(err))
}

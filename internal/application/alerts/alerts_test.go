package alerts_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockroom-api/internal/application/alerts"
	"github.com/jhoicas/stockroom-api/internal/application/inventory"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/memory"
)

var admin = entity.Actor{UserID: "u-1", Username: "ana", Role: entity.RoleAdmin}

type fixture struct {
	store  *memory.Store
	ledger *inventory.Ledger
	uc     *alerts.UseCase
}

// newFixture tres tiendas activas (S-01, S-02, S-03 inactiva) y variantes V1..V3; umbral por defecto 10.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	stores := memory.NewStoreRepository(s)
	variants := memory.NewVariantRepository(s)
	transactions := memory.NewStockTransactionRepository(s)
	now := time.Now()
	for id, status := range map[string]string{"S-01": entity.StatusActive, "S-02": entity.StatusActive, "S-03": entity.StatusInactive} {
		require.NoError(t, stores.Create(ctx, &entity.Store{
			ID: id, PlantID: "P1", Code: id, Name: "Tienda " + id,
			StockOutMode: entity.StockOutModeCasual, Status: status, CreatedAt: now, UpdatedAt: now,
		}))
	}
	for _, id := range []string{"V1", "V2", "V3"} {
		require.NoError(t, variants.Create(ctx, &entity.ItemVariant{
			ID: id, ItemID: "I1", QRCode: "QR-" + id, Status: entity.StatusActive, CreatedAt: now, UpdatedAt: now,
		}))
	}
	ledger := inventory.NewLedger(memory.NewTxRunner(s), variants, stores, transactions)
	agg := inventory.NewAggregator(memory.NewInventoryRepository(s), transactions, variants, stores, 10)
	return &fixture{
		store:  s,
		ledger: ledger,
		uc:     alerts.NewUseCase(agg, stores, memory.NewBoxRepository(s), 2),
	}
}

func (f *fixture) stockIn(t *testing.T, variantID, storeID string, qty int64) {
	t.Helper()
	_, err := f.ledger.PostStockIn(context.Background(), inventory.StockInInput{
		Actor: admin, VariantID: variantID, StoreID: storeID, Quantity: qty,
	})
	require.NoError(t, err)
}

func TestStockAlerts_TodasLasTiendas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.stockIn(t, "V1", "S-01", 5)
	f.stockIn(t, "V2", "S-01", 40)
	f.stockIn(t, "V1", "S-02", 2)
	_, err := f.ledger.PostStockOut(ctx, inventory.StockOutInput{Actor: admin, VariantID: "V1", StoreID: "S-02", Quantity: 2})
	require.NoError(t, err)
	f.stockIn(t, "V3", "S-03", 1)

	list, err := f.uc.StockAlerts(ctx, admin, "")
	require.NoError(t, err)
	require.Len(t, list, 2, "S-03 está inactiva; V2 supera el umbral")

	assert.Equal(t, alerts.KindOutOfStock, list[0].Kind, "los agotados van primero")
	assert.Equal(t, "S-02", list[0].StoreID)
	assert.Equal(t, "Tienda S-02", list[0].StoreName)
	assert.Zero(t, list[0].Quantity)

	assert.Equal(t, alerts.KindLowStock, list[1].Kind)
	assert.Equal(t, "V1", list[1].Variant.ID)
	assert.Equal(t, int64(5), list[1].Quantity)
	assert.Equal(t, int64(10), list[1].Threshold)
}

func TestStockAlerts_AlcanceDelAlmacenista(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.stockIn(t, "V1", "S-01", 1)
	f.stockIn(t, "V1", "S-02", 1)
	keeper := entity.Actor{UserID: "u-2", Username: "luis", Role: entity.RoleStorekeeper, StoreIDs: []string{"S-02"}}

	list, err := f.uc.StockAlerts(ctx, keeper, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "S-02", list[0].StoreID)

	_, err = f.uc.StockAlerts(ctx, keeper, "S-01")
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))

	viewer := entity.Actor{UserID: "u-3", Username: "eva", Role: entity.RoleViewer}
	list, err = f.uc.StockAlerts(ctx, viewer, "S-01")
	require.NoError(t, err, "el rol de consulta lee todas las tiendas")
	assert.Len(t, list, 1)

	_, err = f.uc.StockAlerts(ctx, admin, "S-99")
	assert.Equal(t, domain.KindStoreNotFound, domain.KindOf(err))
}

func TestPendingCheckins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	empty, err := f.uc.PendingCheckins(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.Count)
	assert.True(t, empty.OldestReceived.IsZero())

	boxes := memory.NewBoxRepository(f.store)
	old := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	newer := old.Add(48 * time.Hour)
	checkedAt := newer
	require.NoError(t, boxes.Create(ctx, &entity.Box{ID: "B1", Code: "BOX-2026-0001", Status: entity.BoxStatusPendingCheckin, ReceivedDate: newer}))
	require.NoError(t, boxes.Create(ctx, &entity.Box{ID: "B2", Code: "BOX-2026-0002", Status: entity.BoxStatusPendingCheckin, ReceivedDate: old}))
	require.NoError(t, boxes.Create(ctx, &entity.Box{ID: "B3", Code: "BOX-2026-0003", Status: entity.BoxStatusCheckedIn, StoreID: "S-01", ReceivedDate: old, CheckedInAt: &checkedAt}))

	got, err := f.uc.PendingCheckins(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Count)
	assert.ElementsMatch(t, []string{"B1", "B2"}, got.BoxIDs)
	assert.ElementsMatch(t, []string{"BOX-2026-0001", "BOX-2026-0002"}, got.BoxCodes)
	assert.True(t, got.OldestReceived.Equal(old))
}

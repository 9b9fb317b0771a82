package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockroom-api/internal/application/inventory"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/memory"
)

const (
	v1  = "V1"
	s07 = "S-07"
	s08 = "S-08"
)

var admin = entity.Actor{UserID: "u-1", Username: "ana", Role: entity.RoleAdmin}

type fixture struct {
	store        *memory.Store
	runner       inventory.TxRunner
	variants     repository.VariantRepository
	stores       repository.StoreRepository
	transactions repository.StockTransactionRepository
	inv          repository.InventoryRepository
	ledger       *inventory.Ledger
	aggregator   *inventory.Aggregator
	bulk         *inventory.BulkCoordinator
}

// newFixture arma el libro sobre memoria con V1 y las tiendas S-07 y S-08 activas.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	f := &fixture{
		store:        s,
		runner:       memory.NewTxRunner(s),
		variants:     memory.NewVariantRepository(s),
		stores:       memory.NewStoreRepository(s),
		transactions: memory.NewStockTransactionRepository(s),
		inv:          memory.NewInventoryRepository(s),
	}
	f.rebuild(f.runner)

	ctx := context.Background()
	now := time.Now()
	for _, id := range []string{s07, s08} {
		require.NoError(t, f.stores.Create(ctx, &entity.Store{
			ID: id, PlantID: "P1", Code: id, Name: "Tienda " + id,
			StockOutMode: entity.StockOutModeCasual, Status: entity.StatusActive,
			CreatedAt: now, UpdatedAt: now,
		}))
	}
	f.addVariant(t, v1, "M", "RED")
	return f
}

// rebuild reconstruye los casos de uso con otro TxRunner (p. ej. uno que falla a propósito).
func (f *fixture) rebuild(runner inventory.TxRunner) {
	f.ledger = inventory.NewLedger(runner, f.variants, f.stores, f.transactions)
	f.aggregator = inventory.NewAggregator(f.inv, f.transactions, f.variants, f.stores, 10)
	f.bulk = inventory.NewBulkCoordinator(f.ledger, 4)
}

func (f *fixture) addVariant(t *testing.T, id, size, color string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, f.variants.Create(context.Background(), &entity.ItemVariant{
		ID: id, ItemID: "I1", Size: size, Color: color,
		QRCode: "QR-" + id, SKU: "SHIRT-" + size + "-" + color,
		Status: entity.StatusActive, CreatedAt: now, UpdatedAt: now,
	}))
}

func (f *fixture) stockIn(t *testing.T, variantID, storeID string, qty int64) {
	t.Helper()
	_, err := f.ledger.PostStockIn(context.Background(), inventory.StockInInput{
		Actor: admin, VariantID: variantID, StoreID: storeID, Quantity: qty,
	})
	require.NoError(t, err)
}

func (f *fixture) qty(t *testing.T, variantID, storeID string) int64 {
	t.Helper()
	q, err := f.aggregator.GetQuantity(context.Background(), variantID, storeID)
	require.NoError(t, err)
	return q
}

func (f *fixture) ledgerSize(t *testing.T) int {
	t.Helper()
	list, err := f.transactions.List(context.Background(), repository.TransactionFilter{})
	require.NoError(t, err)
	return len(list)
}

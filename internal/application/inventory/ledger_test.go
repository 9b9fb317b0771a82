package inventory_test

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockroom-api/internal/application/inventory"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

func TestPostStockIn_AcumulaYRegistra(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tx, err := f.ledger.PostStockIn(ctx, inventory.StockInInput{
		Actor: admin, VariantID: v1, StoreID: s07, Quantity: 12,
		Meta: inventory.Meta{ReferenceNumber: "PO-77", Reason: "reposición"},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TxTypeStockIn, tx.Type)
	assert.Equal(t, entity.ReferenceTypeManual, tx.ReferenceType)
	assert.Equal(t, "ana", tx.ActorName)
	assert.Equal(t, int64(12), f.qty(t, v1, s07))

	f.stockIn(t, v1, s07, 3)
	assert.Equal(t, int64(15), f.qty(t, v1, s07))
	assert.Equal(t, 2, f.ledgerSize(t))
}

func TestPostStockIn_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.ledger.PostStockIn(ctx, inventory.StockInInput{Actor: admin, VariantID: v1, StoreID: s07, Quantity: 0})
	assert.Equal(t, domain.KindInvalidQuantity, domain.KindOf(err))

	_, err = f.ledger.PostStockIn(ctx, inventory.StockInInput{Actor: admin, VariantID: "V-X", StoreID: s07, Quantity: 1})
	assert.Equal(t, domain.KindVariantNotFound, domain.KindOf(err))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.ledger.PostStockIn(ctx, inventory.StockInInput{Actor: admin, VariantID: v1, StoreID: "S-99", Quantity: 1})
	assert.Equal(t, domain.KindStoreNotFound, domain.KindOf(err))

	keeper := entity.Actor{UserID: "u-2", Username: "beto", Role: entity.RoleStorekeeper, StoreIDs: []string{s08}}
	_, err = f.ledger.PostStockIn(ctx, inventory.StockInInput{Actor: keeper, VariantID: v1, StoreID: s07, Quantity: 1})
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))

	viewer := entity.Actor{UserID: "u-3", Role: entity.RoleViewer}
	_, err = f.ledger.PostStockIn(ctx, inventory.StockInInput{Actor: viewer, VariantID: v1, StoreID: s07, Quantity: 1})
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))

	assert.Zero(t, f.ledgerSize(t), "ningún intento fallido deja movimientos")
}

func TestPostStockIn_VarianteInactiva(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.variants.UpdateStatus(context.Background(), v1, entity.StatusInactive))

	_, err := f.ledger.PostStockIn(context.Background(), inventory.StockInInput{Actor: admin, VariantID: v1, StoreID: s07, Quantity: 1})
	assert.Equal(t, domain.KindVariantNotFound, domain.KindOf(err))
}

func TestPostStockIn_DesbordeEsCantidadInvalida(t *testing.T) {
	f := newFixture(t)
	f.stockIn(t, v1, s07, math.MaxInt64)

	_, err := f.ledger.PostStockIn(context.Background(), inventory.StockInInput{Actor: admin, VariantID: v1, StoreID: s07, Quantity: 1})
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidQuantity, domain.KindOf(err))
	assert.NotErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(math.MaxInt64), f.qty(t, v1, s07))
	assert.Equal(t, 1, f.ledgerSize(t))
}

func TestPostStockOut_Insuficiente(t *testing.T) {
	f := newFixture(t)
	f.stockIn(t, v1, s07, 10)

	_, err := f.ledger.PostStockOut(context.Background(), inventory.StockOutInput{Actor: admin, VariantID: v1, StoreID: s07, Quantity: 15})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	de := domain.AsError(err)
	assert.Equal(t, domain.KindInsufficientStock, de.Kind)
	assert.Equal(t, v1, de.VariantID)
	assert.Equal(t, s07, de.StoreID)
	assert.Equal(t, int64(15), de.Requested)
	assert.Equal(t, int64(10), de.Available)

	assert.Equal(t, int64(10), f.qty(t, v1, s07))
	assert.Equal(t, 1, f.ledgerSize(t))
}

func TestPostStockOut_VarianteInactivaAgotaRemanente(t *testing.T) {
	f := newFixture(t)
	f.stockIn(t, v1, s07, 2)
	require.NoError(t, f.variants.UpdateStatus(context.Background(), v1, entity.StatusInactive))

	_, err := f.ledger.PostStockOut(context.Background(), inventory.StockOutInput{Actor: admin, VariantID: v1, StoreID: s07, Quantity: 2})
	require.NoError(t, err)
	assert.Zero(t, f.qty(t, v1, s07))
}

func TestPostTransfer_Emparejado(t *testing.T) {
	f := newFixture(t)
	f.stockIn(t, v1, s07, 10)

	out, in, err := f.ledger.PostTransfer(context.Background(), inventory.TransferInput{
		Actor: admin, VariantID: v1, FromStoreID: s07, ToStoreID: s08, Quantity: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TxTypeTransferOut, out.Type)
	assert.Equal(t, entity.TxTypeTransferIn, in.Type)
	assert.Equal(t, in.ID, out.PairedTransactionID)
	assert.Equal(t, out.ID, in.PairedTransactionID)
	assert.Equal(t, entity.ReferenceTypeTransfer, out.ReferenceType)

	assert.Equal(t, int64(6), f.qty(t, v1, s07))
	assert.Equal(t, int64(4), f.qty(t, v1, s08))
}

func TestPostTransfer_MismaTienda(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.ledger.PostTransfer(context.Background(), inventory.TransferInput{
		Actor: admin, VariantID: v1, FromStoreID: s07, ToStoreID: s07, Quantity: 1,
	})
	assert.Equal(t, domain.KindInvalidAttributes, domain.KindOf(err))
}

// failingTxnRepo falla el n-ésimo Create de la transacción.
type failingTxnRepo struct {
	repository.StockTransactionRepository
	calls  *int32
	failOn int32
}

func (r failingTxnRepo) Create(ctx context.Context, t *entity.StockTransaction) error {
	if atomic.AddInt32(r.calls, 1) == r.failOn {
		return errors.New("disco lleno")
	}
	return r.StockTransactionRepository.Create(ctx, t)
}

type failingRunner struct {
	inner  inventory.TxRunner
	failOn int32
}

func (r failingRunner) Run(ctx context.Context, fn func(
	txnRepo repository.StockTransactionRepository,
	invRepo repository.InventoryRepository,
	boxRepo repository.BoxRepository,
) error) error {
	var calls int32
	return r.inner.Run(ctx, func(txnRepo repository.StockTransactionRepository, invRepo repository.InventoryRepository, boxRepo repository.BoxRepository) error {
		return fn(failingTxnRepo{StockTransactionRepository: txnRepo, calls: &calls, failOn: r.failOn}, invRepo, boxRepo)
	})
}

func TestPostTransfer_AtomicoAnteFallo(t *testing.T) {
	f := newFixture(t)
	f.stockIn(t, v1, s07, 10)
	before := f.ledgerSize(t)

	// falla al insertar transfer_in, después de mover el agregado y registrar transfer_out
	f.rebuild(failingRunner{inner: f.runner, failOn: 2})
	_, _, err := f.ledger.PostTransfer(context.Background(), inventory.TransferInput{
		Actor: admin, VariantID: v1, FromStoreID: s07, ToStoreID: s08, Quantity: 4,
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))

	assert.Equal(t, int64(10), f.qty(t, v1, s07), "origen intacto")
	assert.Zero(t, f.qty(t, v1, s08), "destino intacto")
	assert.Equal(t, before, f.ledgerSize(t), "sin movimientos huérfanos")

	diff, err := f.aggregator.Reconcile(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestPostStockOut_ConcurrenteNoSobregira(t *testing.T) {
	f := newFixture(t)
	f.stockIn(t, v1, s07, 10)

	var ok, insufficient int32
	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.ledger.PostStockOut(context.Background(), inventory.StockOutInput{Actor: admin, VariantID: v1, StoreID: s07, Quantity: 1})
			switch {
			case err == nil:
				atomic.AddInt32(&ok, 1)
			case errors.Is(err, domain.ErrInsufficientStock):
				atomic.AddInt32(&insufficient, 1)
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(10), ok, "exactamente el stock disponible se confirma")
	assert.Equal(t, int32(15), insufficient)
	assert.Zero(t, f.qty(t, v1, s07))
}

func TestTransferenciasCruzadasConcurrentes(t *testing.T) {
	f := newFixture(t)
	f.stockIn(t, v1, s07, 50)
	f.stockIn(t, v1, s08, 50)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		from, to := s07, s08
		if i%2 == 1 {
			from, to = s08, s07
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := f.ledger.PostTransfer(context.Background(), inventory.TransferInput{
				Actor: admin, VariantID: v1, FromStoreID: from, ToStoreID: to, Quantity: 2,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(100), f.qty(t, v1, s07)+f.qty(t, v1, s08), "los traslados conservan el total")
	assert.Equal(t, int64(50), f.qty(t, v1, s07))
}

// Secuencias aleatorias: el agregado nunca es negativo y siempre coincide con el libro.
func TestLedger_SecuenciasAleatorias(t *testing.T) {
	f := newFixture(t)
	f.addVariant(t, "V2", "L", "BLUE")
	ctx := context.Background()
	rnd := rand.New(rand.NewSource(42))
	variants := []string{v1, "V2"}
	stores := []string{s07, s08}
	expected := map[entity.InventoryKey]int64{}

	for i := 0; i < 300; i++ {
		v := variants[rnd.Intn(len(variants))]
		s := stores[rnd.Intn(len(stores))]
		q := int64(rnd.Intn(6) + 1)
		k := entity.InventoryKey{VariantID: v, StoreID: s}
		switch rnd.Intn(3) {
		case 0:
			_, err := f.ledger.PostStockIn(ctx, inventory.StockInInput{Actor: admin, VariantID: v, StoreID: s, Quantity: q})
			require.NoError(t, err)
			expected[k] += q
		case 1:
			_, err := f.ledger.PostStockOut(ctx, inventory.StockOutInput{Actor: admin, VariantID: v, StoreID: s, Quantity: q})
			if expected[k] >= q {
				require.NoError(t, err)
				expected[k] -= q
			} else {
				require.ErrorIs(t, err, domain.ErrInsufficientStock)
			}
		case 2:
			other := s08
			if s == s08 {
				other = s07
			}
			_, _, err := f.ledger.PostTransfer(ctx, inventory.TransferInput{Actor: admin, VariantID: v, FromStoreID: s, ToStoreID: other, Quantity: q})
			if expected[k] >= q {
				require.NoError(t, err)
				expected[k] -= q
				expected[entity.InventoryKey{VariantID: v, StoreID: other}] += q
			} else {
				require.ErrorIs(t, err, domain.ErrInsufficientStock)
			}
		}
	}

	for k, want := range expected {
		got := f.qty(t, k.VariantID, k.StoreID)
		assert.Equal(t, want, got, "cantidad de %s en %s", k.VariantID, k.StoreID)
		assert.GreaterOrEqual(t, got, int64(0))
	}
	diff, err := f.aggregator.Reconcile(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, diff, "el agregado es la reproducción exacta del libro")
}

func TestListTransactions(t *testing.T) {
	f := newFixture(t)
	f.stockIn(t, v1, s07, 5)
	f.stockIn(t, v1, s08, 7)
	ctx := context.Background()

	list, err := f.ledger.ListTransactions(ctx, repository.TransactionFilter{StoreID: s08})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(7), list[0].Quantity)

	_, err = f.ledger.ListTransactions(ctx, repository.TransactionFilter{Type: "ajuste"})
	assert.Equal(t, domain.KindInvalidAttributes, domain.KindOf(err))

	got, err := f.ledger.GetTransaction(ctx, list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, list[0].ID, got.ID)

	_, err = f.ledger.GetTransaction(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

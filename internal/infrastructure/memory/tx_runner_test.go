package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

func seedVariant(t *testing.T, s *Store, id string) {
	t.Helper()
	require.NoError(t, NewVariantRepository(s).Create(context.Background(), &entity.ItemVariant{ID: id, ItemID: "i1", QRCode: "INV-" + id, Status: entity.StatusActive}))
}

func TestTxRunner_CommitAppliesWrites(t *testing.T) {
	s := NewStore()
	seedVariant(t, s, "v1")
	runner := NewTxRunner(s)
	ctx := context.Background()

	err := runner.Run(ctx, func(txnRepo repository.StockTransactionRepository, invRepo repository.InventoryRepository, _ repository.BoxRepository) error {
		if err := invRepo.Upsert(ctx, &entity.Inventory{VariantID: "v1", StoreID: "s1", Quantity: 5}); err != nil {
			return err
		}
		return txnRepo.Create(ctx, &entity.StockTransaction{ID: "t1", Type: entity.TxTypeStockIn, VariantID: "v1", StoreID: "s1", Quantity: 5})
	})
	require.NoError(t, err)

	inv, err := NewInventoryRepository(s).Get(ctx, "v1", "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), inv.Quantity)

	tx, err := NewStockTransactionRepository(s).GetByID(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, tx)
}

func TestTxRunner_ErrorDiscardsWrites(t *testing.T) {
	s := NewStore()
	runner := NewTxRunner(s)
	ctx := context.Background()
	boom := errors.New("boom")

	err := runner.Run(ctx, func(txnRepo repository.StockTransactionRepository, invRepo repository.InventoryRepository, _ repository.BoxRepository) error {
		_ = invRepo.Upsert(ctx, &entity.Inventory{VariantID: "v1", StoreID: "s1", Quantity: 5})
		_ = txnRepo.Create(ctx, &entity.StockTransaction{ID: "t1", Type: entity.TxTypeStockIn, VariantID: "v1", StoreID: "s1", Quantity: 5})
		return boom
	})
	assert.ErrorIs(t, err, boom)

	inv, _ := NewInventoryRepository(s).Get(ctx, "v1", "s1")
	assert.Equal(t, int64(0), inv.Quantity)
	list, _ := NewStockTransactionRepository(s).List(ctx, repository.TransactionFilter{})
	assert.Empty(t, list)
}

func TestTxRunner_LockBlocksUntilCommit(t *testing.T) {
	s := NewStore()
	seedVariant(t, s, "v1")
	runner := NewTxRunner(s)
	ctx := context.Background()

	locked := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- runner.Run(ctx, func(_ repository.StockTransactionRepository, invRepo repository.InventoryRepository, _ repository.BoxRepository) error {
			if _, err := invRepo.LockForUpdate(ctx, "v1", "s1"); err != nil {
				return err
			}
			close(locked)
			<-release
			return invRepo.Upsert(ctx, &entity.Inventory{VariantID: "v1", StoreID: "s1", Quantity: 7})
		})
	}()
	<-locked

	// Un segundo intento con timeout corto no obtiene el bloqueo.
	short, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	err := runner.Run(short, func(_ repository.StockTransactionRepository, invRepo repository.InventoryRepository, _ repository.BoxRepository) error {
		_, err := invRepo.LockForUpdate(short, "v1", "s1")
		return err
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	require.NoError(t, <-done)

	// Tras el commit el siguiente lector ve la cantidad nueva.
	err = runner.Run(ctx, func(_ repository.StockTransactionRepository, invRepo repository.InventoryRepository, _ repository.BoxRepository) error {
		inv, err := invRepo.LockForUpdate(ctx, "v1", "s1")
		if err != nil {
			return err
		}
		assert.Equal(t, int64(7), inv.Quantity)
		return nil
	})
	require.NoError(t, err)
}

func TestTxRunner_VariantDeletedBeforeCommit(t *testing.T) {
	s := NewStore()
	seedVariant(t, s, "v1")
	runner := NewTxRunner(s)
	ctx := context.Background()

	staged := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- runner.Run(ctx, func(txnRepo repository.StockTransactionRepository, invRepo repository.InventoryRepository, _ repository.BoxRepository) error {
			if _, err := invRepo.LockForUpdate(ctx, "v1", "s1"); err != nil {
				return err
			}
			if err := invRepo.Upsert(ctx, &entity.Inventory{VariantID: "v1", StoreID: "s1", Quantity: 3}); err != nil {
				return err
			}
			if err := txnRepo.Create(ctx, &entity.StockTransaction{ID: "t1", Type: entity.TxTypeStockIn, VariantID: "v1", StoreID: "s1", Quantity: 3}); err != nil {
				return err
			}
			close(staged)
			<-release
			return nil
		})
	}()
	<-staged

	// Sin movimientos confirmados el borrado definitivo procede.
	require.NoError(t, NewVariantRepository(s).Delete(ctx, "v1"))
	close(release)

	err := <-done
	assert.Equal(t, domain.KindVariantNotFound, domain.KindOf(err))

	list, err := NewStockTransactionRepository(s).List(ctx, repository.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, list, "ningún movimiento huérfano")
	inv, _ := NewInventoryRepository(s).Get(ctx, "v1", "s1")
	assert.Equal(t, int64(0), inv.Quantity)
}

func TestTxRunner_LockIsReentrant(t *testing.T) {
	runner := NewTxRunner(NewStore())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := runner.Run(ctx, func(_ repository.StockTransactionRepository, invRepo repository.InventoryRepository, _ repository.BoxRepository) error {
		if _, err := invRepo.LockForUpdate(ctx, "v1", "s1"); err != nil {
			return err
		}
		_, err := invRepo.LockForUpdate(ctx, "v1", "s1")
		return err
	})
	require.NoError(t, err)
}

func TestBoxRepo_DuplicateCodeInsideTransaction(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, NewBoxRepository(s).Create(ctx, &entity.Box{ID: "b1", Code: "BX-1", Status: entity.BoxStatusPendingCheckin}))

	err := NewTxRunner(s).Run(ctx, func(_ repository.StockTransactionRepository, _ repository.InventoryRepository, boxRepo repository.BoxRepository) error {
		return boxRepo.Create(ctx, &entity.Box{ID: "b2", Code: "BX-1", Status: entity.BoxStatusPendingCheckin})
	})
	assert.Equal(t, domain.KindDuplicateBoxCode, domain.KindOf(err))
}

func TestVariantRepo_DeleteInUse(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	variants := NewVariantRepository(s)
	require.NoError(t, variants.Create(ctx, &entity.ItemVariant{ID: "v1", ItemID: "i1", QRCode: "INV-A", Status: entity.StatusActive}))
	require.NoError(t, NewStockTransactionRepository(s).Create(ctx, &entity.StockTransaction{ID: "t1", Type: entity.TxTypeStockIn, VariantID: "v1", StoreID: "s1", Quantity: 1}))

	err := variants.Delete(ctx, "v1")
	assert.Equal(t, domain.KindVariantInUse, domain.KindOf(err))

	err = variants.Create(ctx, &entity.ItemVariant{ID: "v2", ItemID: "i2", QRCode: "INV-A", Status: entity.StatusActive})
	assert.ErrorIs(t, err, repository.ErrQRCodeTaken)
}

package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

// TxRunner ejecuta callbacks con repositorios que acumulan escrituras y las aplican al commit.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el arena.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn; si devuelve nil aplica las escrituras, si no las descarta. Los bloqueos
// tomados durante fn se liberan siempre al final.
func (r *TxRunner) Run(ctx context.Context, fn func(
	txnRepo repository.StockTransactionRepository,
	invRepo repository.InventoryRepository,
	boxRepo repository.BoxRepository,
) error) error {
	tx := newTxState(r.s)
	defer tx.releaseLocks()

	if err := fn(
		&StockTransactionRepo{s: r.s, tx: tx},
		&InventoryRepo{s: r.s, tx: tx},
		&BoxRepo{s: r.s, tx: tx},
	); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return tx.commit()
}

// txState escrituras pendientes y bloqueos de una transacción.
type txState struct {
	s            *Store
	held         []string
	heldSet      map[string]struct{}
	inventory    map[entity.InventoryKey]*entity.Inventory
	transactions []*entity.StockTransaction
	newBoxes     map[string]*entity.Box
	boxOrder     []string
	updatedBoxes map[string]*entity.Box
}

func newTxState(s *Store) *txState {
	return &txState{
		s:            s,
		heldSet:      make(map[string]struct{}),
		inventory:    make(map[entity.InventoryKey]*entity.Inventory),
		newBoxes:     make(map[string]*entity.Box),
		updatedBoxes: make(map[string]*entity.Box),
	}
}

// lock es reentrante dentro de la misma transacción.
func (tx *txState) lock(ctx context.Context, key string) error {
	if _, ok := tx.heldSet[key]; ok {
		return nil
	}
	if err := tx.s.locks.acquire(ctx, key); err != nil {
		return fmt.Errorf("lock %s: %w", key, err)
	}
	tx.heldSet[key] = struct{}{}
	tx.held = append(tx.held, key)
	return nil
}

func (tx *txState) releaseLocks() {
	for i := len(tx.held) - 1; i >= 0; i-- {
		tx.s.locks.release(tx.held[i])
	}
	tx.held = nil
	tx.heldSet = map[string]struct{}{}
}

func (tx *txState) commit() error {
	s := tx.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range tx.boxOrder {
		if _, taken := s.boxByCode[tx.newBoxes[id].Code]; taken {
			return fmt.Errorf("commit transaction: código de caja %s tomado", tx.newBoxes[id].Code)
		}
	}
	for k, inv := range tx.inventory {
		if inv.Quantity < 0 {
			return fmt.Errorf("commit transaction: inventario negativo en %s", k)
		}
		if _, ok := s.variants[k.VariantID]; !ok {
			return domain.VariantNotFound(k.VariantID)
		}
	}
	// la variante pudo borrarse con la transacción abierta, como haría la FK en postgres
	for _, t := range tx.transactions {
		if _, ok := s.variants[t.VariantID]; !ok {
			return domain.VariantNotFound(t.VariantID)
		}
	}

	for k, inv := range tx.inventory {
		s.inventory[k] = cloneInventory(inv)
	}
	for _, t := range tx.transactions {
		s.txIndex[t.ID] = len(s.transactions)
		s.transactions = append(s.transactions, cloneTx(t))
	}
	for _, id := range tx.boxOrder {
		b := tx.newBoxes[id]
		s.boxes[id] = cloneBox(b)
		s.boxByCode[b.Code] = id
	}
	for id, b := range tx.updatedBoxes {
		s.boxes[id] = cloneBox(b)
	}
	return nil
}

package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/inventory"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

// StockTransactionRepo implementa repository.StockTransactionRepository. Dentro de una
// transacción los movimientos quedan pendientes hasta el commit.
type StockTransactionRepo struct {
	s  *Store
	tx *txState
}

func NewStockTransactionRepository(s *Store) *StockTransactionRepo {
	return &StockTransactionRepo{s: s}
}

func (r *StockTransactionRepo) Create(_ context.Context, t *entity.StockTransaction) error {
	if t.Quantity <= 0 {
		return fmt.Errorf("insert stock transaction: cantidad %d no positiva", t.Quantity)
	}
	if r.tx != nil {
		r.tx.transactions = append(r.tx.transactions, cloneTx(t))
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, dup := r.s.txIndex[t.ID]; dup {
		return fmt.Errorf("insert stock transaction: id %s duplicado", t.ID)
	}
	r.s.txIndex[t.ID] = len(r.s.transactions)
	r.s.transactions = append(r.s.transactions, cloneTx(t))
	return nil
}

func (r *StockTransactionRepo) GetByID(_ context.Context, id string) (*entity.StockTransaction, error) {
	if r.tx != nil {
		for _, t := range r.tx.transactions {
			if t.ID == id {
				return cloneTx(t), nil
			}
		}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i, ok := r.s.txIndex[id]
	if !ok {
		return nil, nil
	}
	return cloneTx(r.s.transactions[i]), nil
}

// List devuelve los movimientos más recientes primero.
func (r *StockTransactionRepo) List(_ context.Context, f repository.TransactionFilter) ([]*entity.StockTransaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.StockTransaction
	for i := len(r.s.transactions) - 1; i >= 0; i-- {
		t := r.s.transactions[i]
		if f.VariantID != "" && t.VariantID != f.VariantID {
			continue
		}
		if f.StoreID != "" && t.StoreID != f.StoreID {
			continue
		}
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if f.BoxID != "" && t.BoxID != f.BoxID {
			continue
		}
		if f.ReferenceNumber != "" && t.ReferenceNumber != f.ReferenceNumber {
			continue
		}
		list = append(list, cloneTx(t))
	}
	from, to := page(len(list), f.Limit, f.Offset)
	return list[from:to], nil
}

func (r *StockTransactionRepo) CountByVariant(_ context.Context, variantID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, t := range r.s.transactions {
		if t.VariantID == variantID {
			n++
		}
	}
	return n, nil
}

func (r *StockTransactionRepo) SumByKey(_ context.Context, storeID string) (map[entity.InventoryKey]int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	txs := make([]*entity.StockTransaction, 0, len(r.s.transactions))
	for _, t := range r.s.transactions {
		if storeID == "" || t.StoreID == storeID {
			txs = append(txs, t)
		}
	}
	return inventory.Replay(txs), nil
}

package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementa repository.InventoryRepository.
type InventoryRepo struct {
	s  *Store
	tx *txState
}

func NewInventoryRepository(s *Store) *InventoryRepo {
	return &InventoryRepo{s: s}
}

func lockKey(k entity.InventoryKey) string { return "inventory:" + k.String() }

func (r *InventoryRepo) Get(_ context.Context, variantID, storeID string) (*entity.Inventory, error) {
	k := entity.InventoryKey{VariantID: variantID, StoreID: storeID}
	if r.tx != nil {
		if inv, ok := r.tx.inventory[k]; ok {
			return cloneInventory(inv), nil
		}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if inv, ok := r.s.inventory[k]; ok {
		return cloneInventory(inv), nil
	}
	return &entity.Inventory{VariantID: variantID, StoreID: storeID}, nil
}

// LockForUpdate fuera de transacción equivale a Get.
func (r *InventoryRepo) LockForUpdate(ctx context.Context, variantID, storeID string) (*entity.Inventory, error) {
	if r.tx != nil {
		k := entity.InventoryKey{VariantID: variantID, StoreID: storeID}
		if err := r.tx.lock(ctx, lockKey(k)); err != nil {
			return nil, err
		}
	}
	return r.Get(ctx, variantID, storeID)
}

func (r *InventoryRepo) Upsert(_ context.Context, inv *entity.Inventory) error {
	if inv.Quantity < 0 {
		return fmt.Errorf("upsert inventory: cantidad negativa %d", inv.Quantity)
	}
	k := entity.InventoryKey{VariantID: inv.VariantID, StoreID: inv.StoreID}
	c := cloneInventory(inv)
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now()
	}
	if r.tx != nil {
		r.tx.inventory[k] = c
		return nil
	}
	r.s.mu.Lock()
	r.s.inventory[k] = c
	r.s.mu.Unlock()
	return nil
}

func (r *InventoryRepo) ListBelow(_ context.Context, storeID string, threshold int64) ([]*entity.Inventory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Inventory
	for k, inv := range r.s.inventory {
		if k.StoreID != storeID || inv.Quantity >= threshold {
			continue
		}
		if v, ok := r.s.variants[k.VariantID]; !ok || !v.IsActive() {
			continue
		}
		list = append(list, cloneInventory(inv))
	}
	sortInventory(list)
	return list, nil
}

func (r *InventoryRepo) ListAll(_ context.Context, storeID string) ([]*entity.Inventory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Inventory
	for k, inv := range r.s.inventory {
		if storeID != "" && k.StoreID != storeID {
			continue
		}
		list = append(list, cloneInventory(inv))
	}
	sortInventory(list)
	return list, nil
}

func sortInventory(list []*entity.Inventory) {
	sort.Slice(list, func(i, j int) bool {
		a := entity.InventoryKey{VariantID: list[i].VariantID, StoreID: list[i].StoreID}
		b := entity.InventoryKey{VariantID: list[j].VariantID, StoreID: list[j].StoreID}
		return a.Less(b)
	})
}

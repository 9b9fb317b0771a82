package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Get obtiene la cantidad actual; sin fila devuelve 0.
func (r *InventoryRepo) Get(ctx context.Context, variantID, storeID string) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := r.q.QueryRow(ctx, `
		SELECT variant_id, store_id, quantity, updated_at
		FROM inventory WHERE variant_id = $1 AND store_id = $2`, variantID, storeID).Scan(
		&inv.VariantID, &inv.StoreID, &inv.Quantity, &inv.UpdatedAt,
	)
	if err != nil {
		if isNotFound(err) {
			return &entity.Inventory{VariantID: variantID, StoreID: storeID}, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}

// LockForUpdate garantiza la fila (INSERT ... ON CONFLICT DO NOTHING) y la bloquea con
// SELECT FOR UPDATE. Así también se serializa el primer movimiento de una clave nueva.
func (r *InventoryRepo) LockForUpdate(ctx context.Context, variantID, storeID string) (*entity.Inventory, error) {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory (variant_id, store_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (variant_id, store_id) DO NOTHING`, variantID, storeID)
	if err != nil {
		return nil, fmt.Errorf("ensure inventory row: %w", err)
	}
	var inv entity.Inventory
	err = r.q.QueryRow(ctx, `
		SELECT variant_id, store_id, quantity, updated_at
		FROM inventory WHERE variant_id = $1 AND store_id = $2
		FOR UPDATE`, variantID, storeID).Scan(
		&inv.VariantID, &inv.StoreID, &inv.Quantity, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("lock inventory: %w", err)
	}
	return &inv, nil
}

// Upsert inserta o actualiza la cantidad (CHECK quantity >= 0 en la tabla).
func (r *InventoryRepo) Upsert(ctx context.Context, inv *entity.Inventory) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory (variant_id, store_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (variant_id, store_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`,
		inv.VariantID, inv.StoreID, inv.Quantity, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert inventory: %w", err)
	}
	return nil
}

func (r *InventoryRepo) ListBelow(ctx context.Context, storeID string, threshold int64) ([]*entity.Inventory, error) {
	return r.list(ctx, `
		SELECT i.variant_id, i.store_id, i.quantity, i.updated_at
		FROM inventory i JOIN item_variants v ON v.id = i.variant_id
		WHERE i.store_id = $1 AND i.quantity < $2 AND v.status = 'active'
		ORDER BY i.variant_id, i.store_id`, storeID, threshold)
}

func (r *InventoryRepo) ListAll(ctx context.Context, storeID string) ([]*entity.Inventory, error) {
	return r.list(ctx, `
		SELECT variant_id, store_id, quantity, updated_at
		FROM inventory
		WHERE ($1 = '' OR store_id::text = $1)
		ORDER BY variant_id, store_id`, storeID)
}

func (r *InventoryRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Inventory, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.Inventory
	for rows.Next() {
		var inv entity.Inventory
		if err := rows.Scan(&inv.VariantID, &inv.StoreID, &inv.Quantity, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

package repository

import (
	"context"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// InventoryRepository puerto del agregado de cantidades por (variante, tienda).
type InventoryRepository interface {
	// Get devuelve cantidad 0 si no existe fila.
	Get(ctx context.Context, variantID, storeID string) (*entity.Inventory, error)
	// LockForUpdate crea la fila si no existe y la bloquea hasta el fin de la transacción.
	LockForUpdate(ctx context.Context, variantID, storeID string) (*entity.Inventory, error)
	Upsert(ctx context.Context, inv *entity.Inventory) error
	// ListBelow filas con quantity < threshold de variantes activas.
	ListBelow(ctx context.Context, storeID string, threshold int64) ([]*entity.Inventory, error)
	// ListAll filas de todas las tiendas (storeID vacío) o de una.
	ListAll(ctx context.Context, storeID string) ([]*entity.Inventory, error)
}

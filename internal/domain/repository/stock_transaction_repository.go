package repository

import (
	"context"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// TransactionFilter filtros para listar el libro de stock.
type TransactionFilter struct {
	VariantID       string
	StoreID         string
	Type            string
	BoxID           string
	ReferenceNumber string
	Limit           int
	Offset          int
}

// StockTransactionRepository puerto del libro de movimientos (solo inserción).
type StockTransactionRepository interface {
	Create(ctx context.Context, tx *entity.StockTransaction) error
	GetByID(ctx context.Context, id string) (*entity.StockTransaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]*entity.StockTransaction, error)
	CountByVariant(ctx context.Context, variantID string) (int, error)
	// SumByKey devuelve Σentradas − Σsalidas por (variante, tienda); storeID vacío = todas.
	SumByKey(ctx context.Context, storeID string) (map[entity.InventoryKey]int64, error)
}

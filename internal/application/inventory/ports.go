package inventory

import (
	"context"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil; rollback en cualquier otro caso (incluido panic).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txnRepo repository.StockTransactionRepository,
		invRepo repository.InventoryRepository,
		boxRepo repository.BoxRepository,
	) error) error
}

// QRResolver resuelve el código impreso en la etiqueta a la variante activa.
type QRResolver interface {
	ResolveByQRCode(ctx context.Context, code string) (*entity.ItemVariant, error)
}

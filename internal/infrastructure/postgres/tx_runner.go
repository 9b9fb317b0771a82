package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL (READ COMMITTED + FOR UPDATE).
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Los bloqueos de fila tomados por los repos se liberan al terminar la transacción.
func (r *TxRunner) Run(ctx context.Context, fn func(
	txnRepo repository.StockTransactionRepository,
	invRepo repository.InventoryRepository,
	boxRepo repository.BoxRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockTransactionRepository(tx), NewInventoryRepository(tx), NewBoxRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

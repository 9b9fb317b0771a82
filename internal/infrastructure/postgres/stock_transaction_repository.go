package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

const txColumns = `id, transaction_type, variant_id, store_id, quantity, box_id, paired_transaction_id,
	reference_type, reference_number, reason, notes, actor_id, actor_name, created_at`

// StockTransactionRepo implementación del libro de movimientos sobre PostgreSQL (usable con pool o tx).
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

func scanTx(row pgx.Row) (*entity.StockTransaction, error) {
	var t entity.StockTransaction
	var boxID, paired *string
	err := row.Scan(&t.ID, &t.Type, &t.VariantID, &t.StoreID, &t.Quantity, &boxID, &paired,
		&t.ReferenceType, &t.ReferenceNumber, &t.Reason, &t.Notes, &t.ActorID, &t.ActorName, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.BoxID = deref(boxID)
	t.PairedTransactionID = deref(paired)
	return &t, nil
}

// Create inserta el movimiento. El libro es solo inserción: no hay Update ni Delete.
func (r *StockTransactionRepo) Create(ctx context.Context, t *entity.StockTransaction) error {
	_, err := r.q.Exec(ctx, `INSERT INTO stock_transactions (`+txColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		t.ID, t.Type, t.VariantID, t.StoreID, t.Quantity, nullable(t.BoxID), nullable(t.PairedTransactionID),
		t.ReferenceType, t.ReferenceNumber, t.Reason, t.Notes, t.ActorID, t.ActorName, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock transaction: %w", err)
	}
	return nil
}

func (r *StockTransactionRepo) GetByID(ctx context.Context, id string) (*entity.StockTransaction, error) {
	t, err := scanTx(r.q.QueryRow(ctx, `SELECT `+txColumns+` FROM stock_transactions WHERE id = $1`, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock transaction: %w", err)
	}
	return t, nil
}

// List más recientes primero (seq es el orden de inserción).
func (r *StockTransactionRepo) List(ctx context.Context, f repository.TransactionFilter) ([]*entity.StockTransaction, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+txColumns+` FROM stock_transactions
		WHERE ($1 = '' OR variant_id::text = $1)
		  AND ($2 = '' OR store_id::text = $2)
		  AND ($3 = '' OR transaction_type = $3)
		  AND ($4 = '' OR box_id::text = $4)
		  AND ($5 = '' OR reference_number = $5)
		ORDER BY seq DESC
		LIMIT NULLIF($6::int, 0) OFFSET $7`,
		f.VariantID, f.StoreID, f.Type, f.BoxID, f.ReferenceNumber, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list stock transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTransaction
	for rows.Next() {
		t, err := scanTx(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *StockTransactionRepo) CountByVariant(ctx context.Context, variantID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM stock_transactions WHERE variant_id = $1`, variantID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stock transactions: %w", err)
	}
	return n, nil
}

// SumByKey reconstruye las cantidades desde el libro.
func (r *StockTransactionRepo) SumByKey(ctx context.Context, storeID string) (map[entity.InventoryKey]int64, error) {
	rows, err := r.q.Query(ctx, `
		SELECT variant_id, store_id,
			SUM(CASE WHEN transaction_type IN ('stock_in', 'transfer_in') THEN quantity ELSE -quantity END)::bigint
		FROM stock_transactions
		WHERE ($1 = '' OR store_id::text = $1)
		GROUP BY variant_id, store_id`, storeID)
	if err != nil {
		return nil, fmt.Errorf("sum stock transactions: %w", err)
	}
	defer rows.Close()
	sums := make(map[entity.InventoryKey]int64)
	for rows.Next() {
		var k entity.InventoryKey
		var qty int64
		if err := rows.Scan(&k.VariantID, &k.StoreID, &qty); err != nil {
			return nil, fmt.Errorf("scan sum: %w", err)
		}
		sums[k] = qty
	}
	return sums, rows.Err()
}

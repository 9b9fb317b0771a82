package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

const (
	constraintVariantQR   = "item_variants_qr_code_key"
	constraintActiveCombo = "item_variants_active_combo_idx"
	variantColumns        = `id, item_id, size, color, qr_code, sku, status, created_at, updated_at`
)

// VariantRepo implementación del puerto VariantRepository sobre PostgreSQL.
type VariantRepo struct {
	pool *pgxpool.Pool
}

// NewVariantRepository construye el adaptador de persistencia para variantes.
func NewVariantRepository(pool *pgxpool.Pool) *VariantRepo {
	return &VariantRepo{pool: pool}
}

func scanVariant(row pgx.Row) (*entity.ItemVariant, error) {
	var v entity.ItemVariant
	if err := row.Scan(&v.ID, &v.ItemID, &v.Size, &v.Color, &v.QRCode, &v.SKU, &v.Status, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}

// Create persiste la variante. El índice parcial sobre (item_id, size, color) WHERE status='active'
// es quien cierra la carrera entre dos creaciones simultáneas.
func (r *VariantRepo) Create(ctx context.Context, v *entity.ItemVariant) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO item_variants (`+variantColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		v.ID, v.ItemID, v.Size, v.Color, v.QRCode, v.SKU, v.Status, v.CreatedAt, v.UpdatedAt,
	)
	if err == nil {
		return nil
	}
	if !isUniqueViolation(err) {
		return fmt.Errorf("insert variant: %w", err)
	}
	switch constraintName(err) {
	case constraintVariantQR:
		return repository.ErrQRCodeTaken
	case constraintActiveCombo:
		existing, ferr := r.FindActive(ctx, v.ItemID, v.Size, v.Color)
		if ferr != nil {
			return ferr
		}
		id := ""
		if existing != nil {
			id = existing.ID
		}
		return domain.DuplicateVariant(v.ItemID, id)
	}
	return fmt.Errorf("insert variant: %w", err)
}

func (r *VariantRepo) GetByID(ctx context.Context, id string) (*entity.ItemVariant, error) {
	return r.findOne(ctx, `SELECT `+variantColumns+` FROM item_variants WHERE id = $1`, id)
}

func (r *VariantRepo) GetByQRCode(ctx context.Context, code string) (*entity.ItemVariant, error) {
	return r.findOne(ctx, `SELECT `+variantColumns+` FROM item_variants WHERE qr_code = $1`, code)
}

func (r *VariantRepo) FindActive(ctx context.Context, itemID, size, color string) (*entity.ItemVariant, error) {
	return r.findOne(ctx, `SELECT `+variantColumns+` FROM item_variants
		WHERE item_id = $1 AND size = $2 AND color = $3 AND status = 'active'`, itemID, size, color)
}

func (r *VariantRepo) findOne(ctx context.Context, query string, args ...any) (*entity.ItemVariant, error) {
	v, err := scanVariant(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return v, nil
}

func (r *VariantRepo) ListByItem(ctx context.Context, itemID string, includeInactive bool) ([]*entity.ItemVariant, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+variantColumns+` FROM item_variants
		WHERE item_id = $1 AND ($2 OR status = 'active')
		ORDER BY created_at, id`, itemID, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()
	var list []*entity.ItemVariant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func (r *VariantRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE item_variants SET status = $2, updated_at = $3 WHERE id = $1`, id, status, time.Now())
	if err != nil {
		if isUniqueViolation(err) {
			return domain.DuplicateVariant("", id)
		}
		return fmt.Errorf("update variant status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.VariantNotFound(id)
	}
	return nil
}

// Delete borra físicamente; las FK de movimientos y líneas de caja lo impiden si está en uso.
func (r *VariantRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM item_variants WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.VariantInUse(id)
		}
		return fmt.Errorf("delete variant: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.VariantNotFound(id)
	}
	return nil
}

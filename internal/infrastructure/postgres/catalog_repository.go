package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

var (
	_ repository.ItemTypeRepository = (*ItemTypeRepo)(nil)
	_ repository.ItemRepository     = (*ItemRepo)(nil)
)

// ItemTypeRepo implementación del puerto ItemTypeRepository sobre PostgreSQL.
type ItemTypeRepo struct {
	pool *pgxpool.Pool
}

// NewItemTypeRepository construye el adaptador del catálogo de tipos.
func NewItemTypeRepository(pool *pgxpool.Pool) *ItemTypeRepo {
	return &ItemTypeRepo{pool: pool}
}

const itemTypeColumns = `id, category_id, type_code, type_name, description, has_size, available_sizes, has_color,
	available_colors, min_stock_level, max_stock_level, status, created_at, updated_at`

func scanItemType(row pgx.Row) (*entity.ItemType, error) {
	var t entity.ItemType
	var categoryID *string
	err := row.Scan(&t.ID, &categoryID, &t.Code, &t.Name, &t.Description, &t.HasSize, &t.AvailableSizes, &t.HasColor,
		&t.AvailableColors, &t.MinStockLevel, &t.MaxStockLevel, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.CategoryID = deref(categoryID)
	return &t, nil
}

func (r *ItemTypeRepo) Create(ctx context.Context, t *entity.ItemType) error {
	sizes, colors := t.AvailableSizes, t.AvailableColors
	if sizes == nil {
		sizes = []string{}
	}
	if colors == nil {
		colors = []string{}
	}
	_, err := r.pool.Exec(ctx, `INSERT INTO item_types (`+itemTypeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		t.ID, nullable(t.CategoryID), t.Code, t.Name, t.Description, t.HasSize, sizes, t.HasColor, colors,
		t.MinStockLevel, t.MaxStockLevel, t.Status, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("el código de tipo ya existe")
		}
		if isForeignKeyViolation(err) {
			return domain.NotFound("categoría")
		}
		return fmt.Errorf("insert item type: %w", err)
	}
	return nil
}

func (r *ItemTypeRepo) GetByID(ctx context.Context, id string) (*entity.ItemType, error) {
	t, err := scanItemType(r.pool.QueryRow(ctx, `SELECT `+itemTypeColumns+` FROM item_types WHERE id = $1`, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item type: %w", err)
	}
	return t, nil
}

func (r *ItemTypeRepo) List(ctx context.Context, limit, offset int) ([]*entity.ItemType, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+itemTypeColumns+` FROM item_types ORDER BY type_code LIMIT NULLIF($1::int, 0) OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list item types: %w", err)
	}
	defer rows.Close()
	var list []*entity.ItemType
	for rows.Next() {
		t, err := scanItemType(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item type: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *ItemTypeRepo) ListByCategory(ctx context.Context, categoryID string) ([]*entity.ItemType, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+itemTypeColumns+` FROM item_types WHERE category_id::text = $1 ORDER BY type_code`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list item types by category: %w", err)
	}
	defer rows.Close()
	var list []*entity.ItemType
	for rows.Next() {
		t, err := scanItemType(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item type: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL.
type ItemRepo struct {
	pool *pgxpool.Pool
}

// NewItemRepository construye el adaptador de persistencia para artículos.
func NewItemRepository(pool *pgxpool.Pool) *ItemRepo {
	return &ItemRepo{pool: pool}
}

const itemColumns = `id, item_code, item_name, description, item_type_id, unit, unit_price, status, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(&it.ID, &it.Code, &it.Name, &it.Description, &it.ItemTypeID, &it.Unit,
		&it.UnitPrice, &it.Status, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO items (`+itemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		it.ID, it.Code, it.Name, it.Description, it.ItemTypeID, it.Unit, it.UnitPrice, it.Status, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("el código de artículo ya existe")
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	it, err := scanItem(r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// List filtra por tipo y por búsqueda en código/nombre (ILIKE).
func (r *ItemRepo) List(ctx context.Context, itemTypeID, search string, limit, offset int) ([]*entity.Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+itemColumns+` FROM items
		WHERE ($1 = '' OR item_type_id::text = $1)
		  AND ($2 = '' OR item_code ILIKE '%' || $2 || '%' OR item_name ILIKE '%' || $2 || '%')
		ORDER BY item_code LIMIT NULLIF($3::int, 0) OFFSET $4`, itemTypeID, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

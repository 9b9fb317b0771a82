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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepo {
	return &CategoryRepo{pool: pool}
}

const categoryColumns = `id, category_code, category_name, description, display_order, status, created_at, updated_at`

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Description, &c.DisplayOrder, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO categories (`+categoryColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.Code, c.Name, c.Description, c.DisplayOrder, c.Status, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("el código de categoría ya existe")
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	c, err := scanCategory(r.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// Update reescribe todos los campos editables; el código sigue siendo único.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE categories
		SET category_code = $2, category_name = $3, description = $4, display_order = $5, status = $6, updated_at = $7
		WHERE id = $1`,
		c.ID, c.Code, c.Name, c.Description, c.DisplayOrder, c.Status, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("el código de categoría ya existe")
		}
		if isNotFound(err) {
			return domain.NotFound("categoría")
		}
		return fmt.Errorf("update category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("categoría")
	}
	return nil
}

// Delete deja a la FK de item_types rechazar la baja de una categoría en uso.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Conflict("la categoría tiene tipos de artículo asociados")
		}
		if isNotFound(err) {
			return domain.NotFound("categoría")
		}
		return fmt.Errorf("delete category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("categoría")
	}
	return nil
}

func (r *CategoryRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+categoryColumns+` FROM categories
		WHERE ($1 = '' OR status = $1)
		ORDER BY display_order, category_name LIMIT NULLIF($2::int, 0) OFFSET $3`, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

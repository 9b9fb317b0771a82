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

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación del puerto StoreRepository sobre PostgreSQL.
type StoreRepo struct {
	pool *pgxpool.Pool
}

// NewStoreRepository construye el adaptador de persistencia para tiendas.
func NewStoreRepository(pool *pgxpool.Pool) *StoreRepo {
	return &StoreRepo{pool: pool}
}

const storeColumns = `id, plant_id, store_code, store_name, location, store_type, stock_out_mode, status, created_at, updated_at`

func scanStore(row pgx.Row) (*entity.Store, error) {
	var s entity.Store
	err := row.Scan(&s.ID, &s.PlantID, &s.Code, &s.Name, &s.Location, &s.StoreType,
		&s.StockOutMode, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste una nueva tienda.
func (r *StoreRepo) Create(ctx context.Context, s *entity.Store) error {
	query := `INSERT INTO stores (` + storeColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, query,
		s.ID, s.PlantID, s.Code, s.Name, s.Location, s.StoreType, s.StockOutMode, s.Status, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("el código de tienda ya existe")
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// GetByID obtiene una tienda por ID.
func (r *StoreRepo) GetByID(ctx context.Context, id string) (*entity.Store, error) {
	s, err := scanStore(r.pool.QueryRow(ctx, `SELECT `+storeColumns+` FROM stores WHERE id = $1`, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return s, nil
}

// Update actualiza los datos editables de la tienda.
func (r *StoreRepo) Update(ctx context.Context, s *entity.Store) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE stores SET store_name = $2, location = $3, store_type = $4, stock_out_mode = $5, status = $6, updated_at = $7
		WHERE id = $1`,
		s.ID, s.Name, s.Location, s.StoreType, s.StockOutMode, s.Status, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update store: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.StoreNotFound(s.ID)
	}
	return nil
}

// List lista tiendas, opcionalmente de una planta.
func (r *StoreRepo) List(ctx context.Context, plantID string, limit, offset int) ([]*entity.Store, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+storeColumns+` FROM stores
		WHERE ($1 = '' OR plant_id::text = $1)
		ORDER BY store_code LIMIT NULLIF($2::int, 0) OFFSET $3`, plantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

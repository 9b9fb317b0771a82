package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

var _ repository.PlantRepository = (*PlantRepo)(nil)

// PlantRepo implementación del puerto PlantRepository sobre PostgreSQL.
type PlantRepo struct {
	pool *pgxpool.Pool
}

// NewPlantRepository construye el adaptador de persistencia para plantas.
func NewPlantRepository(pool *pgxpool.Pool) *PlantRepo {
	return &PlantRepo{pool: pool}
}

const plantColumns = `id, plant_code, plant_name, location, status, created_at, updated_at`

// Create persiste una nueva planta.
func (r *PlantRepo) Create(ctx context.Context, p *entity.Plant) error {
	query := `INSERT INTO plants (` + plantColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query, p.ID, p.Code, p.Name, p.Location, p.Status, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("el código de planta ya existe")
		}
		return fmt.Errorf("insert plant: %w", err)
	}
	return nil
}

// GetByID obtiene una planta por ID.
func (r *PlantRepo) GetByID(ctx context.Context, id string) (*entity.Plant, error) {
	var p entity.Plant
	err := r.pool.QueryRow(ctx, `SELECT `+plantColumns+` FROM plants WHERE id = $1`, id).Scan(
		&p.ID, &p.Code, &p.Name, &p.Location, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plant: %w", err)
	}
	return &p, nil
}

// Update actualiza nombre, ubicación y estado.
func (r *PlantRepo) Update(ctx context.Context, p *entity.Plant) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE plants SET plant_name = $2, location = $3, status = $4, updated_at = $5 WHERE id = $1`,
		p.ID, p.Name, p.Location, p.Status, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update plant: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("planta")
	}
	return nil
}

// List lista plantas por código con paginación.
func (r *PlantRepo) List(ctx context.Context, limit, offset int) ([]*entity.Plant, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+plantColumns+` FROM plants ORDER BY plant_code LIMIT NULLIF($1::int, 0) OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}
	defer rows.Close()
	var list []*entity.Plant
	for rows.Next() {
		var p entity.Plant
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Location, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan plant: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

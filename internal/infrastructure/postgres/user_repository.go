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

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `id, username, email, password_hash, name, role, store_ids, status, created_at, updated_at`

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	storeIDs := user.StoreIDs
	if storeIDs == nil {
		storeIDs = []string{}
	}
	_, err := r.pool.Exec(ctx, `INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Name, user.Role, storeIDs, user.Status,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("el usuario ya existe")
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByUsername obtiene un usuario por nombre de usuario.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *UserRepo) findOne(ctx context.Context, query string, arg string) (*entity.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.StoreIDs, &u.Status,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Update reescribe perfil, rol, tiendas, estado y hash.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	storeIDs := user.StoreIDs
	if storeIDs == nil {
		storeIDs = []string{}
	}
	cmd, err := r.pool.Exec(ctx, `
		UPDATE users
		SET username = $2, email = $3, password_hash = $4, name = $5, role = $6, store_ids = $7, status = $8, updated_at = $9
		WHERE id = $1`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Name, user.Role, storeIDs, user.Status, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("el usuario ya existe")
		}
		if isNotFound(err) {
			return domain.NotFound("usuario")
		}
		return fmt.Errorf("update user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("usuario")
	}
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if isNotFound(err) {
			return domain.NotFound("usuario")
		}
		return fmt.Errorf("delete user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("usuario")
	}
	return nil
}

// List filtra por rol, estado y búsqueda (ILIKE en username, nombre y email).
func (r *UserRepo) List(ctx context.Context, f repository.UserFilter) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE ($1 = '' OR role = $1)
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR username ILIKE '%' || $3 || '%' OR name ILIKE '%' || $3 || '%' OR email ILIKE '%' || $3 || '%')
		ORDER BY created_at DESC, username LIMIT NULLIF($4::int, 0) OFFSET $5`,
		f.Role, f.Status, f.Search, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

package repository

import (
	"context"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// PlantRepository define el puerto de persistencia para Plant (DIP).
type PlantRepository interface {
	Create(ctx context.Context, plant *entity.Plant) error
	GetByID(ctx context.Context, id string) (*entity.Plant, error)
	Update(ctx context.Context, plant *entity.Plant) error
	List(ctx context.Context, limit, offset int) ([]*entity.Plant, error)
}

// StoreRepository define el puerto de persistencia para Store.
type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	GetByID(ctx context.Context, id string) (*entity.Store, error)
	Update(ctx context.Context, store *entity.Store) error
	// List filtra por planta si plantID no está vacío.
	List(ctx context.Context, plantID string, limit, offset int) ([]*entity.Store, error)
}

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
	// List ordena por display_order y nombre; status vacío = todas.
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Category, error)
}

// ItemTypeRepository define el puerto del catálogo de tipos de artículo.
type ItemTypeRepository interface {
	Create(ctx context.Context, itemType *entity.ItemType) error
	GetByID(ctx context.Context, id string) (*entity.ItemType, error)
	List(ctx context.Context, limit, offset int) ([]*entity.ItemType, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*entity.ItemType, error)
}

// ItemRepository define el puerto de persistencia para Item.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	List(ctx context.Context, itemTypeID, search string, limit, offset int) ([]*entity.Item, error)
}

// UserFilter filtros del listado de usuarios; los campos vacíos no filtran.
type UserFilter struct {
	Role   string
	Status string
	Search string // username, nombre o email
	Limit  int
	Offset int
}

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter UserFilter) ([]*entity.User, error)
}

package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

var (
	_ repository.PlantRepository    = (*PlantRepo)(nil)
	_ repository.StoreRepository    = (*StoreRepo)(nil)
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.ItemTypeRepository = (*ItemTypeRepo)(nil)
	_ repository.ItemRepository     = (*ItemRepo)(nil)
	_ repository.UserRepository     = (*UserRepo)(nil)
)

// PlantRepo implementa repository.PlantRepository.
type PlantRepo struct{ s *Store }

func NewPlantRepository(s *Store) *PlantRepo { return &PlantRepo{s: s} }

func (r *PlantRepo) Create(_ context.Context, p *entity.Plant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.plants {
		if other.Code == p.Code {
			return domain.Duplicate("el código de planta ya existe")
		}
	}
	r.s.plants[p.ID] = clonePlant(p)
	return nil
}

func (r *PlantRepo) GetByID(_ context.Context, id string) (*entity.Plant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.plants[id]
	if !ok {
		return nil, nil
	}
	return clonePlant(p), nil
}

func (r *PlantRepo) Update(_ context.Context, p *entity.Plant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.plants[p.ID]; !ok {
		return domain.NotFound("planta")
	}
	r.s.plants[p.ID] = clonePlant(p)
	return nil
}

func (r *PlantRepo) List(_ context.Context, limit, offset int) ([]*entity.Plant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Plant, 0, len(r.s.plants))
	for _, p := range r.s.plants {
		list = append(list, clonePlant(p))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	from, to := page(len(list), limit, offset)
	return list[from:to], nil
}

// StoreRepo implementa repository.StoreRepository.
type StoreRepo struct{ s *Store }

func NewStoreRepository(s *Store) *StoreRepo { return &StoreRepo{s: s} }

func (r *StoreRepo) Create(_ context.Context, st *entity.Store) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.stores {
		if other.Code == st.Code {
			return domain.Duplicate("el código de tienda ya existe")
		}
	}
	r.s.stores[st.ID] = cloneStore(st)
	return nil
}

func (r *StoreRepo) GetByID(_ context.Context, id string) (*entity.Store, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st, ok := r.s.stores[id]
	if !ok {
		return nil, nil
	}
	return cloneStore(st), nil
}

func (r *StoreRepo) Update(_ context.Context, st *entity.Store) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.stores[st.ID]; !ok {
		return domain.StoreNotFound(st.ID)
	}
	r.s.stores[st.ID] = cloneStore(st)
	return nil
}

func (r *StoreRepo) List(_ context.Context, plantID string, limit, offset int) ([]*entity.Store, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Store, 0, len(r.s.stores))
	for _, st := range r.s.stores {
		if plantID != "" && st.PlantID != plantID {
			continue
		}
		list = append(list, cloneStore(st))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	from, to := page(len(list), limit, offset)
	return list[from:to], nil
}

// CategoryRepo implementa repository.CategoryRepository.
type CategoryRepo struct{ s *Store }

func NewCategoryRepository(s *Store) *CategoryRepo { return &CategoryRepo{s: s} }

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.categories {
		if other.Code == c.Code {
			return domain.Duplicate("el código de categoría ya existe")
		}
	}
	r.s.categories[c.ID] = cloneCategory(c)
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return cloneCategory(c), nil
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[c.ID]; !ok {
		return domain.NotFound("categoría")
	}
	for id, other := range r.s.categories {
		if id != c.ID && other.Code == c.Code {
			return domain.Duplicate("el código de categoría ya existe")
		}
	}
	r.s.categories[c.ID] = cloneCategory(c)
	return nil
}

// Delete rechaza la baja si algún tipo de artículo apunta a la categoría.
func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return domain.NotFound("categoría")
	}
	for _, t := range r.s.itemTypes {
		if t.CategoryID == id {
			return domain.Conflict("la categoría tiene tipos de artículo asociados")
		}
	}
	delete(r.s.categories, id)
	return nil
}

func (r *CategoryRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		if status != "" && c.Status != status {
			continue
		}
		list = append(list, cloneCategory(c))
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].DisplayOrder != list[j].DisplayOrder {
			return list[i].DisplayOrder < list[j].DisplayOrder
		}
		return list[i].Name < list[j].Name
	})
	from, to := page(len(list), limit, offset)
	return list[from:to], nil
}

// ItemTypeRepo implementa repository.ItemTypeRepository.
type ItemTypeRepo struct{ s *Store }

func NewItemTypeRepository(s *Store) *ItemTypeRepo { return &ItemTypeRepo{s: s} }

func (r *ItemTypeRepo) Create(_ context.Context, t *entity.ItemType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.itemTypes {
		if other.Code == t.Code {
			return domain.Duplicate("el código de tipo ya existe")
		}
	}
	r.s.itemTypes[t.ID] = cloneItemType(t)
	return nil
}

func (r *ItemTypeRepo) GetByID(_ context.Context, id string) (*entity.ItemType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.itemTypes[id]
	if !ok {
		return nil, nil
	}
	return cloneItemType(t), nil
}

func (r *ItemTypeRepo) List(_ context.Context, limit, offset int) ([]*entity.ItemType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.ItemType, 0, len(r.s.itemTypes))
	for _, t := range r.s.itemTypes {
		list = append(list, cloneItemType(t))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	from, to := page(len(list), limit, offset)
	return list[from:to], nil
}

func (r *ItemTypeRepo) ListByCategory(_ context.Context, categoryID string) ([]*entity.ItemType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.ItemType
	for _, t := range r.s.itemTypes {
		if t.CategoryID == categoryID {
			list = append(list, cloneItemType(t))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return list, nil
}

// ItemRepo implementa repository.ItemRepository.
type ItemRepo struct{ s *Store }

func NewItemRepository(s *Store) *ItemRepo { return &ItemRepo{s: s} }

func (r *ItemRepo) Create(_ context.Context, it *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.items {
		if other.Code == it.Code {
			return domain.Duplicate("el código de artículo ya existe")
		}
	}
	r.s.items[it.ID] = cloneItem(it)
	return nil
}

func (r *ItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return cloneItem(it), nil
}

func (r *ItemRepo) List(_ context.Context, itemTypeID, search string, limit, offset int) ([]*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(search))
	list := make([]*entity.Item, 0, len(r.s.items))
	for _, it := range r.s.items {
		if itemTypeID != "" && it.ItemTypeID != itemTypeID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(it.Code), q) && !strings.Contains(strings.ToLower(it.Name), q) {
			continue
		}
		list = append(list, cloneItem(it))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	from, to := page(len(list), limit, offset)
	return list[from:to], nil
}

// UserRepo implementa repository.UserRepository.
type UserRepo struct{ s *Store }

func NewUserRepository(s *Store) *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.users {
		if other.Username == u.Username {
			return domain.Duplicate("el usuario ya existe")
		}
	}
	r.s.users[u.ID] = cloneUser(u)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.NotFound("usuario")
	}
	for id, other := range r.s.users {
		if id != u.ID && other.Username == u.Username {
			return domain.Duplicate("el usuario ya existe")
		}
	}
	r.s.users[u.ID] = cloneUser(u)
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return domain.NotFound("usuario")
	}
	delete(r.s.users, id)
	return nil
}

// List ordena del más reciente al más antiguo.
func (r *UserRepo) List(_ context.Context, f repository.UserFilter) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(f.Search))
	list := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Status != "" && u.Status != f.Status {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(u.Username), q) &&
			!strings.Contains(strings.ToLower(u.Name), q) && !strings.Contains(strings.ToLower(u.Email), q) {
			continue
		}
		list = append(list, cloneUser(u))
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].Username < list[j].Username
	})
	from, to := page(len(list), f.Limit, f.Offset)
	return list[from:to], nil
}

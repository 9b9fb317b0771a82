// Package memory implementa los repositorios sobre un arena en memoria indexado por ID inmutable.
// Se usa con STORAGE_DRIVER=memory y en las pruebas; respeta las mismas reglas que PostgreSQL
// (unicidad, bloqueos por fila, transacciones con commit/rollback).
package memory

import (
	"sync"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu sync.RWMutex

	plants     map[string]*entity.Plant
	stores     map[string]*entity.Store
	categories map[string]*entity.Category
	itemTypes  map[string]*entity.ItemType
	items      map[string]*entity.Item
	variants   map[string]*entity.ItemVariant
	users      map[string]*entity.User
	boxes      map[string]*entity.Box
	boxByCode  map[string]string
	sequences  map[int]int
	inventory  map[entity.InventoryKey]*entity.Inventory

	// transactions es append-only; txIndex apunta a su posición.
	transactions []*entity.StockTransaction
	txIndex      map[string]int

	locks *lockTable
}

// NewStore crea un arena vacío.
func NewStore() *Store {
	return &Store{
		plants:     make(map[string]*entity.Plant),
		stores:     make(map[string]*entity.Store),
		categories: make(map[string]*entity.Category),
		itemTypes:  make(map[string]*entity.ItemType),
		items:      make(map[string]*entity.Item),
		variants:   make(map[string]*entity.ItemVariant),
		users:      make(map[string]*entity.User),
		boxes:      make(map[string]*entity.Box),
		boxByCode:  make(map[string]string),
		sequences:  make(map[int]int),
		inventory:  make(map[entity.InventoryKey]*entity.Inventory),
		txIndex:    make(map[string]int),
		locks:      newLockTable(),
	}
}

func clonePlant(p *entity.Plant) *entity.Plant {
	c := *p
	return &c
}

func cloneStore(s *entity.Store) *entity.Store {
	c := *s
	return &c
}

func cloneCategory(c *entity.Category) *entity.Category {
	out := *c
	return &out
}

func cloneItemType(t *entity.ItemType) *entity.ItemType {
	c := *t
	c.AvailableSizes = append([]string(nil), t.AvailableSizes...)
	c.AvailableColors = append([]string(nil), t.AvailableColors...)
	return &c
}

func cloneItem(i *entity.Item) *entity.Item {
	c := *i
	return &c
}

func cloneVariant(v *entity.ItemVariant) *entity.ItemVariant {
	c := *v
	return &c
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	c.StoreIDs = append([]string(nil), u.StoreIDs...)
	return &c
}

func cloneBox(b *entity.Box) *entity.Box {
	c := *b
	if b.CheckedInAt != nil {
		t := *b.CheckedInAt
		c.CheckedInAt = &t
	}
	c.Contents = append([]entity.BoxContent(nil), b.Contents...)
	return &c
}

func cloneTx(t *entity.StockTransaction) *entity.StockTransaction {
	c := *t
	return &c
}

func cloneInventory(i *entity.Inventory) *entity.Inventory {
	c := *i
	return &c
}

func page(n, limit, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}
	return offset, end
}

package variant_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockroom-api/internal/application/ports"
	"github.com/jhoicas/stockroom-api/internal/application/variant"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/memory"
)

type env struct {
	registry     *variant.Registry
	variants     repository.VariantRepository
	transactions repository.StockTransactionRepository
}

func newEnv(t *testing.T, cache *fakeCache) *env {
	t.Helper()
	s := memory.NewStore()
	ctx := context.Background()
	now := time.Now()
	itemTypes := memory.NewItemTypeRepository(s)
	items := memory.NewItemRepository(s)
	require.NoError(t, itemTypes.Create(ctx, &entity.ItemType{
		ID: "T1", Code: "UNI", Name: "Uniforme",
		HasSize: true, AvailableSizes: []string{"M", "L"},
		HasColor: true, AvailableColors: []string{"RED", "BLUE"},
		Status: entity.StatusActive, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, itemTypes.Create(ctx, &entity.ItemType{
		ID: "T2", Code: "ACC", Name: "Accesorio", Status: entity.StatusActive, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, items.Create(ctx, &entity.Item{ID: "I1", Code: "shirt", Name: "Camisa", ItemTypeID: "T1", Status: entity.StatusActive}))
	require.NoError(t, items.Create(ctx, &entity.Item{ID: "I2", Code: "cap", Name: "Gorra", ItemTypeID: "T2", Status: entity.StatusActive}))

	e := &env{
		variants:     memory.NewVariantRepository(s),
		transactions: memory.NewStockTransactionRepository(s),
	}
	var c ports.VariantCache
	if cache != nil {
		c = cache
	}
	e.registry = variant.NewRegistry(e.variants, items, itemTypes, e.transactions, c)
	return e
}

func TestCreateVariant(t *testing.T) {
	e := newEnv(t, nil)
	v, err := e.registry.CreateVariant(context.Background(), variant.CreateVariantInput{ItemID: "I1", Size: " M ", Color: "RED"})
	require.NoError(t, err)
	assert.Equal(t, "M", v.Size)
	assert.Equal(t, "SHIRT-M-RED", v.SKU)
	assert.Regexp(t, `^INV-[0-9A-F]{12}$`, v.QRCode)
	assert.Equal(t, entity.StatusActive, v.Status)

	capVariant, err := e.registry.CreateVariant(context.Background(), variant.CreateVariantInput{ItemID: "I2", SKU: "CAP-STD"})
	require.NoError(t, err)
	assert.Equal(t, "CAP-STD", capVariant.SKU)
}

func TestCreateVariant_Validaciones(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	_, err := e.registry.CreateVariant(ctx, variant.CreateVariantInput{ItemID: "I1", Size: "M", Color: "RED"})
	require.NoError(t, err)

	cases := []struct {
		name string
		in   variant.CreateVariantInput
		kind domain.Kind
	}{
		{"duplicada activa", variant.CreateVariantInput{ItemID: "I1", Size: "M", Color: "RED"}, domain.KindDuplicateVariant},
		{"talla fuera de lista", variant.CreateVariantInput{ItemID: "I1", Size: "XXL", Color: "RED"}, domain.KindInvalidAttributes},
		{"falta color", variant.CreateVariantInput{ItemID: "I1", Size: "L"}, domain.KindInvalidAttributes},
		{"tipo sin tallas", variant.CreateVariantInput{ItemID: "I2", Size: "M"}, domain.KindInvalidAttributes},
		{"artículo inexistente", variant.CreateVariantInput{ItemID: "I9", Size: "M", Color: "RED"}, domain.KindItemNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.registry.CreateVariant(ctx, tc.in)
			assert.Equal(t, tc.kind, domain.KindOf(err))
		})
	}
}

func TestCreateVariant_ReactivaTrasSoftDelete(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	v, err := e.registry.CreateVariant(ctx, variant.CreateVariantInput{ItemID: "I1", Size: "M", Color: "RED"})
	require.NoError(t, err)
	require.NoError(t, e.registry.DeleteVariant(ctx, v.ID, false))

	again, err := e.registry.CreateVariant(ctx, variant.CreateVariantInput{ItemID: "I1", Size: "M", Color: "RED"})
	require.NoError(t, err, "la combinación se libera al desactivar")
	assert.NotEqual(t, v.QRCode, again.QRCode)
}

func TestCreateVariant_ColisionQR(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	codes := []string{"INV-AAAAAAAAAAAA", "INV-AAAAAAAAAAAA", "INV-BBBBBBBBBBBB"}
	calls := 0
	e.registry.WithCodeGenerator(func() string {
		c := codes[calls]
		calls++
		return c
	})

	first, err := e.registry.CreateVariant(ctx, variant.CreateVariantInput{ItemID: "I1", Size: "M", Color: "RED"})
	require.NoError(t, err)
	second, err := e.registry.CreateVariant(ctx, variant.CreateVariantInput{ItemID: "I1", Size: "L", Color: "RED"})
	require.NoError(t, err)

	assert.Equal(t, "INV-AAAAAAAAAAAA", first.QRCode)
	assert.Equal(t, "INV-BBBBBBBBBBBB", second.QRCode, "se regenera tras la colisión")
	assert.Equal(t, 3, calls)
}

func TestCreateVariant_ColisionPersistente(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	e.registry.WithCodeGenerator(func() string { return "INV-CCCCCCCCCCCC" })
	_, err := e.registry.CreateVariant(ctx, variant.CreateVariantInput{ItemID: "I1", Size: "M", Color: "RED"})
	require.NoError(t, err)

	_, err = e.registry.CreateVariant(ctx, variant.CreateVariantInput{ItemID: "I1", Size: "L", Color: "RED"})
	require.Error(t, err)
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
}

func TestDeleteVariant(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	used, err := e.registry.CreateVariant(ctx, variant.CreateVariantInput{ItemID: "I1", Size: "M", Color: "RED"})
	require.NoError(t, err)
	unused, err := e.registry.CreateVariant(ctx, variant.CreateVariantInput{ItemID: "I1", Size: "L", Color: "BLUE"})
	require.NoError(t, err)
	require.NoError(t, e.transactions.Create(ctx, &entity.StockTransaction{
		ID: "tx-1", Type: entity.TxTypeStockIn, VariantID: used.ID, StoreID: "S-07", Quantity: 1, CreatedAt: time.Now(),
	}))

	err = e.registry.DeleteVariant(ctx, used.ID, true)
	assert.Equal(t, domain.KindVariantInUse, domain.KindOf(err))

	require.NoError(t, e.registry.DeleteVariant(ctx, used.ID, false))
	got, err := e.registry.GetVariant(ctx, used.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInactive, got.Status, "el soft delete conserva la fila")

	require.NoError(t, e.registry.DeleteVariant(ctx, unused.ID, true))
	_, err = e.registry.GetVariant(ctx, unused.ID)
	assert.Equal(t, domain.KindVariantNotFound, domain.KindOf(err))

	err = e.registry.DeleteVariant(ctx, "nope", false)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestResolveByQRCode(t *testing.T) {
	cache := newFakeCache()
	e := newEnv(t, cache)
	ctx := context.Background()
	v, err := e.registry.CreateVariant(ctx, variant.CreateVariantInput{ItemID: "I1", Size: "M", Color: "RED"})
	require.NoError(t, err)

	got, err := e.registry.ResolveByQRCode(ctx, " "+v.QRCode+" ")
	require.NoError(t, err)
	assert.Equal(t, v.ID, got.ID)
	assert.Contains(t, cache.items, v.QRCode, "la resolución queda en cache")

	require.NoError(t, e.registry.DeleteVariant(ctx, v.ID, false))
	assert.NotContains(t, cache.items, v.QRCode, "desactivar invalida el cache")

	_, err = e.registry.ResolveByQRCode(ctx, v.QRCode)
	assert.Equal(t, domain.KindVariantNotFound, domain.KindOf(err))

	_, err = e.registry.ResolveByQRCode(ctx, "INV-000000000000")
	assert.Equal(t, domain.KindVariantNotFound, domain.KindOf(err))
}

func TestResolveByQRCode_CacheCaido(t *testing.T) {
	cache := newFakeCache()
	cache.fail = true
	e := newEnv(t, cache)
	ctx := context.Background()
	v, err := e.registry.CreateVariant(ctx, variant.CreateVariantInput{ItemID: "I1", Size: "M", Color: "RED"})
	require.NoError(t, err)

	got, err := e.registry.ResolveByQRCode(ctx, v.QRCode)
	require.NoError(t, err, "un fallo del cache no impide resolver")
	assert.Equal(t, v.ID, got.ID)
}

func TestListByItem(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	a, err := e.registry.CreateVariant(ctx, variant.CreateVariantInput{ItemID: "I1", Size: "M", Color: "RED"})
	require.NoError(t, err)
	_, err = e.registry.CreateVariant(ctx, variant.CreateVariantInput{ItemID: "I1", Size: "L", Color: "RED"})
	require.NoError(t, err)
	require.NoError(t, e.registry.DeleteVariant(ctx, a.ID, false))

	active, err := e.registry.ListByItem(ctx, "I1", false)
	require.NoError(t, err)
	assert.Len(t, active, 1)
	all, err := e.registry.ListByItem(ctx, "I1", true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = e.registry.ListByItem(ctx, "I9", false)
	assert.Equal(t, domain.KindItemNotFound, domain.KindOf(err))
}

type fakeCache struct {
	items map[string]*entity.ItemVariant
	fail  bool
}

func newFakeCache() *fakeCache { return &fakeCache{items: map[string]*entity.ItemVariant{}} }

var errCacheDown = errors.New("cache caído")

func (c *fakeCache) Get(_ context.Context, code string) (*entity.ItemVariant, bool, error) {
	if c.fail {
		return nil, false, errCacheDown
	}
	v, ok := c.items[code]
	return v, ok, nil
}

func (c *fakeCache) Set(_ context.Context, v *entity.ItemVariant) error {
	if c.fail {
		return errCacheDown
	}
	c.items[v.QRCode] = v
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, code string) error {
	if c.fail {
		return errCacheDown
	}
	delete(c.items, code)
	return nil
}

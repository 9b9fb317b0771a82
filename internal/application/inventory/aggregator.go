package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	ledgermath "github.com/jhoicas/stockroom-api/internal/domain/inventory"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

// Aggregator expone lecturas del inventario derivado. Las escrituras solo ocurren
// vía applyDelta, dentro de la transacción del libro.
type Aggregator struct {
	inventory        repository.InventoryRepository
	transactions     repository.StockTransactionRepository
	variants         repository.VariantRepository
	stores           repository.StoreRepository
	items            repository.ItemRepository
	itemTypes        repository.ItemTypeRepository
	defaultThreshold int64
}

// NewAggregator construye el agregador. defaultThreshold se usa cuando ListLowStock recibe umbral <= 0.
func NewAggregator(
	inventory repository.InventoryRepository,
	transactions repository.StockTransactionRepository,
	variants repository.VariantRepository,
	stores repository.StoreRepository,
	defaultThreshold int64,
) *Aggregator {
	if defaultThreshold <= 0 {
		defaultThreshold = 10
	}
	return &Aggregator{
		inventory:        inventory,
		transactions:     transactions,
		variants:         variants,
		stores:           stores,
		defaultThreshold: defaultThreshold,
	}
}

// WithTypeMinimums hace que ListLowStock sin umbral explícito use el min_stock_level del
// tipo de artículo de cada variante, y el umbral por defecto cuando el tipo no lo define.
func (a *Aggregator) WithTypeMinimums(items repository.ItemRepository, itemTypes repository.ItemTypeRepository) *Aggregator {
	a.items = items
	a.itemTypes = itemTypes
	return a
}

// StockLevel cantidad de una variante en una tienda.
type StockLevel struct {
	Variant   *entity.ItemVariant
	StoreID   string
	Quantity  int64
	Threshold int64 // solo en ListLowStock
	UpdatedAt time.Time
}

// Discrepancy clave cuyo agregado no coincide con el libro.
type Discrepancy struct {
	VariantID string
	StoreID   string
	Stored    int64
	Replayed  int64
}

// GetQuantity devuelve la cantidad actual (0 si no hay fila).
func (a *Aggregator) GetQuantity(ctx context.Context, variantID, storeID string) (int64, error) {
	if variantID == "" || storeID == "" {
		return 0, domain.InvalidAttributes("variant_id y store_id son requeridos")
	}
	inv, err := a.inventory.Get(ctx, variantID, storeID)
	if err != nil {
		return 0, err
	}
	return inv.Quantity, nil
}

// ListLowStock filas con cantidad < umbral de variantes activas, ordenadas por cantidad ascendente.
// Con threshold <= 0 el umbral sale del tipo de artículo (si WithTypeMinimums está configurado)
// o del valor por defecto.
func (a *Aggregator) ListLowStock(ctx context.Context, storeID string, threshold int64) ([]StockLevel, error) {
	if err := a.requireStore(ctx, storeID); err != nil {
		return nil, err
	}
	var levels []StockLevel
	var err error
	if threshold <= 0 && a.itemTypes != nil {
		levels, err = a.belowTypeMinimum(ctx, storeID)
	} else {
		if threshold <= 0 {
			threshold = a.defaultThreshold
		}
		levels, err = a.belowFixed(ctx, storeID, threshold)
	}
	if err != nil {
		return nil, err
	}
	sort.Slice(levels, func(i, j int) bool {
		if levels[i].Quantity != levels[j].Quantity {
			return levels[i].Quantity < levels[j].Quantity
		}
		return levels[i].Variant.ID < levels[j].Variant.ID
	})
	return levels, nil
}

func (a *Aggregator) belowFixed(ctx context.Context, storeID string, threshold int64) ([]StockLevel, error) {
	rows, err := a.inventory.ListBelow(ctx, storeID, threshold)
	if err != nil {
		return nil, err
	}
	levels, err := a.withVariants(ctx, rows, true)
	if err != nil {
		return nil, err
	}
	for i := range levels {
		levels[i].Threshold = threshold
	}
	return levels, nil
}

func (a *Aggregator) belowTypeMinimum(ctx context.Context, storeID string) ([]StockLevel, error) {
	rows, err := a.inventory.ListAll(ctx, storeID)
	if err != nil {
		return nil, err
	}
	all, err := a.withVariants(ctx, rows, true)
	if err != nil {
		return nil, err
	}
	byItem := make(map[string]int64)
	out := make([]StockLevel, 0, len(all))
	for _, l := range all {
		limit, ok := byItem[l.Variant.ItemID]
		if !ok {
			if limit, err = a.typeMinimum(ctx, l.Variant.ItemID); err != nil {
				return nil, err
			}
			byItem[l.Variant.ItemID] = limit
		}
		if l.Quantity < limit {
			l.Threshold = limit
			out = append(out, l)
		}
	}
	return out, nil
}

// typeMinimum umbral efectivo de un artículo: min_stock_level de su tipo o el valor por defecto.
func (a *Aggregator) typeMinimum(ctx context.Context, itemID string) (int64, error) {
	if a.items == nil {
		return a.defaultThreshold, nil
	}
	item, err := a.items.GetByID(ctx, itemID)
	if err != nil || item == nil {
		return a.defaultThreshold, err
	}
	t, err := a.itemTypes.GetByID(ctx, item.ItemTypeID)
	if err != nil || t == nil {
		return a.defaultThreshold, err
	}
	if t.MinStockLevel > 0 {
		return t.MinStockLevel, nil
	}
	return a.defaultThreshold, nil
}

// ListStoreInventory todas las filas de inventario de una tienda.
func (a *Aggregator) ListStoreInventory(ctx context.Context, storeID string) ([]StockLevel, error) {
	if err := a.requireStore(ctx, storeID); err != nil {
		return nil, err
	}
	rows, err := a.inventory.ListAll(ctx, storeID)
	if err != nil {
		return nil, err
	}
	levels, err := a.withVariants(ctx, rows, false)
	if err != nil {
		return nil, err
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].Variant.ID < levels[j].Variant.ID })
	return levels, nil
}

// Reconcile reproduce el libro y devuelve las claves cuyo agregado difiere de Σentradas − Σsalidas.
// storeID vacío = todas las tiendas.
func (a *Aggregator) Reconcile(ctx context.Context, storeID string) ([]Discrepancy, error) {
	replayed, err := a.transactions.SumByKey(ctx, storeID)
	if err != nil {
		return nil, err
	}
	rows, err := a.inventory.ListAll(ctx, storeID)
	if err != nil {
		return nil, err
	}
	stored := make(map[entity.InventoryKey]int64, len(rows))
	for _, r := range rows {
		stored[entity.InventoryKey{VariantID: r.VariantID, StoreID: r.StoreID}] = r.Quantity
	}
	keys := make(map[entity.InventoryKey]struct{}, len(stored)+len(replayed))
	for k := range stored {
		keys[k] = struct{}{}
	}
	for k := range replayed {
		keys[k] = struct{}{}
	}
	out := make([]Discrepancy, 0)
	for k := range keys {
		if stored[k] != replayed[k] {
			out = append(out, Discrepancy{VariantID: k.VariantID, StoreID: k.StoreID, Stored: stored[k], Replayed: replayed[k]})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return entity.InventoryKey{VariantID: out[i].VariantID, StoreID: out[i].StoreID}.
			Less(entity.InventoryKey{VariantID: out[j].VariantID, StoreID: out[j].StoreID})
	})
	return out, nil
}

func (a *Aggregator) requireStore(ctx context.Context, storeID string) error {
	if storeID == "" {
		return domain.StoreNotFound(storeID)
	}
	s, err := a.stores.GetByID(ctx, storeID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.StoreNotFound(storeID)
	}
	return nil
}

func (a *Aggregator) withVariants(ctx context.Context, rows []*entity.Inventory, activeOnly bool) ([]StockLevel, error) {
	levels := make([]StockLevel, 0, len(rows))
	for _, r := range rows {
		v, err := a.variants.GetByID(ctx, r.VariantID)
		if err != nil {
			return nil, err
		}
		if v == nil || (activeOnly && !v.IsActive()) {
			continue
		}
		levels = append(levels, StockLevel{Variant: v, StoreID: r.StoreID, Quantity: r.Quantity, UpdatedAt: r.UpdatedAt})
	}
	return levels, nil
}

// applyDelta bloquea la fila (variante, tienda), aplica delta y persiste. Si el resultado
// fuese negativo devuelve InsufficientStock antes de escribir nada.
// Solo se invoca desde el libro, dentro de su transacción.
func applyDelta(
	ctx context.Context,
	invRepo repository.InventoryRepository,
	variantID, storeID string,
	delta int64,
	now time.Time,
) (*entity.Inventory, error) {
	inv, err := invRepo.LockForUpdate(ctx, variantID, storeID)
	if err != nil {
		return nil, err
	}
	if ledgermath.Overflows(inv.Quantity, delta) {
		return nil, domain.InvalidQuantity(fmt.Sprintf("la cantidad excede el máximo admitido para %s en %s", variantID, storeID))
	}
	next, ok := ledgermath.ApplyDelta(inv.Quantity, delta)
	if !ok {
		return nil, domain.InsufficientStock(variantID, storeID, -delta, inv.Quantity)
	}
	inv.Quantity = next
	inv.UpdatedAt = now
	if err := invRepo.Upsert(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

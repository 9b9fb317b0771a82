// Package alerts calcula avisos de stock bajo, agotado y cajas pendientes de check-in
// a partir del inventario derivado y de la recepción. No persiste notificaciones.
package alerts

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stockroom-api/internal/application/inventory"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

// Tipos de aviso de stock.
const (
	KindOutOfStock = "out_of_stock"
	KindLowStock   = "low_stock"
)

// LowStockLister lo implementa inventory.Aggregator.
type LowStockLister interface {
	ListLowStock(ctx context.Context, storeID string, threshold int64) ([]inventory.StockLevel, error)
}

// StockAlert una variante agotada o bajo su umbral en una tienda.
type StockAlert struct {
	Kind      string
	StoreID   string
	StoreName string
	Variant   *entity.ItemVariant
	Quantity  int64
	Threshold int64
}

// PendingCheckin resumen de cajas recibidas que aún no entran al inventario.
type PendingCheckin struct {
	Count          int
	BoxIDs         []string
	BoxCodes       []string
	OldestReceived time.Time
}

// UseCase genera los avisos.
type UseCase struct {
	lowStock    LowStockLister
	stores      repository.StoreRepository
	boxes       repository.BoxRepository
	concurrency int
}

// NewUseCase construye el caso de uso. concurrency acota las tiendas revisadas a la vez.
func NewUseCase(lowStock LowStockLister, stores repository.StoreRepository, boxes repository.BoxRepository, concurrency int) *UseCase {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &UseCase{lowStock: lowStock, stores: stores, boxes: boxes, concurrency: concurrency}
}

// StockAlerts avisos de una tienda, o de todas las tiendas activas visibles para el actor si
// storeID está vacío. Los agotados van primero; luego por cantidad ascendente.
func (uc *UseCase) StockAlerts(ctx context.Context, actor entity.Actor, storeID string) ([]StockAlert, error) {
	stores, err := uc.scope(ctx, actor, storeID)
	if err != nil {
		return nil, err
	}

	var (
		mu  sync.Mutex
		out []StockAlert
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)
	for _, st := range stores {
		st := st
		g.Go(func() error {
			levels, err := uc.lowStock.ListLowStock(gctx, st.ID, 0)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			for _, l := range levels {
				kind := KindLowStock
				if l.Quantity == 0 {
					kind = KindOutOfStock
				}
				out = append(out, StockAlert{
					Kind: kind, StoreID: st.ID, StoreName: st.Name,
					Variant: l.Variant, Quantity: l.Quantity, Threshold: l.Threshold,
				})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if (a.Kind == KindOutOfStock) != (b.Kind == KindOutOfStock) {
			return a.Kind == KindOutOfStock
		}
		if a.Quantity != b.Quantity {
			return a.Quantity < b.Quantity
		}
		if a.StoreID != b.StoreID {
			return a.StoreID < b.StoreID
		}
		return a.Variant.ID < b.Variant.ID
	})
	log.Debug().Str("actor", actor.Username).Int("stores", len(stores)).Int("alerts", len(out)).Msg("avisos de stock calculados")
	return out, nil
}

// PendingCheckins resume las cajas en pending_checkin. Aún no tienen tienda, así que no se filtran por actor.
func (uc *UseCase) PendingCheckins(ctx context.Context) (*PendingCheckin, error) {
	boxes, err := uc.boxes.List(ctx, repository.BoxFilter{Status: entity.BoxStatusPendingCheckin})
	if err != nil {
		return nil, err
	}
	out := &PendingCheckin{Count: len(boxes), BoxIDs: make([]string, 0, len(boxes)), BoxCodes: make([]string, 0, len(boxes))}
	for _, b := range boxes {
		out.BoxIDs = append(out.BoxIDs, b.ID)
		out.BoxCodes = append(out.BoxCodes, b.Code)
		if out.OldestReceived.IsZero() || b.ReceivedDate.Before(out.OldestReceived) {
			out.OldestReceived = b.ReceivedDate
		}
	}
	return out, nil
}

// scope tiendas a revisar. Un storekeeper solo ve las asignadas; el resto, todas.
func (uc *UseCase) scope(ctx context.Context, actor entity.Actor, storeID string) ([]*entity.Store, error) {
	if storeID != "" {
		if actor.Role == entity.RoleStorekeeper && !actor.CanActOnStore(storeID) {
			return nil, domain.StoreForbidden(storeID)
		}
		st, err := uc.stores.GetByID(ctx, storeID)
		if err != nil {
			return nil, err
		}
		if st == nil {
			return nil, domain.StoreNotFound(storeID)
		}
		return []*entity.Store{st}, nil
	}
	all, err := uc.stores.List(ctx, "", 0, 0)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Store, 0, len(all))
	for _, st := range all {
		if st.Status != entity.StatusActive {
			continue
		}
		if actor.Role == entity.RoleStorekeeper && !actor.CanActOnStore(st.ID) {
			continue
		}
		out = append(out, st)
	}
	return out, nil
}

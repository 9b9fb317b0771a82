package inventory

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// Estados de una línea de operación masiva.
const (
	LineCommitted = "committed"
	LineFailed    = "failed"
)

// BulkLine una línea de la solicitud masiva.
type BulkLine struct {
	VariantID string
	Quantity  int64
}

// LineResult resultado de una línea: movimiento(s) confirmados o el error plano.
type LineResult struct {
	Index      int
	VariantID  string
	Quantity   int64
	Status     string
	Tx         *entity.StockTransaction // stock_out o transfer_out
	TransferIn *entity.StockTransaction
	Err        *domain.Error
}

// BulkResult resultado por línea, en el mismo orden de la solicitud.
type BulkResult struct {
	Lines     []LineResult
	Committed int
	Failed    int
}

// BulkCoordinator ejecuta salidas y traslados masivos con aislamiento por línea:
// cada línea es su propia transacción y nunca arrastra a las demás.
type BulkCoordinator struct {
	ledger      *Ledger
	concurrency int
}

// NewBulkCoordinator construye el coordinador. concurrency limita las líneas en paralelo.
func NewBulkCoordinator(ledger *Ledger, concurrency int) *BulkCoordinator {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &BulkCoordinator{ledger: ledger, concurrency: concurrency}
}

// BulkStockOut aplica PostStockOut a cada línea de forma independiente.
func (b *BulkCoordinator) BulkStockOut(ctx context.Context, actor entity.Actor, storeID string, lines []BulkLine, meta Meta) (*BulkResult, error) {
	if len(lines) == 0 {
		return nil, domain.InvalidQuantity("se requiere al menos una línea")
	}
	if meta.ReferenceType == "" {
		meta.ReferenceType = entity.ReferenceTypeBulk
	}
	start := time.Now()
	res := b.run(lines, func(l BulkLine, r *LineResult) error {
		t, err := b.ledger.PostStockOut(ctx, StockOutInput{
			Actor:     actor,
			VariantID: l.VariantID,
			StoreID:   storeID,
			Quantity:  l.Quantity,
			Meta:      meta,
		})
		r.Tx = t
		return err
	})
	log.Info().
		Str("store_id", storeID).
		Int("lines", len(lines)).
		Int("committed", res.Committed).
		Int("failed", res.Failed).
		Dur("elapsed", time.Since(start)).
		Msg("salida masiva procesada")
	return res, nil
}

// BulkTransfer aplica PostTransfer a cada línea de forma independiente.
func (b *BulkCoordinator) BulkTransfer(ctx context.Context, actor entity.Actor, fromStoreID, toStoreID string, lines []BulkLine, meta Meta) (*BulkResult, error) {
	if len(lines) == 0 {
		return nil, domain.InvalidQuantity("se requiere al menos una línea")
	}
	if fromStoreID == toStoreID {
		return nil, domain.InvalidAttributes("la tienda origen y destino deben ser distintas")
	}
	start := time.Now()
	res := b.run(lines, func(l BulkLine, r *LineResult) error {
		o, i, err := b.ledger.PostTransfer(ctx, TransferInput{
			Actor:       actor,
			VariantID:   l.VariantID,
			FromStoreID: fromStoreID,
			ToStoreID:   toStoreID,
			Quantity:    l.Quantity,
			Meta:        meta,
		})
		r.Tx, r.TransferIn = o, i
		return err
	})
	log.Info().
		Str("from_store_id", fromStoreID).
		Str("to_store_id", toStoreID).
		Int("lines", len(lines)).
		Int("committed", res.Committed).
		Int("failed", res.Failed).
		Dur("elapsed", time.Since(start)).
		Msg("traslado masivo procesado")
	return res, nil
}

// run ejecuta cada línea en paralelo (con límite). Las goroutines nunca devuelven error
// al grupo: el fallo queda en su LineResult.
func (b *BulkCoordinator) run(lines []BulkLine, do func(BulkLine, *LineResult) error) *BulkResult {
	results := make([]LineResult, len(lines))
	var g errgroup.Group
	g.SetLimit(b.concurrency)
	for i, l := range lines {
		i, l := i, l
		results[i] = LineResult{Index: i, VariantID: l.VariantID, Quantity: l.Quantity}
		g.Go(func() error {
			r := &results[i]
			if err := do(l, r); err != nil {
				if domain.KindOf(err) == domain.KindInternal {
					log.Error().Err(err).Int("line", i).Str("variant_id", l.VariantID).Msg("línea masiva fallida")
				}
				r.Status = LineFailed
				r.Err = domain.AsError(err)
				r.Tx, r.TransferIn = nil, nil
				return nil
			}
			r.Status = LineCommitted
			return nil
		})
	}
	_ = g.Wait()

	out := &BulkResult{Lines: results}
	for _, r := range results {
		if r.Status == LineCommitted {
			out.Committed++
		} else {
			out.Failed++
		}
	}
	return out
}

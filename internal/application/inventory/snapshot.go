package inventory

import (
	"context"
	"errors"

	"github.com/jhoicas/stockroom-api/internal/application/ports"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

// SnapshotUseCase exporta la foto de inventario de una tienda a hoja de cálculo.
type SnapshotUseCase struct {
	aggregator *Aggregator
	stores     repository.StoreRepository
	exporter   ports.SnapshotExporter
}

// NewSnapshotUseCase construye el caso de uso de exportación.
func NewSnapshotUseCase(aggregator *Aggregator, stores repository.StoreRepository, exporter ports.SnapshotExporter) *SnapshotUseCase {
	return &SnapshotUseCase{aggregator: aggregator, stores: stores, exporter: exporter}
}

// Export devuelve el archivo y el nombre sugerido.
func (uc *SnapshotUseCase) Export(ctx context.Context, storeID string) ([]byte, string, error) {
	if uc.exporter == nil {
		return nil, "", errors.New("exportador no configurado")
	}
	store, err := uc.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, "", err
	}
	if store == nil {
		return nil, "", domain.StoreNotFound(storeID)
	}
	levels, err := uc.aggregator.ListStoreInventory(ctx, storeID)
	if err != nil {
		return nil, "", err
	}
	rows := make([]ports.SnapshotRow, 0, len(levels))
	for _, l := range levels {
		rows = append(rows, ports.SnapshotRow{
			VariantID: l.Variant.ID,
			SKU:       l.Variant.SKU,
			QRCode:    l.Variant.QRCode,
			Size:      l.Variant.Size,
			Color:     l.Variant.Color,
			Status:    l.Variant.Status,
			Quantity:  l.Quantity,
			UpdatedAt: l.UpdatedAt,
		})
	}
	data, err := uc.exporter.ExportInventory(store.Name, rows)
	if err != nil {
		return nil, "", err
	}
	return data, "inventario_" + store.Code + ".xlsx", nil
}

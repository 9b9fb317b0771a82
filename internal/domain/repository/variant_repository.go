package repository

import (
	"context"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// VariantRepository define el puerto de persistencia para ItemVariant.
// GetByID devuelve la variante aunque esté inactiva (los movimientos históricos la referencian).
type VariantRepository interface {
	// Create devuelve ErrQRCodeTaken si el QR ya existe y un error de dominio
	// DuplicateVariant si ya hay una variante activa con el mismo (item, talla, color).
	Create(ctx context.Context, variant *entity.ItemVariant) error
	GetByID(ctx context.Context, id string) (*entity.ItemVariant, error)
	GetByQRCode(ctx context.Context, code string) (*entity.ItemVariant, error)
	FindActive(ctx context.Context, itemID, size, color string) (*entity.ItemVariant, error)
	ListByItem(ctx context.Context, itemID string, includeInactive bool) ([]*entity.ItemVariant, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

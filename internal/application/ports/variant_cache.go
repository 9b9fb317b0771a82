package ports

import (
	"context"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// VariantCache cache de resolución QR -> variante. Solo almacena variantes activas.
// Un fallo del cache nunca debe impedir la resolución contra el repositorio.
type VariantCache interface {
	Get(ctx context.Context, qrCode string) (*entity.ItemVariant, bool, error)
	Set(ctx context.Context, variant *entity.ItemVariant) error
	Invalidate(ctx context.Context, qrCode string) error
}

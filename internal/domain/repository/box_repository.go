package repository

import (
	"context"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// BoxFilter filtros para listar cajas.
type BoxFilter struct {
	Status  string
	StoreID string
	Search  string // código, proveedor o PO
	Limit   int
	Offset  int
}

// BoxRepository define el puerto de persistencia para Box y sus líneas.
type BoxRepository interface {
	// Create persiste la caja con sus líneas. Código repetido -> DuplicateBoxCode.
	Create(ctx context.Context, box *entity.Box) error
	GetByID(ctx context.Context, id string) (*entity.Box, error)
	// GetForUpdate bloquea la caja hasta el fin de la transacción (serializa check-in).
	GetForUpdate(ctx context.Context, id string) (*entity.Box, error)
	GetByCode(ctx context.Context, code string) (*entity.Box, error)
	// MarkCheckedIn aplica la transición pending_checkin -> checked_in.
	MarkCheckedIn(ctx context.Context, box *entity.Box) error
	List(ctx context.Context, filter BoxFilter) ([]*entity.Box, error)
	// NextSequence devuelve el siguiente consecutivo del año para BOX-YYYY-NNNN.
	NextSequence(ctx context.Context, year int) (int, error)
}

package inventory

import (
	"context"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// ScanStockOutInput salida disparada al escanear la etiqueta QR de una prenda.
type ScanStockOutInput struct {
	Actor    entity.Actor
	QRCode   string
	StoreID  string
	Quantity int64 // 0 equivale a una unidad
	Reason   string
	Notes    string
}

// Scanner traduce escaneos de QR a movimientos del libro.
type Scanner struct {
	ledger   *Ledger
	resolver QRResolver
}

// NewScanner construye el caso de uso de escaneo.
func NewScanner(ledger *Ledger, resolver QRResolver) *Scanner {
	return &Scanner{ledger: ledger, resolver: resolver}
}

// ScanStockOut resuelve el QR y registra la salida con referencia scan y el código como número.
func (s *Scanner) ScanStockOut(ctx context.Context, in ScanStockOutInput) (*entity.StockTransaction, error) {
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Quantity < 0 {
		return nil, domain.InvalidQuantity("la cantidad debe ser mayor a cero")
	}
	if !in.Actor.CanActOnStore(in.StoreID) {
		return nil, domain.StoreForbidden(in.StoreID)
	}
	v, err := s.resolver.ResolveByQRCode(ctx, in.QRCode)
	if err != nil {
		return nil, err
	}
	return s.ledger.PostStockOut(ctx, StockOutInput{
		Actor:     in.Actor,
		VariantID: v.ID,
		StoreID:   in.StoreID,
		Quantity:  in.Quantity,
		Meta: Meta{
			ReferenceType:   entity.ReferenceTypeScan,
			ReferenceNumber: v.QRCode,
			Reason:          in.Reason,
			Notes:           in.Notes,
		},
	})
}

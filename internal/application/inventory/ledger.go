package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

// Ledger es el libro de stock: registra entradas, salidas y traslados como movimientos
// inmutables y actualiza el inventario dentro de la misma transacción.
type Ledger struct {
	txRunner     TxRunner
	variants     repository.VariantRepository
	stores       repository.StoreRepository
	transactions repository.StockTransactionRepository
	now          func() time.Time
}

// NewLedger construye el libro de stock.
func NewLedger(
	txRunner TxRunner,
	variants repository.VariantRepository,
	stores repository.StoreRepository,
	transactions repository.StockTransactionRepository,
) *Ledger {
	return &Ledger{
		txRunner:     txRunner,
		variants:     variants,
		stores:       stores,
		transactions: transactions,
		now:          time.Now,
	}
}

// Meta datos de trazabilidad de un movimiento.
type Meta struct {
	ReferenceType   string
	ReferenceNumber string
	Reason          string
	Notes           string
}

// StockInInput entrada para registrar una entrada de stock.
type StockInInput struct {
	Actor     entity.Actor
	VariantID string
	StoreID   string
	Quantity  int64
	BoxID     string
	Meta
}

// StockOutInput entrada para registrar una salida de stock.
type StockOutInput struct {
	Actor     entity.Actor
	VariantID string
	StoreID   string
	Quantity  int64
	Meta
}

// TransferInput entrada para un traslado entre tiendas.
type TransferInput struct {
	Actor       entity.Actor
	VariantID   string
	FromStoreID string
	ToStoreID   string
	Quantity    int64
	Meta
}

// PostStockIn registra una entrada. Requiere variante y tienda activas.
func (l *Ledger) PostStockIn(ctx context.Context, in StockInInput) (*entity.StockTransaction, error) {
	if in.Quantity <= 0 {
		return nil, domain.InvalidQuantity("la cantidad debe ser mayor a cero")
	}
	if !in.Actor.CanActOnStore(in.StoreID) {
		return nil, domain.StoreForbidden(in.StoreID)
	}
	if _, err := l.activeVariant(ctx, in.VariantID); err != nil {
		return nil, err
	}
	if _, err := l.activeStore(ctx, in.StoreID); err != nil {
		return nil, err
	}

	var out *entity.StockTransaction
	err := l.txRunner.Run(ctx, func(
		txnRepo repository.StockTransactionRepository,
		invRepo repository.InventoryRepository,
		_ repository.BoxRepository,
	) error {
		t, err := l.StockInTx(ctx, txnRepo, invRepo, in)
		if err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// StockInTx registra una entrada usando los repositorios de la transacción del caller.
// No valida variante ni tienda: el caller (check-in de cajas) ya lo hizo dentro de su tx.
func (l *Ledger) StockInTx(
	ctx context.Context,
	txnRepo repository.StockTransactionRepository,
	invRepo repository.InventoryRepository,
	in StockInInput,
) (*entity.StockTransaction, error) {
	if in.Quantity <= 0 {
		return nil, domain.InvalidQuantity("la cantidad debe ser mayor a cero")
	}
	now := l.now()
	if _, err := applyDelta(ctx, invRepo, in.VariantID, in.StoreID, in.Quantity, now); err != nil {
		return nil, err
	}
	refType := in.ReferenceType
	if refType == "" {
		refType = entity.ReferenceTypeManual
		if in.BoxID != "" {
			refType = entity.ReferenceTypeBox
		}
	}
	t := &entity.StockTransaction{
		ID:              uuid.New().String(),
		Type:            entity.TxTypeStockIn,
		VariantID:       in.VariantID,
		StoreID:         in.StoreID,
		Quantity:        in.Quantity,
		BoxID:           in.BoxID,
		ReferenceType:   refType,
		ReferenceNumber: in.ReferenceNumber,
		Reason:          in.Reason,
		Notes:           in.Notes,
		ActorID:         in.Actor.UserID,
		ActorName:       in.Actor.Username,
		CreatedAt:       now,
	}
	if err := txnRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// PostStockOut registra una salida. Falla con InsufficientStock si la cantidad actual
// es menor a la solicitada; el inventario queda intacto en ese caso.
// Se permite sobre variantes inactivas para poder agotar el remanente.
func (l *Ledger) PostStockOut(ctx context.Context, in StockOutInput) (*entity.StockTransaction, error) {
	if in.Quantity <= 0 {
		return nil, domain.InvalidQuantity("la cantidad debe ser mayor a cero")
	}
	if !in.Actor.CanActOnStore(in.StoreID) {
		return nil, domain.StoreForbidden(in.StoreID)
	}
	if _, err := l.existingVariant(ctx, in.VariantID); err != nil {
		return nil, err
	}
	if _, err := l.existingStore(ctx, in.StoreID); err != nil {
		return nil, err
	}

	var out *entity.StockTransaction
	err := l.txRunner.Run(ctx, func(
		txnRepo repository.StockTransactionRepository,
		invRepo repository.InventoryRepository,
		_ repository.BoxRepository,
	) error {
		now := l.now()
		if _, err := applyDelta(ctx, invRepo, in.VariantID, in.StoreID, -in.Quantity, now); err != nil {
			return err
		}
		refType := in.ReferenceType
		if refType == "" {
			refType = entity.ReferenceTypeManual
		}
		t := &entity.StockTransaction{
			ID:              uuid.New().String(),
			Type:            entity.TxTypeStockOut,
			VariantID:       in.VariantID,
			StoreID:         in.StoreID,
			Quantity:        in.Quantity,
			ReferenceType:   refType,
			ReferenceNumber: in.ReferenceNumber,
			Reason:          in.Reason,
			Notes:           in.Notes,
			ActorID:         in.Actor.UserID,
			ActorName:       in.Actor.Username,
			CreatedAt:       now,
		}
		if err := txnRepo.Create(ctx, t); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PostTransfer registra transfer_out en origen y transfer_in en destino, emparejados.
// Ambos se confirman o ninguno.
func (l *Ledger) PostTransfer(ctx context.Context, in TransferInput) (outTx, inTx *entity.StockTransaction, err error) {
	if in.Quantity <= 0 {
		return nil, nil, domain.InvalidQuantity("la cantidad debe ser mayor a cero")
	}
	if in.FromStoreID == in.ToStoreID {
		return nil, nil, domain.InvalidAttributes("la tienda origen y destino deben ser distintas")
	}
	if !in.Actor.CanActOnStore(in.FromStoreID) {
		return nil, nil, domain.StoreForbidden(in.FromStoreID)
	}
	if _, err := l.existingVariant(ctx, in.VariantID); err != nil {
		return nil, nil, err
	}
	if _, err := l.existingStore(ctx, in.FromStoreID); err != nil {
		return nil, nil, err
	}
	if _, err := l.activeStore(ctx, in.ToStoreID); err != nil {
		return nil, nil, err
	}

	err = l.txRunner.Run(ctx, func(
		txnRepo repository.StockTransactionRepository,
		invRepo repository.InventoryRepository,
		_ repository.BoxRepository,
	) error {
		now := l.now()
		from := entity.InventoryKey{VariantID: in.VariantID, StoreID: in.FromStoreID}
		to := entity.InventoryKey{VariantID: in.VariantID, StoreID: in.ToStoreID}
		// Orden fijo de bloqueo: dos traslados cruzados no se bloquean mutuamente.
		if err := lockKeys(ctx, invRepo, []entity.InventoryKey{from, to}); err != nil {
			return err
		}
		if _, err := applyDelta(ctx, invRepo, from.VariantID, from.StoreID, -in.Quantity, now); err != nil {
			return err
		}
		if _, err := applyDelta(ctx, invRepo, to.VariantID, to.StoreID, in.Quantity, now); err != nil {
			return err
		}

		outID, inID := uuid.New().String(), uuid.New().String()
		refType := in.ReferenceType
		if refType == "" {
			refType = entity.ReferenceTypeTransfer
		}
		base := entity.StockTransaction{
			VariantID:       in.VariantID,
			Quantity:        in.Quantity,
			ReferenceType:   refType,
			ReferenceNumber: in.ReferenceNumber,
			Reason:          in.Reason,
			Notes:           in.Notes,
			ActorID:         in.Actor.UserID,
			ActorName:       in.Actor.Username,
			CreatedAt:       now,
		}
		o := base
		o.ID, o.Type, o.StoreID, o.PairedTransactionID = outID, entity.TxTypeTransferOut, in.FromStoreID, inID
		i := base
		i.ID, i.Type, i.StoreID, i.PairedTransactionID = inID, entity.TxTypeTransferIn, in.ToStoreID, outID

		if err := txnRepo.Create(ctx, &o); err != nil {
			return err
		}
		if err := txnRepo.Create(ctx, &i); err != nil {
			return err
		}
		outTx, inTx = &o, &i
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return outTx, inTx, nil
}

// GetTransaction obtiene un movimiento por ID.
func (l *Ledger) GetTransaction(ctx context.Context, id string) (*entity.StockTransaction, error) {
	t, err := l.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.NotFound("movimiento")
	}
	return t, nil
}

// ListTransactions lista el libro con filtros y paginación.
func (l *Ledger) ListTransactions(ctx context.Context, filter repository.TransactionFilter) ([]*entity.StockTransaction, error) {
	if filter.Type != "" && !entity.ValidTxType(filter.Type) {
		return nil, domain.InvalidAttributes("tipo de movimiento inválido")
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return l.transactions.List(ctx, filter)
}

// LockKeys bloquea las filas de inventario en orden ascendente. Lo usan las operaciones
// que tocan varias claves en una misma transacción (traslados, check-in de cajas).
func LockKeys(ctx context.Context, invRepo repository.InventoryRepository, keys []entity.InventoryKey) error {
	return lockKeys(ctx, invRepo, keys)
}

func lockKeys(ctx context.Context, invRepo repository.InventoryRepository, keys []entity.InventoryKey) error {
	sorted := make([]entity.InventoryKey, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })
	for i, k := range sorted {
		if i > 0 && k == sorted[i-1] {
			continue
		}
		if _, err := invRepo.LockForUpdate(ctx, k.VariantID, k.StoreID); err != nil {
			return err
		}
	}
	return nil
}

func (l *Ledger) existingVariant(ctx context.Context, id string) (*entity.ItemVariant, error) {
	if id == "" {
		return nil, domain.VariantNotFound(id)
	}
	v, err := l.variants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.VariantNotFound(id)
	}
	return v, nil
}

func (l *Ledger) activeVariant(ctx context.Context, id string) (*entity.ItemVariant, error) {
	v, err := l.existingVariant(ctx, id)
	if err != nil {
		return nil, err
	}
	if !v.IsActive() {
		return nil, domain.VariantNotFound(id)
	}
	return v, nil
}

func (l *Ledger) existingStore(ctx context.Context, id string) (*entity.Store, error) {
	if id == "" {
		return nil, domain.StoreNotFound(id)
	}
	s, err := l.stores.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.StoreNotFound(id)
	}
	return s, nil
}

func (l *Ledger) activeStore(ctx context.Context, id string) (*entity.Store, error) {
	s, err := l.existingStore(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.IsActive() {
		return nil, domain.StoreNotFound(id)
	}
	return s, nil
}

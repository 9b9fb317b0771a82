package receiving

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/stockroom-api/internal/application/inventory"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
	codes "github.com/jhoicas/stockroom-api/internal/domain/variant"
)

// maxCodeAttempts intentos para asignar un código BOX-YYYY-NNNN libre.
const maxCodeAttempts = 5

// BoxUseCase gestiona el ciclo de vida de las cajas: creación con contenido y check-in
// (pending_checkin -> checked_in), que publica una entrada de stock por línea.
type BoxUseCase struct {
	txRunner     inventory.TxRunner
	ledger       *inventory.Ledger
	boxes        repository.BoxRepository
	stores       repository.StoreRepository
	variants     repository.VariantRepository
	items        repository.ItemRepository
	transactions repository.StockTransactionRepository
	now          func() time.Time
}

// NewBoxUseCase construye el caso de uso.
func NewBoxUseCase(
	txRunner inventory.TxRunner,
	ledger *inventory.Ledger,
	boxes repository.BoxRepository,
	stores repository.StoreRepository,
	variants repository.VariantRepository,
	items repository.ItemRepository,
	transactions repository.StockTransactionRepository,
) *BoxUseCase {
	return &BoxUseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		boxes:        boxes,
		stores:       stores,
		variants:     variants,
		items:        items,
		transactions: transactions,
		now:          time.Now,
	}
}

// ContentInput línea de contenido: VariantID, o ItemID + talla/color para resolver la variante activa.
type ContentInput struct {
	VariantID string
	ItemID    string
	Size      string
	Color     string
	Quantity  int64
}

// CreateBoxInput entrada para registrar una caja recibida.
type CreateBoxInput struct {
	Actor         entity.Actor
	Code          string // opcional; vacío = BOX-YYYY-NNNN
	Supplier      string
	PONumber      string
	DONumber      string
	InvoiceNumber string
	Notes         string
	ReceivedDate  *time.Time
	Contents      []ContentInput
}

// CheckInInput entrada para el check-in de una caja en una tienda.
type CheckInInput struct {
	Actor    entity.Actor
	BoxID    string
	StoreID  string
	Location string
}

// CreateBox registra la caja en pending_checkin con sus líneas, en una sola transacción.
func (uc *BoxUseCase) CreateBox(ctx context.Context, in CreateBoxInput) (*entity.Box, error) {
	if len(in.Contents) == 0 {
		return nil, domain.InvalidQuantity("la caja debe tener al menos una línea")
	}
	for i, c := range in.Contents {
		if c.Quantity <= 0 {
			return nil, domain.InvalidQuantity(fmt.Sprintf("línea %d: la cantidad debe ser mayor a cero", i+1))
		}
	}

	now := uc.now()
	box := &entity.Box{
		ID:            uuid.New().String(),
		Supplier:      strings.TrimSpace(in.Supplier),
		PONumber:      strings.TrimSpace(in.PONumber),
		DONumber:      strings.TrimSpace(in.DONumber),
		InvoiceNumber: strings.TrimSpace(in.InvoiceNumber),
		Notes:         in.Notes,
		Status:        entity.BoxStatusPendingCheckin,
		ReceivedDate:  now,
		ReceivedBy:    in.Actor.Username,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.ReceivedDate != nil {
		box.ReceivedDate = *in.ReceivedDate
	}
	for _, c := range in.Contents {
		v, err := uc.resolveContent(ctx, c)
		if err != nil {
			return nil, err
		}
		box.Contents = append(box.Contents, entity.BoxContent{
			ID:        uuid.New().String(),
			BoxID:     box.ID,
			VariantID: v.ID,
			ItemID:    v.ItemID,
			Size:      v.Size,
			Color:     v.Color,
			Quantity:  c.Quantity,
		})
	}

	code := strings.TrimSpace(in.Code)
	if code != "" {
		box.Code = code
		if err := uc.insert(ctx, box); err != nil {
			return nil, err
		}
	} else if err := uc.insertWithGeneratedCode(ctx, box); err != nil {
		return nil, err
	}

	log.Info().
		Str("box_id", box.ID).
		Str("box_code", box.Code).
		Int("lines", len(box.Contents)).
		Int64("total_items", box.TotalItems()).
		Msg("caja registrada")
	return box, nil
}

func (uc *BoxUseCase) insertWithGeneratedCode(ctx context.Context, box *entity.Box) error {
	year := box.ReceivedDate.Year()
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		seq, err := uc.boxes.NextSequence(ctx, year)
		if err != nil {
			return err
		}
		box.Code = fmt.Sprintf("BOX-%d-%04d", year, seq)
		err = uc.insert(ctx, box)
		if err == nil {
			return nil
		}
		if domain.KindOf(err) != domain.KindDuplicateBoxCode {
			return err
		}
	}
	return fmt.Errorf("no se pudo generar un código de caja libre para %d", year)
}

func (uc *BoxUseCase) insert(ctx context.Context, box *entity.Box) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.StockTransactionRepository,
		_ repository.InventoryRepository,
		boxRepo repository.BoxRepository,
	) error {
		return boxRepo.Create(ctx, box)
	})
}

func (uc *BoxUseCase) resolveContent(ctx context.Context, c ContentInput) (*entity.ItemVariant, error) {
	if c.VariantID != "" {
		v, err := uc.variants.GetByID(ctx, c.VariantID)
		if err != nil {
			return nil, err
		}
		if !v.IsActive() {
			return nil, domain.VariantNotFound(c.VariantID)
		}
		return v, nil
	}
	if c.ItemID == "" {
		return nil, domain.InvalidAttributes("cada línea requiere variant_id o item_id")
	}
	item, err := uc.items.GetByID(ctx, c.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ItemNotFound(c.ItemID)
	}
	v, err := uc.variants.FindActive(ctx, item.ID, codes.Normalize(c.Size), codes.Normalize(c.Color))
	if err != nil {
		return nil, err
	}
	if v == nil {
		e := domain.VariantNotFound("")
		e.ItemID = item.ID
		e.Message = fmt.Sprintf("no existe variante activa de %s con talla %q y color %q", item.Code, c.Size, c.Color)
		return nil, e
	}
	return v, nil
}

// CheckIn ingresa la caja a la tienda: bloquea la caja, revalida cada línea, publica un
// stock_in por línea y cambia el estado a checked_in. Todo o nada.
func (uc *BoxUseCase) CheckIn(ctx context.Context, in CheckInInput) (*entity.Box, error) {
	var result *entity.Box
	err := uc.txRunner.Run(ctx, func(
		txnRepo repository.StockTransactionRepository,
		invRepo repository.InventoryRepository,
		boxRepo repository.BoxRepository,
	) error {
		box, err := boxRepo.GetForUpdate(ctx, in.BoxID)
		if err != nil {
			return err
		}
		if box == nil {
			return domain.BoxNotFound(in.BoxID)
		}
		if !box.IsPending() {
			return domain.AlreadyCheckedIn(box.ID, box.Status)
		}
		store, err := uc.stores.GetByID(ctx, in.StoreID)
		if err != nil {
			return err
		}
		if !store.IsActive() {
			return domain.StoreNotFound(in.StoreID)
		}
		if !in.Actor.CanActOnStore(store.ID) {
			return domain.StoreForbidden(store.ID)
		}

		keys := make([]entity.InventoryKey, 0, len(box.Contents))
		for i, c := range box.Contents {
			v, err := uc.variants.GetByID(ctx, c.VariantID)
			if err != nil {
				return err
			}
			if !v.IsActive() {
				e := domain.VariantNotFound(c.VariantID)
				e.BoxID = box.ID
				e.Message = fmt.Sprintf("línea %d: variante %s no disponible", i+1, c.VariantID)
				return e
			}
			keys = append(keys, entity.InventoryKey{VariantID: c.VariantID, StoreID: store.ID})
		}
		if err := inventory.LockKeys(ctx, invRepo, keys); err != nil {
			return err
		}
		for _, c := range box.Contents {
			_, err := uc.ledger.StockInTx(ctx, txnRepo, invRepo, inventory.StockInInput{
				Actor:     in.Actor,
				VariantID: c.VariantID,
				StoreID:   store.ID,
				Quantity:  c.Quantity,
				BoxID:     box.ID,
				Meta: inventory.Meta{
					ReferenceType:   entity.ReferenceTypeBox,
					ReferenceNumber: box.Code,
				},
			})
			if err != nil {
				return err
			}
		}

		now := uc.now()
		box.Status = entity.BoxStatusCheckedIn
		box.StoreID = store.ID
		box.LocationInStore = strings.TrimSpace(in.Location)
		box.CheckedInAt = &now
		box.CheckedInBy = in.Actor.Username
		box.UpdatedAt = now
		if err := boxRepo.MarkCheckedIn(ctx, box); err != nil {
			return err
		}
		result = box
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			log.Info().Str("box_id", in.BoxID).Msg("check-in rechazado: caja ya ingresada")
		}
		return nil, err
	}

	log.Info().
		Str("box_id", result.ID).
		Str("box_code", result.Code).
		Str("store_id", result.StoreID).
		Int64("total_items", result.TotalItems()).
		Msg("caja ingresada a tienda")
	return result, nil
}

// GetBox obtiene una caja con su contenido.
func (uc *BoxUseCase) GetBox(ctx context.Context, id string) (*entity.Box, error) {
	box, err := uc.boxes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if box == nil {
		return nil, domain.BoxNotFound(id)
	}
	return box, nil
}

// ListBoxes lista cajas con filtros y paginación.
func (uc *BoxUseCase) ListBoxes(ctx context.Context, filter repository.BoxFilter) ([]*entity.Box, error) {
	if filter.Status != "" && filter.Status != entity.BoxStatusPendingCheckin && filter.Status != entity.BoxStatusCheckedIn {
		return nil, domain.InvalidAttributes("estado de caja inválido")
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return uc.boxes.List(ctx, filter)
}

// ListPending lista las cajas pendientes de check-in.
func (uc *BoxUseCase) ListPending(ctx context.Context, limit, offset int) ([]*entity.Box, error) {
	return uc.ListBoxes(ctx, repository.BoxFilter{Status: entity.BoxStatusPendingCheckin, Limit: limit, Offset: offset})
}

// BoxTransactions movimientos originados por el check-in de la caja.
func (uc *BoxUseCase) BoxTransactions(ctx context.Context, boxID string) ([]*entity.StockTransaction, error) {
	if _, err := uc.GetBox(ctx, boxID); err != nil {
		return nil, err
	}
	return uc.transactions.List(ctx, repository.TransactionFilter{BoxID: boxID, Limit: 1000})
}

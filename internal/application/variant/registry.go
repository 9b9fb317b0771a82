package variant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/stockroom-api/internal/application/ports"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
	codes "github.com/jhoicas/stockroom-api/internal/domain/variant"
)

// maxQRAttempts intentos de regeneración ante colisión de QR.
const maxQRAttempts = 8

// Registry es el registro de variantes: crea combinaciones talla/color, asigna su QR
// y resuelve escaneos.
type Registry struct {
	variants     repository.VariantRepository
	items        repository.ItemRepository
	itemTypes    repository.ItemTypeRepository
	transactions repository.StockTransactionRepository
	cache        ports.VariantCache
	newCode      codes.CodeGenerator
	now          func() time.Time
}

// NewRegistry construye el registro. cache puede ser nil.
func NewRegistry(
	variants repository.VariantRepository,
	items repository.ItemRepository,
	itemTypes repository.ItemTypeRepository,
	transactions repository.StockTransactionRepository,
	cache ports.VariantCache,
) *Registry {
	return &Registry{
		variants:     variants,
		items:        items,
		itemTypes:    itemTypes,
		transactions: transactions,
		cache:        cache,
		newCode:      codes.NewQRCode,
		now:          time.Now,
	}
}

// WithCodeGenerator reemplaza el generador de QR.
func (r *Registry) WithCodeGenerator(gen codes.CodeGenerator) *Registry {
	r.newCode = gen
	return r
}

// CreateVariantInput entrada para crear una variante.
type CreateVariantInput struct {
	ItemID string
	Size   string
	Color  string
	SKU    string // opcional; si está vacío se genera ITEMCODE-SIZE-COLOR
}

// CreateVariant valida la combinación contra el tipo de artículo, rechaza duplicados activos
// y asigna un QR único (regenerando ante colisión).
func (r *Registry) CreateVariant(ctx context.Context, in CreateVariantInput) (*entity.ItemVariant, error) {
	size, color := codes.Normalize(in.Size), codes.Normalize(in.Color)

	item, err := r.items.GetByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ItemNotFound(in.ItemID)
	}
	itemType, err := r.itemTypes.GetByID(ctx, item.ItemTypeID)
	if err != nil {
		return nil, err
	}
	if itemType == nil {
		return nil, domain.NotFound("tipo de artículo")
	}
	if err := validateAttributes(itemType, size, color); err != nil {
		return nil, err
	}

	existing, err := r.variants.FindActive(ctx, item.ID, size, color)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.DuplicateVariant(item.ID, existing.ID)
	}

	sku := codes.Normalize(in.SKU)
	if sku == "" {
		sku = codes.BuildSKU(item.Code, size, color)
	}
	now := r.now()
	v := &entity.ItemVariant{
		ID:        uuid.New().String(),
		ItemID:    item.ID,
		Size:      size,
		Color:     color,
		SKU:       sku,
		Status:    entity.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for attempt := 1; attempt <= maxQRAttempts; attempt++ {
		v.QRCode = r.newCode()
		err = r.variants.Create(ctx, v)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, repository.ErrQRCodeTaken) {
			return nil, err
		}
		log.Warn().Str("item_id", item.ID).Int("attempt", attempt).Msg("colisión de QR, regenerando")
	}
	return nil, fmt.Errorf("no se pudo asignar un QR único tras %d intentos", maxQRAttempts)
}

func validateAttributes(t *entity.ItemType, size, color string) error {
	switch {
	case size != "" && !t.HasSize:
		return domain.InvalidAttributes(fmt.Sprintf("el tipo %s no maneja tallas", t.Code))
	case size == "" && t.HasSize:
		return domain.InvalidAttributes(fmt.Sprintf("el tipo %s requiere talla", t.Code))
	case color != "" && !t.HasColor:
		return domain.InvalidAttributes(fmt.Sprintf("el tipo %s no maneja colores", t.Code))
	case color == "" && t.HasColor:
		return domain.InvalidAttributes(fmt.Sprintf("el tipo %s requiere color", t.Code))
	case size != "" && !t.AllowsSize(size):
		return domain.InvalidAttributes(fmt.Sprintf("talla %s no disponible para %s", size, t.Code))
	case color != "" && !t.AllowsColor(color):
		return domain.InvalidAttributes(fmt.Sprintf("color %s no disponible para %s", color, t.Code))
	}
	return nil
}

// DeleteVariant desactiva la variante (soft delete, siempre permitido). Con hard=true la elimina
// físicamente solo si ningún movimiento la referencia; si no, VariantInUse.
func (r *Registry) DeleteVariant(ctx context.Context, variantID string, hard bool) error {
	v, err := r.variants.GetByID(ctx, variantID)
	if err != nil {
		return err
	}
	if v == nil {
		return domain.VariantNotFound(variantID)
	}
	if hard {
		n, err := r.transactions.CountByVariant(ctx, variantID)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.VariantInUse(variantID)
		}
		if err := r.variants.Delete(ctx, variantID); err != nil {
			return err
		}
	} else if v.Status != entity.StatusInactive {
		if err := r.variants.UpdateStatus(ctx, variantID, entity.StatusInactive); err != nil {
			return err
		}
	}
	r.invalidate(ctx, v.QRCode)
	return nil
}

// ResolveByQRCode resuelve un QR escaneado. Código desconocido o variante inactiva -> VariantNotFound.
func (r *Registry) ResolveByQRCode(ctx context.Context, code string) (*entity.ItemVariant, error) {
	code = codes.Normalize(code)
	if code == "" {
		return nil, domain.QRCodeNotFound(code)
	}
	if r.cache != nil {
		v, ok, err := r.cache.Get(ctx, code)
		if err != nil {
			log.Warn().Err(err).Str("qr_code", code).Msg("cache QR no disponible")
		} else if ok && v.IsActive() {
			return v, nil
		}
	}
	v, err := r.variants.GetByQRCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if v == nil || !v.IsActive() {
		return nil, domain.QRCodeNotFound(code)
	}
	if r.cache != nil {
		if err := r.cache.Set(ctx, v); err != nil {
			log.Warn().Err(err).Str("qr_code", code).Msg("no se pudo cachear la variante")
		}
	}
	return v, nil
}

// GetVariant obtiene una variante por ID (activa o no).
func (r *Registry) GetVariant(ctx context.Context, id string) (*entity.ItemVariant, error) {
	v, err := r.variants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.VariantNotFound(id)
	}
	return v, nil
}

// ListByItem lista las variantes de un artículo.
func (r *Registry) ListByItem(ctx context.Context, itemID string, includeInactive bool) ([]*entity.ItemVariant, error) {
	item, err := r.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ItemNotFound(itemID)
	}
	return r.variants.ListByItem(ctx, itemID, includeInactive)
}

func (r *Registry) invalidate(ctx context.Context, code string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Invalidate(ctx, code); err != nil {
		log.Warn().Err(err).Str("qr_code", code).Msg("no se pudo invalidar el cache QR")
	}
}

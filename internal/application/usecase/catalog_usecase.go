package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

// CatalogUseCase casos de uso del catálogo: categorías, tipos de artículo y artículos.
type CatalogUseCase struct {
	categories repository.CategoryRepository
	itemTypes  repository.ItemTypeRepository
	items      repository.ItemRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	categories repository.CategoryRepository,
	itemTypes repository.ItemTypeRepository,
	items repository.ItemRepository,
) *CatalogUseCase {
	return &CatalogUseCase{categories: categories, itemTypes: itemTypes, items: items}
}

// CreateItemType crea un tipo. Si no maneja talla/color, las listas disponibles se descartan.
func (uc *CatalogUseCase) CreateItemType(ctx context.Context, in dto.CreateItemTypeRequest) (*dto.ItemTypeResponse, error) {
	if strings.TrimSpace(in.Code) == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.InvalidAttributes("type_code y type_name son requeridos")
	}
	if in.MinStockLevel < 0 || in.MaxStockLevel < 0 || (in.MaxStockLevel > 0 && in.MaxStockLevel < in.MinStockLevel) {
		return nil, domain.InvalidAttributes("niveles de stock inválidos")
	}
	if in.CategoryID != "" {
		if _, err := uc.requireCategory(ctx, in.CategoryID); err != nil {
			return nil, err
		}
	}
	now := time.Now()
	t := &entity.ItemType{
		ID:            uuid.New().String(),
		CategoryID:    in.CategoryID,
		Code:          strings.TrimSpace(in.Code),
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		HasSize:       in.HasSize,
		HasColor:      in.HasColor,
		MinStockLevel: in.MinStockLevel,
		MaxStockLevel: in.MaxStockLevel,
		Status:        entity.StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.HasSize {
		t.AvailableSizes = cleanList(in.AvailableSizes)
	}
	if in.HasColor {
		t.AvailableColors = cleanList(in.AvailableColors)
	}
	if err := uc.itemTypes.Create(ctx, t); err != nil {
		return nil, err
	}
	return toItemTypeResponse(t), nil
}

// GetItemType obtiene un tipo por ID.
func (uc *CatalogUseCase) GetItemType(ctx context.Context, id string) (*dto.ItemTypeResponse, error) {
	t, err := uc.itemTypes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toItemTypeResponse(t), nil
}

// ListItemTypes lista tipos con paginación.
func (uc *CatalogUseCase) ListItemTypes(ctx context.Context, limit, offset int) (*dto.ItemTypeListResponse, error) {
	list, err := uc.itemTypes.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemTypeResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toItemTypeResponse(t))
	}
	return &dto.ItemTypeListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// CreateItem crea un artículo de un tipo existente.
func (uc *CatalogUseCase) CreateItem(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if strings.TrimSpace(in.Code) == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.InvalidAttributes("item_code e item_name son requeridos")
	}
	if in.UnitPrice.IsNegative() {
		return nil, domain.InvalidAttributes("unit_price no puede ser negativo")
	}
	t, err := uc.itemTypes.GetByID(ctx, in.ItemTypeID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.NotFound("tipo de artículo")
	}
	unit := in.Unit
	if unit == "" {
		unit = "pcs"
	}
	now := time.Now()
	item := &entity.Item{
		ID:          uuid.New().String(),
		Code:        strings.TrimSpace(in.Code),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		ItemTypeID:  t.ID,
		Unit:        unit,
		UnitPrice:   in.UnitPrice,
		Status:      entity.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetItem obtiene un artículo por ID.
func (uc *CatalogUseCase) GetItem(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// ListItems lista artículos por tipo y/o búsqueda.
func (uc *CatalogUseCase) ListItems(ctx context.Context, itemTypeID, search string, limit, offset int) (*dto.ItemListResponse, error) {
	list, err := uc.items.List(ctx, itemTypeID, search, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, i := range list {
		items = append(items, *toItemResponse(i))
	}
	return &dto.ItemListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func toItemTypeResponse(t *entity.ItemType) *dto.ItemTypeResponse {
	if t == nil {
		return nil
	}
	return &dto.ItemTypeResponse{
		ID:              t.ID,
		CategoryID:      t.CategoryID,
		Code:            t.Code,
		Name:            t.Name,
		Description:     t.Description,
		HasSize:         t.HasSize,
		AvailableSizes:  t.AvailableSizes,
		HasColor:        t.HasColor,
		AvailableColors: t.AvailableColors,
		MinStockLevel:   t.MinStockLevel,
		MaxStockLevel:   t.MaxStockLevel,
		Status:          t.Status,
		CreatedAt:       t.CreatedAt,
	}
}

func toItemResponse(i *entity.Item) *dto.ItemResponse {
	if i == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:          i.ID,
		Code:        i.Code,
		Name:        i.Name,
		Description: i.Description,
		ItemTypeID:  i.ItemTypeID,
		Unit:        i.Unit,
		UnitPrice:   i.UnitPrice,
		Status:      i.Status,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

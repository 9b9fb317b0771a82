package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// CreateCategory crea una categoría activa.
func (uc *CatalogUseCase) CreateCategory(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	code, name := strings.TrimSpace(in.Code), strings.TrimSpace(in.Name)
	if code == "" || name == "" {
		return nil, domain.InvalidAttributes("category_code y category_name son requeridos")
	}
	if in.DisplayOrder < 0 {
		return nil, domain.InvalidAttributes("display_order no puede ser negativo")
	}
	now := time.Now()
	c := &entity.Category{
		ID:           uuid.New().String(),
		Code:         code,
		Name:         name,
		Description:  in.Description,
		DisplayOrder: in.DisplayOrder,
		Status:       entity.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c, 0), nil
}

// GetCategory devuelve la categoría con sus tipos de artículo.
func (uc *CatalogUseCase) GetCategory(ctx context.Context, id string) (*dto.CategoryDetailResponse, error) {
	c, err := uc.requireCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	types, err := uc.itemTypes.ListByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &dto.CategoryDetailResponse{
		CategoryResponse: *toCategoryResponse(c, len(types)),
		Types:            make([]dto.ItemTypeResponse, 0, len(types)),
	}
	for _, t := range types {
		out.Types = append(out.Types, *toItemTypeResponse(t))
	}
	return out, nil
}

// ListCategories lista por display_order; status vacío = todas.
func (uc *CatalogUseCase) ListCategories(ctx context.Context, status string, limit, offset int) (*dto.CategoryListResponse, error) {
	if status != "" && status != entity.StatusActive && status != entity.StatusInactive {
		return nil, domain.InvalidAttributes("status inválido")
	}
	list, err := uc.categories.List(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		types, err := uc.itemTypes.ListByCategory(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *toCategoryResponse(c, len(types)))
	}
	return &dto.CategoryListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// UpdateCategory aplica cambios parciales.
func (uc *CatalogUseCase) UpdateCategory(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.requireCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.InvalidAttributes("category_name no puede quedar vacío")
		}
		c.Name = name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.DisplayOrder != nil {
		if *in.DisplayOrder < 0 {
			return nil, domain.InvalidAttributes("display_order no puede ser negativo")
		}
		c.DisplayOrder = *in.DisplayOrder
	}
	if in.Status != nil {
		if *in.Status != entity.StatusActive && *in.Status != entity.StatusInactive {
			return nil, domain.InvalidAttributes("status inválido")
		}
		c.Status = *in.Status
	}
	c.UpdatedAt = time.Now()
	if err := uc.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	types, err := uc.itemTypes.ListByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(c, len(types)), nil
}

// DeleteCategory borra una categoría sin tipos asociados; con tipos devuelve CONFLICT.
func (uc *CatalogUseCase) DeleteCategory(ctx context.Context, id string) error {
	if _, err := uc.requireCategory(ctx, id); err != nil {
		return err
	}
	types, err := uc.itemTypes.ListByCategory(ctx, id)
	if err != nil {
		return err
	}
	if len(types) > 0 {
		return domain.Conflict("la categoría tiene tipos de artículo asociados")
	}
	return uc.categories.Delete(ctx, id)
}

func (uc *CatalogUseCase) requireCategory(ctx context.Context, id string) (*entity.Category, error) {
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("categoría")
	}
	return c, nil
}

func toCategoryResponse(c *entity.Category, typeCount int) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:           c.ID,
		Code:         c.Code,
		Name:         c.Name,
		Description:  c.Description,
		DisplayOrder: c.DisplayOrder,
		Status:       c.Status,
		TypeCount:    typeCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

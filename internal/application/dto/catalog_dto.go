package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Code         string `json:"category_code" validate:"required,max=50"`
	Name         string `json:"category_name" validate:"required,max=200"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order"`
}

// UpdateCategoryRequest cambios parciales; el código no se edita.
type UpdateCategoryRequest struct {
	Name         *string `json:"category_name"`
	Description  *string `json:"description"`
	DisplayOrder *int    `json:"display_order"`
	Status       *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// CategoryResponse salida de una categoría con su cantidad de tipos.
type CategoryResponse struct {
	ID           string    `json:"id"`
	Code         string    `json:"category_code"`
	Name         string    `json:"category_name"`
	Description  string    `json:"description"`
	DisplayOrder int       `json:"display_order"`
	Status       string    `json:"status"`
	TypeCount    int       `json:"type_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CategoryDetailResponse categoría con sus tipos de artículo.
type CategoryDetailResponse struct {
	CategoryResponse
	Types []ItemTypeResponse `json:"types"`
}

// CategoryListResponse lista paginada de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateItemTypeRequest entrada para crear un tipo de artículo.
type CreateItemTypeRequest struct {
	CategoryID      string   `json:"category_id"`
	Code            string   `json:"type_code" validate:"required,max=50"`
	Name            string   `json:"type_name" validate:"required,max=200"`
	Description     string   `json:"description"`
	HasSize         bool     `json:"has_size"`
	AvailableSizes  []string `json:"available_sizes"`
	HasColor        bool     `json:"has_color"`
	AvailableColors []string `json:"available_colors"`
	MinStockLevel   int64    `json:"min_stock_level"`
	MaxStockLevel   int64    `json:"max_stock_level"`
}

// ItemTypeResponse salida de un tipo de artículo.
type ItemTypeResponse struct {
	ID              string    `json:"id"`
	CategoryID      string    `json:"category_id,omitempty"`
	Code            string    `json:"type_code"`
	Name            string    `json:"type_name"`
	Description     string    `json:"description"`
	HasSize         bool      `json:"has_size"`
	AvailableSizes  []string  `json:"available_sizes"`
	HasColor        bool      `json:"has_color"`
	AvailableColors []string  `json:"available_colors"`
	MinStockLevel   int64     `json:"min_stock_level"`
	MaxStockLevel   int64     `json:"max_stock_level"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// ItemTypeListResponse lista paginada de tipos.
type ItemTypeListResponse struct {
	Items []ItemTypeResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateItemRequest entrada para crear un artículo.
type CreateItemRequest struct {
	Code        string          `json:"item_code" validate:"required,max=100"`
	Name        string          `json:"item_name" validate:"required,max=200"`
	Description string          `json:"description"`
	ItemTypeID  string          `json:"item_type_id" validate:"required"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// ItemResponse salida de un artículo.
type ItemResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"item_code"`
	Name        string          `json:"item_name"`
	Description string          `json:"description"`
	ItemTypeID  string          `json:"item_type_id"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ItemListResponse lista paginada de artículos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

package dto

import "time"

// CreateStoreRequest entrada para crear una tienda.
type CreateStoreRequest struct {
	PlantID      string `json:"plant_id" validate:"required"`
	Code         string `json:"store_code" validate:"required,max=50"`
	Name         string `json:"store_name" validate:"required,max=200"`
	Location     string `json:"location"`
	StoreType    string `json:"store_type"`
	StockOutMode string `json:"stock_out_mode" validate:"omitempty,oneof=trust casual strict"`
}

// UpdateStoreRequest entrada para actualizar una tienda.
type UpdateStoreRequest struct {
	Name         *string `json:"store_name"`
	Location     *string `json:"location"`
	StoreType    *string `json:"store_type"`
	StockOutMode *string `json:"stock_out_mode" validate:"omitempty,oneof=trust casual strict"`
	Status       *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// StoreResponse salida de una tienda.
type StoreResponse struct {
	ID           string    `json:"id"`
	PlantID      string    `json:"plant_id"`
	Code         string    `json:"store_code"`
	Name         string    `json:"store_name"`
	Location     string    `json:"location"`
	StoreType    string    `json:"store_type"`
	StockOutMode string    `json:"stock_out_mode"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StoreListResponse lista paginada de tiendas.
type StoreListResponse struct {
	Items []StoreResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

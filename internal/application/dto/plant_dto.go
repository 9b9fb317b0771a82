package dto

import "time"

// CreatePlantRequest entrada para crear una planta.
type CreatePlantRequest struct {
	Code     string `json:"plant_code" validate:"required,max=50"`
	Name     string `json:"name" validate:"required,max=200"`
	Location string `json:"location"`
}

// UpdatePlantRequest entrada para actualizar una planta.
type UpdatePlantRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	Status   *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// PlantResponse salida de una planta.
type PlantResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"plant_code"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlantListResponse lista paginada de plantas.
type PlantListResponse struct {
	Items []PlantResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

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

// PlantUseCase casos de uso CRUD para plantas.
type PlantUseCase struct {
	repo repository.PlantRepository
}

// NewPlantUseCase construye el caso de uso.
func NewPlantUseCase(repo repository.PlantRepository) *PlantUseCase {
	return &PlantUseCase{repo: repo}
}

// Create crea una nueva planta.
func (uc *PlantUseCase) Create(ctx context.Context, in dto.CreatePlantRequest) (*dto.PlantResponse, error) {
	if strings.TrimSpace(in.Code) == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.InvalidAttributes("plant_code y name son requeridos")
	}
	now := time.Now()
	plant := &entity.Plant{
		ID:        uuid.New().String(),
		Code:      strings.TrimSpace(in.Code),
		Name:      strings.TrimSpace(in.Name),
		Location:  in.Location,
		Status:    entity.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, plant); err != nil {
		return nil, err
	}
	return toPlantResponse(plant), nil
}

// GetByID obtiene una planta por ID.
func (uc *PlantUseCase) GetByID(ctx context.Context, id string) (*dto.PlantResponse, error) {
	plant, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plant == nil {
		return nil, nil
	}
	return toPlantResponse(plant), nil
}

// Update actualiza una planta.
func (uc *PlantUseCase) Update(ctx context.Context, id string, in dto.UpdatePlantRequest) (*dto.PlantResponse, error) {
	plant, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plant == nil {
		return nil, nil
	}
	if in.Name != nil {
		plant.Name = *in.Name
	}
	if in.Location != nil {
		plant.Location = *in.Location
	}
	if in.Status != nil {
		if *in.Status != entity.StatusActive && *in.Status != entity.StatusInactive {
			return nil, domain.InvalidAttributes("status inválido")
		}
		plant.Status = *in.Status
	}
	plant.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, plant); err != nil {
		return nil, err
	}
	return toPlantResponse(plant), nil
}

// List lista plantas con paginación.
func (uc *PlantUseCase) List(ctx context.Context, limit, offset int) (*dto.PlantListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PlantResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPlantResponse(p))
	}
	return &dto.PlantListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toPlantResponse(p *entity.Plant) *dto.PlantResponse {
	if p == nil {
		return nil
	}
	return &dto.PlantResponse{
		ID:        p.ID,
		Code:      p.Code,
		Name:      p.Name,
		Location:  p.Location,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

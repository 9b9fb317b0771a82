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

// StoreUseCase casos de uso CRUD para tiendas.
type StoreUseCase struct {
	repo   repository.StoreRepository
	plants repository.PlantRepository
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(repo repository.StoreRepository, plants repository.PlantRepository) *StoreUseCase {
	return &StoreUseCase{repo: repo, plants: plants}
}

// Create crea una nueva tienda dentro de una planta existente. stock_out_mode por defecto: casual.
func (uc *StoreUseCase) Create(ctx context.Context, in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	if strings.TrimSpace(in.Code) == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.InvalidAttributes("store_code y store_name son requeridos")
	}
	plant, err := uc.plants.GetByID(ctx, in.PlantID)
	if err != nil {
		return nil, err
	}
	if plant == nil {
		return nil, domain.NotFound("planta")
	}
	mode := in.StockOutMode
	if mode == "" {
		mode = entity.StockOutModeCasual
	}
	if !entity.ValidStockOutMode(mode) {
		return nil, domain.InvalidAttributes("stock_out_mode inválido")
	}
	now := time.Now()
	store := &entity.Store{
		ID:           uuid.New().String(),
		PlantID:      plant.ID,
		Code:         strings.TrimSpace(in.Code),
		Name:         strings.TrimSpace(in.Name),
		Location:     in.Location,
		StoreType:    in.StoreType,
		StockOutMode: mode,
		Status:       entity.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, store); err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// GetByID obtiene una tienda por ID.
func (uc *StoreUseCase) GetByID(ctx context.Context, id string) (*dto.StoreResponse, error) {
	store, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, nil
	}
	return toStoreResponse(store), nil
}

// Update actualiza una tienda.
func (uc *StoreUseCase) Update(ctx context.Context, id string, in dto.UpdateStoreRequest) (*dto.StoreResponse, error) {
	store, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, nil
	}
	if in.Name != nil {
		store.Name = *in.Name
	}
	if in.Location != nil {
		store.Location = *in.Location
	}
	if in.StoreType != nil {
		store.StoreType = *in.StoreType
	}
	if in.StockOutMode != nil {
		if !entity.ValidStockOutMode(*in.StockOutMode) {
			return nil, domain.InvalidAttributes("stock_out_mode inválido")
		}
		store.StockOutMode = *in.StockOutMode
	}
	if in.Status != nil {
		if *in.Status != entity.StatusActive && *in.Status != entity.StatusInactive {
			return nil, domain.InvalidAttributes("status inválido")
		}
		store.Status = *in.Status
	}
	store.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, store); err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// List lista tiendas (opcionalmente por planta) con paginación.
func (uc *StoreUseCase) List(ctx context.Context, plantID string, limit, offset int) (*dto.StoreListResponse, error) {
	list, err := uc.repo.List(ctx, plantID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StoreResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStoreResponse(s))
	}
	return &dto.StoreListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	if s == nil {
		return nil
	}
	return &dto.StoreResponse{
		ID:           s.ID,
		PlantID:      s.PlantID,
		Code:         s.Code,
		Name:         s.Name,
		Location:     s.Location,
		StoreType:    s.StoreType,
		StockOutMode: s.StockOutMode,
		Status:       s.Status,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

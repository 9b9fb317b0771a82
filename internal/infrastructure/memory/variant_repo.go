package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo implementa repository.VariantRepository.
type VariantRepo struct{ s *Store }

func NewVariantRepository(s *Store) *VariantRepo { return &VariantRepo{s: s} }

func (r *VariantRepo) Create(_ context.Context, v *entity.ItemVariant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.variants {
		if other.QRCode == v.QRCode {
			return repository.ErrQRCodeTaken
		}
		if v.IsActive() && other.IsActive() && other.ItemID == v.ItemID && other.Size == v.Size && other.Color == v.Color {
			return domain.DuplicateVariant(v.ItemID, other.ID)
		}
	}
	r.s.variants[v.ID] = cloneVariant(v)
	return nil
}

func (r *VariantRepo) GetByID(_ context.Context, id string) (*entity.ItemVariant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.variants[id]
	if !ok {
		return nil, nil
	}
	return cloneVariant(v), nil
}

func (r *VariantRepo) GetByQRCode(_ context.Context, code string) (*entity.ItemVariant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, v := range r.s.variants {
		if v.QRCode == code {
			return cloneVariant(v), nil
		}
	}
	return nil, nil
}

func (r *VariantRepo) FindActive(_ context.Context, itemID, size, color string) (*entity.ItemVariant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, v := range r.s.variants {
		if v.IsActive() && v.ItemID == itemID && v.Size == size && v.Color == color {
			return cloneVariant(v), nil
		}
	}
	return nil, nil
}

func (r *VariantRepo) ListByItem(_ context.Context, itemID string, includeInactive bool) ([]*entity.ItemVariant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.ItemVariant
	for _, v := range r.s.variants {
		if v.ItemID != itemID || (!includeInactive && !v.IsActive()) {
			continue
		}
		list = append(list, cloneVariant(v))
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (r *VariantRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.variants[id]
	if !ok {
		return domain.VariantNotFound(id)
	}
	v.Status = status
	v.UpdatedAt = time.Now()
	return nil
}

// Delete falla con VariantInUse si algún movimiento o línea de caja la referencia.
func (r *VariantRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.variants[id]; !ok {
		return domain.VariantNotFound(id)
	}
	for _, t := range r.s.transactions {
		if t.VariantID == id {
			return domain.VariantInUse(id)
		}
	}
	for _, b := range r.s.boxes {
		for _, c := range b.Contents {
			if c.VariantID == id {
				return domain.VariantInUse(id)
			}
		}
	}
	delete(r.s.variants, id)
	return nil
}

package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

var _ repository.BoxRepository = (*BoxRepo)(nil)

// BoxRepo implementa repository.BoxRepository.
type BoxRepo struct {
	s  *Store
	tx *txState
}

func NewBoxRepository(s *Store) *BoxRepo {
	return &BoxRepo{s: s}
}

func (r *BoxRepo) Create(ctx context.Context, b *entity.Box) error {
	if r.tx == nil {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
		if _, taken := r.s.boxByCode[b.Code]; taken {
			return domain.DuplicateBoxCode(b.Code)
		}
		r.s.boxes[b.ID] = cloneBox(b)
		r.s.boxByCode[b.Code] = b.ID
		return nil
	}

	// El bloqueo del código serializa creaciones concurrentes con el mismo código.
	if err := r.tx.lock(ctx, "box_code:"+b.Code); err != nil {
		return err
	}
	r.s.mu.RLock()
	_, taken := r.s.boxByCode[b.Code]
	r.s.mu.RUnlock()
	if !taken {
		for _, nb := range r.tx.newBoxes {
			if nb.Code == b.Code {
				taken = true
				break
			}
		}
	}
	if taken {
		return domain.DuplicateBoxCode(b.Code)
	}
	r.tx.newBoxes[b.ID] = cloneBox(b)
	r.tx.boxOrder = append(r.tx.boxOrder, b.ID)
	return nil
}

func (r *BoxRepo) GetByID(_ context.Context, id string) (*entity.Box, error) {
	if r.tx != nil {
		if b, ok := r.tx.updatedBoxes[id]; ok {
			return cloneBox(b), nil
		}
		if b, ok := r.tx.newBoxes[id]; ok {
			return cloneBox(b), nil
		}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.boxes[id]
	if !ok {
		return nil, nil
	}
	return cloneBox(b), nil
}

func (r *BoxRepo) GetForUpdate(ctx context.Context, id string) (*entity.Box, error) {
	if r.tx != nil {
		if err := r.tx.lock(ctx, "box:"+id); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

func (r *BoxRepo) GetByCode(ctx context.Context, code string) (*entity.Box, error) {
	r.s.mu.RLock()
	id, ok := r.s.boxByCode[code]
	r.s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// MarkCheckedIn solo aplica sobre una caja existente en pending_checkin.
func (r *BoxRepo) MarkCheckedIn(ctx context.Context, b *entity.Box) error {
	current, err := r.GetByID(ctx, b.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.BoxNotFound(b.ID)
	}
	if !current.IsPending() {
		return domain.AlreadyCheckedIn(b.ID, current.Status)
	}
	if r.tx != nil {
		r.tx.updatedBoxes[b.ID] = cloneBox(b)
		return nil
	}
	r.s.mu.Lock()
	r.s.boxes[b.ID] = cloneBox(b)
	r.s.mu.Unlock()
	return nil
}

// List ordena por fecha de recepción descendente.
func (r *BoxRepo) List(_ context.Context, f repository.BoxFilter) ([]*entity.Box, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(f.Search))
	var list []*entity.Box
	for _, b := range r.s.boxes {
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if f.StoreID != "" && b.StoreID != f.StoreID {
			continue
		}
		if q != "" && !matchesBox(b, q) {
			continue
		}
		list = append(list, cloneBox(b))
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].ReceivedDate.Equal(list[j].ReceivedDate) {
			return list[i].ReceivedDate.After(list[j].ReceivedDate)
		}
		return list[i].Code < list[j].Code
	})
	from, to := page(len(list), f.Limit, f.Offset)
	return list[from:to], nil
}

func matchesBox(b *entity.Box, q string) bool {
	for _, field := range []string{b.Code, b.Supplier, b.PONumber} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func (r *BoxRepo) NextSequence(_ context.Context, year int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sequences[year]++
	return r.s.sequences[year], nil
}

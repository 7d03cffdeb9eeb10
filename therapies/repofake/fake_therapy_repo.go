package repofake

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dovewell/wellness-server/internal/errors"
	"github.com/dovewell/wellness-server/therapies"
)

var _ therapies.Repo = (*FakeTherapyRepo)(nil)

type FakeTherapyRepo struct {
	therapies map[string]*therapies.Therapy
	lock      sync.RWMutex
}

func NewFakeTherapyRepo() *FakeTherapyRepo {
	return &FakeTherapyRepo{therapies: make(map[string]*therapies.Therapy)}
}

func (r *FakeTherapyRepo) Create(_ context.Context, therapy *therapies.Therapy) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if therapy.ID == "" {
		therapy.ID = uuid.New().String()
	}
	if therapy.CreatedAt.IsZero() {
		therapy.CreatedAt = time.Now().UTC()
	}
	cp := *therapy
	r.therapies[therapy.ID] = &cp
	return nil
}

func (r *FakeTherapyRepo) Update(_ context.Context, id string, update therapies.Update) (*therapies.Therapy, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	therapy, ok := r.therapies[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	if update.Name != nil {
		therapy.Name = *update.Name
	}
	if update.ShortDescription != nil {
		therapy.ShortDescription = *update.ShortDescription
	}
	if update.FullDescription != nil {
		therapy.FullDescription = *update.FullDescription
	}
	if update.ImageURL != nil {
		therapy.ImageURL = *update.ImageURL
	}
	if update.Icon != nil {
		therapy.Icon = *update.Icon
	}
	if update.DisplayOrder != nil {
		therapy.DisplayOrder = *update.DisplayOrder
	}
	if update.IsActive != nil {
		therapy.IsActive = *update.IsActive
	}
	cp := *therapy
	return &cp, nil
}

func (r *FakeTherapyRepo) Delete(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.therapies[id]; !ok {
		return errors.ErrNotFound
	}
	delete(r.therapies, id)
	return nil
}

func (r *FakeTherapyRepo) GetByID(_ context.Context, id string) (*therapies.Therapy, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	therapy, ok := r.therapies[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	cp := *therapy
	return &cp, nil
}

func (r *FakeTherapyRepo) List(_ context.Context, activeOnly bool) ([]*therapies.Therapy, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	result := make([]*therapies.Therapy, 0, len(r.therapies))
	for _, therapy := range r.therapies {
		if activeOnly && !therapy.IsActive {
			continue
		}
		cp := *therapy
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].DisplayOrder != result[j].DisplayOrder {
			return result[i].DisplayOrder < result[j].DisplayOrder
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

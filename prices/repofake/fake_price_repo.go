package repofake

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dovewell/wellness-server/internal/errors"
	"github.com/dovewell/wellness-server/prices"
)

var _ prices.Repo = (*FakePriceRepo)(nil)

type FakePriceRepo struct {
	prices map[string]*prices.Price
	lock   sync.RWMutex
}

func NewFakePriceRepo() *FakePriceRepo {
	return &FakePriceRepo{prices: make(map[string]*prices.Price)}
}

func (r *FakePriceRepo) Create(_ context.Context, price *prices.Price) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if price.ID == "" {
		price.ID = uuid.New().String()
	}
	if price.CreatedAt.IsZero() {
		price.CreatedAt = time.Now().UTC()
	}
	cp := *price
	r.prices[price.ID] = &cp
	return nil
}

func (r *FakePriceRepo) Update(_ context.Context, id string, update prices.Update) (*prices.Price, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	price, ok := r.prices[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	if update.TherapyID != nil {
		price.TherapyID = *update.TherapyID
	}
	if update.Name != nil {
		price.Name = *update.Name
	}
	if update.Duration != nil {
		price.Duration = *update.Duration
	}
	if update.Price != nil {
		price.Price = *update.Price
	}
	if update.Description != nil {
		price.Description = *update.Description
	}
	if update.DisplayOrder != nil {
		price.DisplayOrder = *update.DisplayOrder
	}
	if update.IsActive != nil {
		price.IsActive = *update.IsActive
	}
	cp := *price
	return &cp, nil
}

func (r *FakePriceRepo) Delete(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.prices[id]; !ok {
		return errors.ErrNotFound
	}
	delete(r.prices, id)
	return nil
}

func (r *FakePriceRepo) DeleteByTherapy(_ context.Context, therapyID string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	for id, price := range r.prices {
		if price.TherapyID == therapyID {
			delete(r.prices, id)
		}
	}
	return nil
}

func (r *FakePriceRepo) GetByID(_ context.Context, id string) (*prices.Price, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	price, ok := r.prices[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	cp := *price
	return &cp, nil
}

func (r *FakePriceRepo) List(_ context.Context, filter prices.Filter) ([]*prices.Price, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	result := make([]*prices.Price, 0, len(r.prices))
	for _, price := range r.prices {
		if filter.ActiveOnly && !price.IsActive {
			continue
		}
		if filter.TherapyID != "" && price.TherapyID != filter.TherapyID {
			continue
		}
		cp := *price
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

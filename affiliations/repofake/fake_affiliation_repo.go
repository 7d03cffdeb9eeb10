package repofake

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dovewell/wellness-server/affiliations"
	"github.com/dovewell/wellness-server/internal/errors"
)

var _ affiliations.Repo = (*FakeAffiliationRepo)(nil)

type FakeAffiliationRepo struct {
	affiliations map[string]*affiliations.Affiliation
	lock         sync.RWMutex
}

func NewFakeAffiliationRepo() *FakeAffiliationRepo {
	return &FakeAffiliationRepo{affiliations: make(map[string]*affiliations.Affiliation)}
}

func (r *FakeAffiliationRepo) Create(_ context.Context, affiliation *affiliations.Affiliation) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if affiliation.ID == "" {
		affiliation.ID = uuid.New().String()
	}
	if affiliation.CreatedAt.IsZero() {
		affiliation.CreatedAt = time.Now().UTC()
	}
	cp := *affiliation
	r.affiliations[affiliation.ID] = &cp
	return nil
}

func (r *FakeAffiliationRepo) Update(_ context.Context, id string, update affiliations.Update) (*affiliations.Affiliation, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	affiliation, ok := r.affiliations[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	if update.Name != nil {
		affiliation.Name = *update.Name
	}
	if update.LogoURL != nil {
		affiliation.LogoURL = *update.LogoURL
	}
	if update.WebsiteURL != nil {
		affiliation.WebsiteURL = *update.WebsiteURL
	}
	if update.DisplayOrder != nil {
		affiliation.DisplayOrder = *update.DisplayOrder
	}
	if update.IsActive != nil {
		affiliation.IsActive = *update.IsActive
	}
	cp := *affiliation
	return &cp, nil
}

func (r *FakeAffiliationRepo) Delete(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.affiliations[id]; !ok {
		return errors.ErrNotFound
	}
	delete(r.affiliations, id)
	return nil
}

func (r *FakeAffiliationRepo) GetByID(_ context.Context, id string) (*affiliations.Affiliation, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	affiliation, ok := r.affiliations[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	cp := *affiliation
	return &cp, nil
}

func (r *FakeAffiliationRepo) List(_ context.Context, activeOnly bool) ([]*affiliations.Affiliation, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	result := make([]*affiliations.Affiliation, 0, len(r.affiliations))
	for _, affiliation := range r.affiliations {
		if activeOnly && !affiliation.IsActive {
			continue
		}
		cp := *affiliation
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

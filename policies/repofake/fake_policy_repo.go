package repofake

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dovewell/wellness-server/internal/errors"
	"github.com/dovewell/wellness-server/policies"
)

var _ policies.Repo = (*FakePolicyRepo)(nil)

type FakePolicyRepo struct {
	policies map[string]*policies.Policy
	lock     sync.RWMutex
}

func NewFakePolicyRepo() *FakePolicyRepo {
	return &FakePolicyRepo{policies: make(map[string]*policies.Policy)}
}

func (r *FakePolicyRepo) Create(_ context.Context, policy *policies.Policy) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	for _, existing := range r.policies {
		if existing.Slug == policy.Slug {
			return errors.ErrAlreadyExists
		}
	}
	if policy.ID == "" {
		policy.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if policy.CreatedAt.IsZero() {
		policy.CreatedAt = now
	}
	if policy.UpdatedAt.IsZero() {
		policy.UpdatedAt = now
	}
	cp := *policy
	r.policies[policy.ID] = &cp
	return nil
}

func (r *FakePolicyRepo) Update(_ context.Context, id string, update policies.Update) (*policies.Policy, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	policy, ok := r.policies[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	if update.Slug != nil {
		for otherID, existing := range r.policies {
			if otherID != id && existing.Slug == *update.Slug {
				return nil, errors.ErrAlreadyExists
			}
		}
		policy.Slug = *update.Slug
	}
	if update.Title != nil {
		policy.Title = *update.Title
	}
	if update.Content != nil {
		policy.Content = *update.Content
	}
	if update.DisplayOrder != nil {
		policy.DisplayOrder = *update.DisplayOrder
	}
	if update.IsActive != nil {
		policy.IsActive = *update.IsActive
	}
	policy.UpdatedAt = time.Now().UTC()
	cp := *policy
	return &cp, nil
}

func (r *FakePolicyRepo) Delete(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.policies[id]; !ok {
		return errors.ErrNotFound
	}
	delete(r.policies, id)
	return nil
}

func (r *FakePolicyRepo) GetByID(_ context.Context, id string) (*policies.Policy, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	policy, ok := r.policies[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	cp := *policy
	return &cp, nil
}

func (r *FakePolicyRepo) GetBySlug(_ context.Context, slug string) (*policies.Policy, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	for _, policy := range r.policies {
		if policy.Slug == slug {
			cp := *policy
			return &cp, nil
		}
	}
	return nil, errors.ErrNotFound
}

func (r *FakePolicyRepo) List(_ context.Context, activeOnly bool) ([]*policies.Policy, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	result := make([]*policies.Policy, 0, len(r.policies))
	for _, policy := range r.policies {
		if activeOnly && !policy.IsActive {
			continue
		}
		cp := *policy
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].DisplayOrder != result[j].DisplayOrder {
			return result[i].DisplayOrder < result[j].DisplayOrder
		}
		return result[i].Title < result[j].Title
	})
	return result, nil
}

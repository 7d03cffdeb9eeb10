package repofake

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dovewell/wellness-server/internal/errors"
	"github.com/dovewell/wellness-server/users"
)

var _ users.Repo = (*FakeUserRepo)(nil)

// FakeUserRepo is an in-memory credential store for tests.
type FakeUserRepo struct {
	users map[string]*users.AdminUser
	lock  sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users: make(map[string]*users.AdminUser),
	}
}

func (r *FakeUserRepo) Create(_ context.Context, user *users.AdminUser) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return errors.ErrAlreadyExists
		}
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *FakeUserRepo) Update(_ context.Context, id string, update users.Update) (*users.AdminUser, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.PasswordHash != nil {
		user.PasswordHash = *update.PasswordHash
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}
	cp := *user
	return &cp, nil
}

func (r *FakeUserRepo) Delete(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.users[id]; !ok {
		return errors.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *FakeUserRepo) GetByID(_ context.Context, id string) (*users.AdminUser, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *FakeUserRepo) GetByUsername(_ context.Context, username string) (*users.AdminUser, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			cp := *user
			return &cp, nil
		}
	}
	return nil, errors.ErrNotFound
}

func (r *FakeUserRepo) GetByEmail(_ context.Context, email string) (*users.AdminUser, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, errors.ErrNotFound
}

func (r *FakeUserRepo) List(_ context.Context) ([]*users.AdminUser, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	result := make([]*users.AdminUser, 0, len(r.users))
	for _, user := range r.users {
		cp := *user
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Username < result[j].Username })
	return result, nil
}

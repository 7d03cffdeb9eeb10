package repofake

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dovewell/wellness-server/contacts"
	"github.com/dovewell/wellness-server/internal/errors"
)

var _ contacts.Repo = (*FakeContactRepo)(nil)

type FakeContactRepo struct {
	submissions map[string]*contacts.Submission
	lock        sync.RWMutex
}

func NewFakeContactRepo() *FakeContactRepo {
	return &FakeContactRepo{submissions: make(map[string]*contacts.Submission)}
}

func (r *FakeContactRepo) Create(_ context.Context, submission *contacts.Submission) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if submission.ID == "" {
		submission.ID = uuid.New().String()
	}
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = time.Now().UTC()
	}
	cp := *submission
	r.submissions[submission.ID] = &cp
	return nil
}

func (r *FakeContactRepo) Update(_ context.Context, id string, update contacts.Update) (*contacts.Submission, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	submission, ok := r.submissions[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	if update.IsRead != nil {
		submission.IsRead = *update.IsRead
	}
	if update.Notes != nil {
		submission.Notes = *update.Notes
	}
	cp := *submission
	return &cp, nil
}

func (r *FakeContactRepo) Delete(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.submissions[id]; !ok {
		return errors.ErrNotFound
	}
	delete(r.submissions, id)
	return nil
}

func (r *FakeContactRepo) GetByID(_ context.Context, id string) (*contacts.Submission, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	submission, ok := r.submissions[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	cp := *submission
	return &cp, nil
}

func (r *FakeContactRepo) List(_ context.Context, unreadOnly bool) ([]*contacts.Submission, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	result := make([]*contacts.Submission, 0, len(r.submissions))
	for _, submission := range r.submissions {
		if unreadOnly && submission.IsRead {
			continue
		}
		cp := *submission
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

package repofake

import (
	"context"
	"sync"
	"time"

	"github.com/dovewell/wellness-server/internal/errors"
	"github.com/dovewell/wellness-server/settings"
)

var _ settings.Repo = (*FakeSettingsRepo)(nil)

type FakeSettingsRepo struct {
	stored *settings.Settings
	lock   sync.RWMutex
}

func NewFakeSettingsRepo() *FakeSettingsRepo {
	return &FakeSettingsRepo{}
}

func (r *FakeSettingsRepo) Get(_ context.Context) (*settings.Settings, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if r.stored == nil {
		return nil, errors.ErrNotFound
	}
	cp := *r.stored
	return &cp, nil
}

func (r *FakeSettingsRepo) Upsert(_ context.Context, update settings.Update) (*settings.Settings, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.stored == nil {
		r.stored = settings.Defaults()
	}
	if update.BusinessName != nil {
		r.stored.BusinessName = *update.BusinessName
	}
	if update.Tagline != nil {
		r.stored.Tagline = *update.Tagline
	}
	if update.Email != nil {
		r.stored.Email = *update.Email
	}
	if update.Phone != nil {
		r.stored.Phone = *update.Phone
	}
	if update.Address != nil {
		r.stored.Address = *update.Address
	}
	if update.SocialLinks != nil {
		r.stored.SocialLinks = *update.SocialLinks
	}
	r.stored.UpdatedAt = time.Now().UTC()
	cp := *r.stored
	return &cp, nil
}

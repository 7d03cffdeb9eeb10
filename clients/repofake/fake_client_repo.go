package repofake

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dovewell/wellness-server/clients"
	"github.com/dovewell/wellness-server/internal/errors"
)

var _ clients.Repo = (*FakeClientRepo)(nil)

type FakeClientRepo struct {
	clients map[string]*clients.Client
	notes   map[string]*clients.Note
	lock    sync.RWMutex
}

func NewFakeClientRepo() *FakeClientRepo {
	return &FakeClientRepo{
		clients: make(map[string]*clients.Client),
		notes:   make(map[string]*clients.Note),
	}
}

func (r *FakeClientRepo) Create(_ context.Context, client *clients.Client) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if client.ID == "" {
		client.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if client.CreatedAt.IsZero() {
		client.CreatedAt = now
	}
	if client.UpdatedAt.IsZero() {
		client.UpdatedAt = now
	}
	cp := *client
	r.clients[client.ID] = &cp
	return nil
}

func (r *FakeClientRepo) Update(_ context.Context, id string, update clients.Update) (*clients.Client, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	client, ok := r.clients[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	if update.FirstName != nil {
		client.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		client.LastName = *update.LastName
	}
	if update.Email != nil {
		client.Email = *update.Email
	}
	if update.Phone != nil {
		client.Phone = *update.Phone
	}
	if update.Address != nil {
		client.Address = *update.Address
	}
	if update.DateOfBirth != nil {
		client.DateOfBirth = *update.DateOfBirth
	}
	if update.MedicalNotes != nil {
		client.MedicalNotes = *update.MedicalNotes
	}
	client.UpdatedAt = time.Now().UTC()
	cp := *client
	return &cp, nil
}

func (r *FakeClientRepo) Delete(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.clients[id]; !ok {
		return errors.ErrNotFound
	}
	delete(r.clients, id)
	for noteID, note := range r.notes {
		if note.ClientID == id {
			delete(r.notes, noteID)
		}
	}
	return nil
}

func (r *FakeClientRepo) GetByID(_ context.Context, id string) (*clients.Client, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	client, ok := r.clients[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	cp := *client
	return &cp, nil
}

func (r *FakeClientRepo) List(_ context.Context, search string) ([]*clients.Client, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	term := strings.ToLower(search)
	result := make([]*clients.Client, 0, len(r.clients))
	for _, client := range r.clients {
		if term != "" && !matches(client, term) {
			continue
		}
		cp := *client
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].LastName != result[j].LastName {
			return result[i].LastName < result[j].LastName
		}
		return result[i].FirstName < result[j].FirstName
	})
	return result, nil
}

func matches(client *clients.Client, term string) bool {
	for _, field := range []string{client.FirstName, client.LastName, client.Email, client.Phone} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func (r *FakeClientRepo) CreateNote(_ context.Context, note *clients.Note) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.clients[note.ClientID]; !ok {
		return errors.ErrNotFound
	}
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now().UTC()
	}
	cp := *note
	r.notes[note.ID] = &cp
	return nil
}

func (r *FakeClientRepo) UpdateNote(_ context.Context, id string, update clients.NoteUpdate) (*clients.Note, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	note, ok := r.notes[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	if update.Note != nil {
		note.Note = *update.Note
	}
	if update.SessionDate != nil {
		note.SessionDate = *update.SessionDate
	}
	cp := *note
	return &cp, nil
}

func (r *FakeClientRepo) DeleteNote(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.notes[id]; !ok {
		return errors.ErrNotFound
	}
	delete(r.notes, id)
	return nil
}

func (r *FakeClientRepo) GetNoteByID(_ context.Context, id string) (*clients.Note, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	note, ok := r.notes[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	cp := *note
	return &cp, nil
}

func (r *FakeClientRepo) ListNotes(_ context.Context, clientID string) ([]*clients.Note, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	var result []*clients.Note
	for _, note := range r.notes {
		if note.ClientID != clientID {
			continue
		}
		cp := *note
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

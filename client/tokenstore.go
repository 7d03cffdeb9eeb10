package client

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/dovewell/wellness-server/token"
)

// TokenStore holds the caller's current token pair. Implementations must be
// safe for concurrent use; a failed renewal clears the store, returning the
// caller to an unauthenticated state.
type TokenStore interface {
	Load() (*token.Pair, bool)
	Save(pair *token.Pair) error
	Clear() error
}

// MemoryStore keeps the pair in process memory. The zero value is usable.
type MemoryStore struct {
	mu   sync.RWMutex
	pair *token.Pair
}

var _ TokenStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (*token.Pair, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pair == nil {
		return nil, false
	}
	cp := *s.pair
	return &cp, true
}

func (s *MemoryStore) Save(pair *token.Pair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *pair
	s.pair = &cp
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = nil
	return nil
}

// FileStore persists the pair as a JSON file so a CLI session survives
// process restarts. The file is created with 0600 permissions.
type FileStore struct {
	mu   sync.Mutex
	path string
}

var _ TokenStore = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (*token.Pair, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, false
	}
	var pair token.Pair
	if err := json.Unmarshal(raw, &pair); err != nil || pair.AccessToken == "" {
		return nil, false
	}
	return &pair, true
}

func (s *FileStore) Save(pair *token.Pair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("marshal token pair: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

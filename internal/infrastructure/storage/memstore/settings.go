package memstore

import (
	"context"
	"sync"

	"edr/internal/core/apperror"
	"edr/internal/domain/settings"
)

// SettingsStore holds the single settings record.
type SettingsStore struct {
	mu    sync.RWMutex
	saved *settings.Settings
}

// NewSettingsStore creates an empty store; Get returns not-found until
// the first Save.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{}
}

// Get implements settings.Store.
func (s *SettingsStore) Get(ctx context.Context) (*settings.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.saved == nil {
		return nil, apperror.NewNotFound("settings", settings.Key)
	}
	cp := *s.saved
	return &cp, nil
}

// Save implements settings.Store.
func (s *SettingsStore) Save(ctx context.Context, cfg *settings.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *cfg
	s.saved = &cp
	return nil
}

var _ settings.Store = (*SettingsStore)(nil)

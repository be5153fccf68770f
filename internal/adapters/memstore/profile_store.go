// Package memstore provides an in-process ProfileStore for local development
// without Redis.
package memstore

import (
	"context"
	"errors"
	"sync"

	domainuser "github.com/target/mmk-usersession/internal/domain/user"
	apperrors "github.com/target/mmk-usersession/internal/errors"
	"github.com/target/mmk-usersession/internal/ports"
)

var _ ports.ProfileStore = (*ProfileStore)(nil)

// ProfileStore holds deep copies of profiles keyed by user id.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]domainuser.Record
}

// NewProfileStore creates an empty store.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{profiles: make(map[string]domainuser.Record)}
}

func (s *ProfileStore) Get(_ context.Context, userID string) (domainuser.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.profiles[userID]
	if !ok {
		return nil, apperrors.NotFoundf("profile %s not found", userID)
	}
	return domainuser.Clone(rec), nil
}

func (s *ProfileStore) Save(_ context.Context, userID string, rec domainuser.Record) error {
	if userID == "" {
		return errors.New("user id cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[userID] = domainuser.Clone(rec)
	return nil
}

func (s *ProfileStore) SetLastPage(_ context.Context, userID, lastPage string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.profiles[userID]
	if !ok {
		return apperrors.NotFoundf("profile %s not found", userID)
	}
	rec[domainuser.FieldLastPage] = lastPage
	return nil
}

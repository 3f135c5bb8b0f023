// Package memory provides an in-process campaign.Store backed by a map.
//
// It doubles as the deterministic fake for unit tests (with injectable
// failures) and as the zero-infrastructure backend for dev mode. It is not
// durable across restarts; production deployments use the redis, postgres,
// or dynamo store.
package memory

import (
	"context"
	"sync"

	"github.com/ignite/crowdfund/internal/domain"
	"github.com/ignite/crowdfund/internal/service/campaign"
)

// Store is a mutex-guarded in-memory campaign store.
type Store struct {
	mu        sync.RWMutex
	campaigns map[string]*domain.Campaign // keyed by id
	failErr   error
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{campaigns: make(map[string]*domain.Campaign)}
}

// FailWith makes every subsequent operation return err until cleared with
// FailWith(nil). Test hook for exercising storage-failure paths.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

// Len returns the number of stored campaigns.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.campaigns)
}

// Get returns a copy of the campaign stored under id.
func (s *Store) Get(_ context.Context, id string) (*domain.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	c, ok := s.campaigns[id]
	if !ok {
		return nil, campaign.ErrNotFound
	}
	return c.Clone(), nil
}

// Put stores a copy of the campaign under its ID.
func (s *Store) Put(_ context.Context, c *domain.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}
	s.campaigns[c.ID] = c.Clone()
	return nil
}

// Delete removes and returns the campaign stored under id.
func (s *Store) Delete(_ context.Context, id string) (*domain.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return nil, s.failErr
	}
	c, ok := s.campaigns[id]
	if !ok {
		return nil, campaign.ErrNotFound
	}
	delete(s.campaigns, id)
	return c, nil
}

package ranking

import (
	"context"
	"sync"
)

// MemStore is an in-memory Store for tests and examples.
type MemStore struct {
	mu       sync.RWMutex
	rankings map[string]*LeagueRanking
	profiles map[string]*UserProfile
}

func NewMemStore() *MemStore {
	return &MemStore{
		rankings: map[string]*LeagueRanking{},
		profiles: map[string]*UserProfile{},
	}
}

func (m *MemStore) PutRanking(r *LeagueRanking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rankings[r.LeagueID] = r
}

func (m *MemStore) PutProfile(p *UserProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.UserID] = p
}

func (m *MemStore) Rankings(_ context.Context, leagueID string) (*LeagueRanking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.rankings[leagueID]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

func (m *MemStore) Profile(_ context.Context, userID string) (*UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

var _ Store = (*MemStore)(nil)

package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/dri-core/internal/core/domain"
	"github.com/custodia-labs/dri-core/internal/core/ports/driven"
)

var _ driven.Leaderboard = (*MockLeaderboard)(nil)

// MockLeaderboard is an in-memory ranked index for testing
type MockLeaderboard struct {
	mu       sync.RWMutex
	entries  map[int64]domain.LeaderboardEntry
	Replaced int
}

// NewMockLeaderboard creates a new MockLeaderboard
func NewMockLeaderboard() *MockLeaderboard {
	return &MockLeaderboard{entries: make(map[int64]domain.LeaderboardEntry)}
}

func (m *MockLeaderboard) Upsert(ctx context.Context, entry domain.LeaderboardEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.CompanyID] = entry
	return nil
}

func (m *MockLeaderboard) Remove(ctx context.Context, companyID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, companyID)
	return nil
}

func (m *MockLeaderboard) Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]domain.LeaderboardEntry, 0, len(m.entries))
	for _, e := range m.entries {
		result = append(result, e)
	}
	domain.SortLeaderboard(result)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *MockLeaderboard) Replace(ctx context.Context, entries []domain.LeaderboardEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[int64]domain.LeaderboardEntry, len(entries))
	for _, e := range entries {
		m.entries[e.CompanyID] = e
	}
	m.Replaced++
	return nil
}

// Len returns the number of indexed companies
func (m *MockLeaderboard) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

var _ driven.ScoreCache = (*MockScoreCache)(nil)

type scoreKey struct {
	id      int64
	version int64
}

// MockScoreCache is an in-memory ScoreCache for testing
type MockScoreCache struct {
	mu      sync.Mutex
	results map[scoreKey]domain.ScoreResult
	Hits    int
	Misses  int
}

// NewMockScoreCache creates a new MockScoreCache
func NewMockScoreCache() *MockScoreCache {
	return &MockScoreCache{results: make(map[scoreKey]domain.ScoreResult)}
}

func (m *MockScoreCache) Get(ctx context.Context, companyID int64, version time.Time) (*domain.ScoreResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.results[scoreKey{companyID, version.UnixNano()}]
	if !ok {
		m.Misses++
		return nil, domain.ErrNotFound
	}
	m.Hits++
	return &r, nil
}

func (m *MockScoreCache) Set(ctx context.Context, companyID int64, version time.Time, result domain.ScoreResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[scoreKey{companyID, version.UnixNano()}] = result
	return nil
}

func (m *MockScoreCache) Invalidate(ctx context.Context, companyID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.results {
		if k.id == companyID {
			delete(m.results, k)
		}
	}
	return nil
}

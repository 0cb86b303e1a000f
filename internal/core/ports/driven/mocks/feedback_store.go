package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/dri-core/internal/core/domain"
	"github.com/custodia-labs/dri-core/internal/core/ports/driven"
)

var _ driven.FeedbackStore = (*MockFeedbackStore)(nil)

// MockFeedbackStore is a mock implementation of FeedbackStore for testing
type MockFeedbackStore struct {
	mu      sync.RWMutex
	entries []*domain.Feedback

	// LastFilter is the filter passed to the most recent List call
	LastFilter domain.FeedbackFilter

	// Custom behavior hooks (optional)
	SaveFn func(fb *domain.Feedback) error
}

// NewMockFeedbackStore creates a new MockFeedbackStore
func NewMockFeedbackStore() *MockFeedbackStore {
	return &MockFeedbackStore{}
}

func (m *MockFeedbackStore) Save(ctx context.Context, fb *domain.Feedback) error {
	if m.SaveFn != nil {
		return m.SaveFn(fb)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, fb)
	return nil
}

func (m *MockFeedbackStore) List(ctx context.Context, filter domain.FeedbackFilter) ([]*domain.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastFilter = filter

	var result []*domain.Feedback
	for i := len(m.entries) - 1; i >= 0; i-- {
		fb := m.entries[i]
		if filter.Route != "" && fb.Route != filter.Route {
			continue
		}
		if filter.IndicatorName != "" && (fb.IndicatorName == nil || *fb.IndicatorName != filter.IndicatorName) {
			continue
		}
		result = append(result, fb)
		if filter.Limit > 0 && len(result) == filter.Limit {
			break
		}
	}
	return result, nil
}

// Count returns the number of stored entries
func (m *MockFeedbackStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

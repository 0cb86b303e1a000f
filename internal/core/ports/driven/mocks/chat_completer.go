package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/dri-core/internal/core/domain"
	"github.com/custodia-labs/dri-core/internal/core/ports/driven"
)

var _ driven.ChatCompleter = (*MockChatCompleter)(nil)

// MockChatCompleter records requests and returns a canned reply
type MockChatCompleter struct {
	mu       sync.Mutex
	requests []domain.CompletionRequest

	Reply  string
	Err    error
	Closed bool

	// Custom behavior hooks (optional)
	CompleteFn func(req domain.CompletionRequest) (string, error)
	PingFn     func() error
}

// NewMockChatCompleter creates a completer that always answers reply
func NewMockChatCompleter(reply string) *MockChatCompleter {
	return &MockChatCompleter{Reply: reply}
}

func (m *MockChatCompleter) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.CompleteFn != nil {
		return m.CompleteFn(req)
	}
	return m.Reply, m.Err
}

func (m *MockChatCompleter) Model() string {
	return "mock-model"
}

func (m *MockChatCompleter) Ping(ctx context.Context) error {
	if m.PingFn != nil {
		return m.PingFn()
	}
	return nil
}

func (m *MockChatCompleter) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// Requests returns every request received so far
func (m *MockChatCompleter) Requests() []domain.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.CompletionRequest(nil), m.requests...)
}

// LastRequest returns the most recent request
func (m *MockChatCompleter) LastRequest() (domain.CompletionRequest, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return domain.CompletionRequest{}, false
	}
	return m.requests[len(m.requests)-1], true
}

package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/dri-core/internal/core/domain"
	"github.com/custodia-labs/dri-core/internal/core/ports/driven"
)

var _ driven.CompanyStore = (*MockCompanyStore)(nil)

// MockCompanyStore is a mock implementation of CompanyStore for testing.
// Stored companies are copies so tests can detect missing Update calls.
type MockCompanyStore struct {
	mu        sync.RWMutex
	companies map[int64]*domain.Company
	nextID    int64

	// Custom behavior hooks (optional)
	CreateFn func(company *domain.Company) error
}

// NewMockCompanyStore creates a new MockCompanyStore
func NewMockCompanyStore() *MockCompanyStore {
	return &MockCompanyStore{
		companies: make(map[int64]*domain.Company),
		nextID:    1,
	}
}

func (m *MockCompanyStore) Create(ctx context.Context, company *domain.Company) error {
	if m.CreateFn != nil {
		return m.CreateFn(company)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	company.ID = m.nextID
	m.nextID++
	m.companies[company.ID] = company.Snapshot()
	return nil
}

func (m *MockCompanyStore) Get(ctx context.Context, id int64) (*domain.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	company, ok := m.companies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return company.Snapshot(), nil
}

func (m *MockCompanyStore) List(ctx context.Context) ([]*domain.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Company, 0, len(m.companies))
	for _, c := range m.companies {
		result = append(result, c.Snapshot())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MockCompanyStore) Update(ctx context.Context, company *domain.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.companies[company.ID]; !ok {
		return domain.ErrNotFound
	}
	m.companies[company.ID] = company.Snapshot()
	return nil
}

func (m *MockCompanyStore) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.companies[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.companies, id)
	return nil
}

// Put stores a company as-is (for test setup)
func (m *MockCompanyStore) Put(company *domain.Company) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.companies[company.ID] = company.Snapshot()
	if company.ID >= m.nextID {
		m.nextID = company.ID + 1
	}
}

// Count returns the number of stored companies
func (m *MockCompanyStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.companies)
}

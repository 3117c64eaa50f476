package service_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// memKV is an in-memory [port.KVStore] with local-storage semantics:
// deleting an absent key succeeds, reading one yields ErrNotFound.
type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (s *memKV) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.data[key]
	if !ok {
		return nil, port.ErrNotFound
	}
	return b, nil
}

func (s *memKV) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *memKV) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

type MockCatalogSource struct {
	mock.Mock
}

func (m *MockCatalogSource) Products(
	ctx context.Context, query string, limit, skip int,
) ([]domain.Product, error) {
	args := m.Called(ctx, query, limit, skip)
	ps, _ := args.Get(0).([]domain.Product)
	return ps, args.Error(1)
}

func (m *MockCatalogSource) Product(
	ctx context.Context, id int,
) (domain.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(domain.Product)
	return p, args.Error(1)
}

func (m *MockCatalogSource) Suggestions(
	ctx context.Context, query string, limit int,
) ([]domain.Product, error) {
	args := m.Called(ctx, query, limit)
	ps, _ := args.Get(0).([]domain.Product)
	return ps, args.Error(1)
}

// eventsRecorder collects produced client events.
type eventsRecorder struct {
	mu     sync.Mutex
	events []domain.ClientEvent
}

func (r *eventsRecorder) ProduceEvent(
	_ context.Context, e domain.ClientEvent,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *eventsRecorder) byType(t domain.ClientEventType) []domain.ClientEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ClientEvent
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// stubProvider resolves products from a fixed set.
type stubProvider struct {
	products map[domain.ProductRef]domain.Product
}

func newStubProvider(ps ...domain.Product) stubProvider {
	m := make(map[domain.ProductRef]domain.Product, len(ps))
	for _, p := range ps {
		m[p.Ref] = p
	}
	return stubProvider{m}
}

func (s stubProvider) Product(
	_ context.Context, ref domain.ProductRef,
) (domain.Product, bool) {
	p, ok := s.products[ref]
	return p, ok
}

func (s stubProvider) Similar(
	context.Context, domain.ProductRef, int,
) []domain.Product {
	return nil
}

func storeRef(id int) domain.ProductRef {
	return domain.ProductRef{Source: domain.SourceStore, ID: id}
}

func externalRef(id int) domain.ProductRef {
	return domain.ProductRef{Source: domain.SourceDummyJSON, ID: id}
}

package services

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"

	"github.com/gastromap/catalog/cache"
	"github.com/gastromap/catalog/storage"
)

// mockStore is an in-memory Store implementation that tracks method calls
// so tests can verify which paths hit the store and which were served from
// cache.
type mockStore[T any] struct {
	mu      sync.Mutex
	records map[string]*T
	calls   map[string]int
	getID   func(*T) string
	setID   func(*T, string)
	// loadRelations populates relation fields on lookups that pass select
	// criteria, standing in for bun's eager loading.
	loadRelations func(*T)
}

func newMockStore[T any](getID func(*T) string, setID func(*T, string)) *mockStore[T] {
	return &mockStore[T]{
		records: make(map[string]*T),
		calls:   make(map[string]int),
		getID:   getID,
		setID:   setID,
	}
}

func (m *mockStore[T]) trackCall(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[method]++
}

func (m *mockStore[T]) callCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// put seeds a record without counting as a call.
func (m *mockStore[T]) put(record *T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[m.getID(record)] = cache.Snapshot(record)
}

// drop removes a record without counting as a call.
func (m *mockStore[T]) drop(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
}

func (m *mockStore[T]) FindByID(ctx context.Context, id string, criteria ...repository.SelectCriteria) (*T, error) {
	m.trackCall("FindByID")
	m.mu.Lock()
	record, ok := m.records[id]
	m.mu.Unlock()
	if !ok {
		return nil, nil
	}
	clone := cache.Snapshot(record)
	if len(criteria) > 0 && m.loadRelations != nil {
		m.loadRelations(clone)
	}
	return clone, nil
}

func (m *mockStore[T]) FindAll(ctx context.Context, criteria ...repository.SelectCriteria) ([]*T, error) {
	m.trackCall("FindAll")
	m.mu.Lock()
	ids := make([]string, 0, len(m.records))
	for id := range m.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	records := make([]*T, 0, len(ids))
	for _, id := range ids {
		records = append(records, cache.Snapshot(m.records[id]))
	}
	m.mu.Unlock()
	return records, nil
}

func (m *mockStore[T]) Save(ctx context.Context, record *T) (*T, error) {
	m.trackCall("Save")
	if m.getID(record) == "" {
		m.setID(record, uuid.NewString())
	}
	m.mu.Lock()
	m.records[m.getID(record)] = cache.Snapshot(record)
	m.mu.Unlock()
	return record, nil
}

func (m *mockStore[T]) Remove(ctx context.Context, record *T) error {
	m.trackCall("Remove")
	m.mu.Lock()
	delete(m.records, m.getID(record))
	m.mu.Unlock()
	return nil
}

var _ storage.Store[struct{}] = (*mockStore[struct{}])(nil)

// mockEdges is an in-memory EdgeStore.
type mockEdges struct {
	mu    sync.Mutex
	edges map[string]map[string]bool
	calls map[string]int
}

func newMockEdges() *mockEdges {
	return &mockEdges{
		edges: make(map[string]map[string]bool),
		calls: make(map[string]int),
	}
}

func (m *mockEdges) Attach(ctx context.Context, parentID, childID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["Attach"]++
	if m.edges[parentID] == nil {
		m.edges[parentID] = make(map[string]bool)
	}
	m.edges[parentID][childID] = true
	return nil
}

func (m *mockEdges) Detach(ctx context.Context, parentID, childID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["Detach"]++
	delete(m.edges[parentID], childID)
	return nil
}

func (m *mockEdges) children(parentID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.edges[parentID]))
	for id := range m.edges[parentID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (m *mockEdges) callCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

var _ storage.EdgeStore = (*mockEdges)(nil)

// newTestCache builds a real sturdyc-backed cache service with a short but
// test-safe TTL.
func newTestCache(t *testing.T) cache.CacheService {
	t.Helper()
	service, err := cache.NewCacheService(cache.Config{
		Capacity:           100,
		NumShards:          4,
		TTL:                1 * time.Minute,
		EvictionPercentage: 10,
	})
	if err != nil {
		t.Fatalf("failed to create cache service: %v", err)
	}
	return service
}

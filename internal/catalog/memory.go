package catalog

import (
	"context"
	"strings"
	"sync"
)

// MemoryRepository is an in-memory product store for scaffolding/tests.
// Listing preserves insertion order so tests can reason about positions.
type MemoryRepository struct {
	mu       sync.RWMutex
	order    []string
	products map[string]*Product
}

// NewMemoryRepository constructs the repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{products: make(map[string]*Product)}
}

// ListProducts returns every stored product in insertion order.
func (m *MemoryRepository) ListProducts(_ context.Context) ([]*Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Product, 0, len(m.order))
	for _, handle := range m.order {
		if record, ok := m.products[handle]; ok {
			out = append(out, record.Clone())
		}
	}
	return out, nil
}

// GetByHandle retrieves a product by handle.
func (m *MemoryRepository) GetByHandle(_ context.Context, handle string) (*Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.products[strings.TrimSpace(handle)]
	if !ok {
		return nil, &ProductNotFoundError{Handle: handle}
	}
	return record.Clone(), nil
}

// Save upserts the product keyed by handle.
func (m *MemoryRepository) Save(_ context.Context, product *Product) (*Product, error) {
	if product == nil || strings.TrimSpace(product.Handle) == "" {
		return nil, ErrHandleRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	handle := strings.TrimSpace(product.Handle)
	if _, exists := m.products[handle]; !exists {
		m.order = append(m.order, handle)
	}
	copied := product.Clone()
	copied.Handle = handle
	m.products[handle] = copied
	return copied.Clone(), nil
}

// Delete removes the product for a handle.
func (m *MemoryRepository) Delete(_ context.Context, handle string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	handle = strings.TrimSpace(handle)
	if _, ok := m.products[handle]; !ok {
		return &ProductNotFoundError{Handle: handle}
	}
	delete(m.products, handle)
	for i, existing := range m.order {
		if existing == handle {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

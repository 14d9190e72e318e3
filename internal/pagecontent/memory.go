package pagecontent

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-storefront/internal/identity"
)

// MemoryRepository is an in-memory page store for scaffolding/tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	pages map[string]*PageRecord
	now   func() time.Time
}

// NewMemoryRepository constructs the repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		pages: make(map[string]*PageRecord),
		now:   time.Now,
	}
}

// GetByHandle retrieves a page record by handle.
func (m *MemoryRepository) GetByHandle(_ context.Context, handle string) (*PageRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.pages[strings.TrimSpace(handle)]
	if !ok {
		return nil, &PageNotFoundError{Handle: handle}
	}
	return record.Clone(), nil
}

// List returns every stored record sorted by handle.
func (m *MemoryRepository) List(_ context.Context) ([]*PageRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*PageRecord, 0, len(m.pages))
	for _, record := range m.pages {
		out = append(out, record.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out, nil
}

// Upsert replaces the stored document for the record's handle, creating the
// record when absent. Timestamps follow the repository clock.
func (m *MemoryRepository) Upsert(_ context.Context, record *PageRecord) (*PageRecord, error) {
	if record == nil || strings.TrimSpace(record.Handle) == "" {
		return nil, ErrHandleRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	handle := strings.TrimSpace(record.Handle)
	now := m.now().UTC()

	copied := record.Clone()
	copied.Handle = handle
	if copied.ID == uuid.Nil {
		copied.ID = identity.PageUUID(handle)
	}
	copied.UpdatedAt = now

	if existing, ok := m.pages[handle]; ok {
		copied.CreatedAt = existing.CreatedAt
	} else if copied.CreatedAt.IsZero() {
		copied.CreatedAt = now
	}

	m.pages[handle] = copied
	return copied.Clone(), nil
}

// Delete removes the record for a handle.
func (m *MemoryRepository) Delete(_ context.Context, handle string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	handle = strings.TrimSpace(handle)
	if _, ok := m.pages[handle]; !ok {
		return &PageNotFoundError{Handle: handle}
	}
	delete(m.pages, handle)
	return nil
}

// WithMemoryClock overrides the timestamp source, for tests.
func (m *MemoryRepository) WithMemoryClock(clock func() time.Time) *MemoryRepository {
	if clock != nil {
		m.now = clock
	}
	return m
}

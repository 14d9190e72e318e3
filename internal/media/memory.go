package media

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryUploader stores uploads in memory and serves deterministic URLs, for
// scaffolding/tests.
type MemoryUploader struct {
	mu      sync.RWMutex
	baseURL string
	assets  map[string]*Asset
	blobs   map[string][]byte
}

// NewMemoryUploader constructs the uploader. An empty baseURL defaults to a
// cdn-style placeholder host.
func NewMemoryUploader(baseURL string) *MemoryUploader {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		trimmed = "https://cdn.example.test/files"
	}
	return &MemoryUploader{
		baseURL: trimmed,
		assets:  make(map[string]*Asset),
		blobs:   make(map[string][]byte),
	}
}

// Upload reads the payload fully and records an asset with a stable URL.
func (m *MemoryUploader) Upload(_ context.Context, input UploadInput) (*Asset, error) {
	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New().String()
	filename := strings.TrimSpace(input.Filename)
	if filename == "" {
		filename = "upload"
	}
	asset := &Asset{
		ID:       id,
		URL:      m.baseURL + "/" + id + "/" + filename,
		Filename: filename,
		Size:     int64(len(data)),
	}
	m.assets[id] = asset
	m.blobs[id] = data
	copied := *asset
	return &copied, nil
}

// Asset returns the recorded asset for an id, for test assertions.
func (m *MemoryUploader) Asset(id string) (*Asset, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	asset, ok := m.assets[id]
	if !ok {
		return nil, false
	}
	copied := *asset
	return &copied, true
}

// Len reports how many assets have been uploaded.
func (m *MemoryUploader) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.assets)
}

package storage

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	appintegration "github.com/catalogsync/backend/internal/application/integration"
)

var _ appintegration.ObjectStorage = (*MemoryObjectStorage)(nil)

type memoryObject struct {
	data         []byte
	contentType  string
	lastModified time.Time
}

// MemoryObjectStorage keeps objects in process memory. Download URLs point at
// BaseURL and are not served by anything; it is meant for development and tests.
type MemoryObjectStorage struct {
	// BaseURL prefixes generated download URLs
	BaseURL           string
	PresignExpiration time.Duration

	mu      sync.RWMutex
	objects map[string]memoryObject
}

// NewMemoryObjectStorage creates an empty MemoryObjectStorage
func NewMemoryObjectStorage() *MemoryObjectStorage {
	return &MemoryObjectStorage{
		BaseURL:           "memory://snapshots",
		PresignExpiration: 15 * time.Minute,
		objects:           make(map[string]memoryObject),
	}
}

// Upload stores a copy of data
func (m *MemoryObjectStorage) Upload(_ context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[storageKey] = memoryObject{
		data:         bytes.Clone(data),
		contentType:  contentType,
		lastModified: time.Now(),
	}
	return nil
}

// Get returns the stored bytes and content type of storageKey
func (m *MemoryObjectStorage) Get(storageKey string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[storageKey]
	if !ok {
		return nil, "", false
	}
	return bytes.Clone(obj.data), obj.contentType, true
}

// GenerateDownloadURL builds a URL carrying the key and its expiry
func (m *MemoryObjectStorage) GenerateDownloadURL(
	_ context.Context,
	storageKey string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	if expiresIn <= 0 {
		expiresIn = m.PresignExpiration
	}
	expiresAt := time.Now().Add(expiresIn)
	u := m.BaseURL + "/" + storageKey + "?expires=" + url.QueryEscape(expiresAt.UTC().Format(time.RFC3339))
	return u, expiresAt, nil
}

// DeleteObject removes storageKey
func (m *MemoryObjectStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, storageKey)
	return nil
}

// ObjectExists reports whether storageKey is present
func (m *MemoryObjectStorage) ObjectExists(_ context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[storageKey]
	return ok, nil
}

// ListObjects returns the objects under prefix in key order
func (m *MemoryObjectStorage) ListObjects(_ context.Context, prefix string) ([]appintegration.ObjectInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]appintegration.ObjectInfo, 0, len(m.objects))
	for key, obj := range m.objects {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		out = append(out, appintegration.ObjectInfo{
			Key:          key,
			Size:         int64(len(obj.data)),
			LastModified: obj.lastModified,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

package integration

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type memObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	failPut bool
}

func newMemObjects() *memObjects {
	return &memObjects{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memObjects) Upload(_ context.Context, key string, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut {
		return errors.New("bucket unavailable")
	}
	m.objects[key] = bytes.Clone(data)
	m.types[key] = contentType
	return nil
}

func (m *memObjects) GenerateDownloadURL(_ context.Context, key string, _ time.Duration) (string, time.Time, error) {
	return "https://objects.test/" + key, time.Now().Add(15 * time.Minute), nil
}

func (m *memObjects) ObjectExists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok, nil
}

func (m *memObjects) DeleteObject(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memObjects) ListObjects(_ context.Context, prefix string) ([]ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ObjectInfo
	for key, data := range m.objects {
		if strings.HasPrefix(key, prefix) {
			out = append(out, ObjectInfo{Key: key, Size: int64(len(data))})
		}
	}
	return out, nil
}

func newSnapshotFixture(t *testing.T, products int) (*SnapshotService, *memObjects) {
	t.Helper()
	store := newMemStore()
	for i := 0; i < products; i++ {
		require.NoError(t, store.Save(context.Background(),
			storedProduct(t, fmt.Sprintf("%d", 100+i), fmt.Sprintf("Product %03d", i))))
	}
	objects := newMemObjects()
	svc := NewSnapshotService(store, objects, "snapshots/", zaptest.NewLogger(t))
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 9, 26, 53, 589_000_000, time.UTC) }
	return svc, objects
}

func TestSnapshotService_CreateSnapshot(t *testing.T) {
	// more than one page of products
	svc, objects := newSnapshotFixture(t, 230)

	resp, err := svc.CreateSnapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "catalog-20260314T092653.589Z.jsonl", resp.Name)
	assert.Equal(t, "snapshots/catalog-20260314T092653.589Z.jsonl", resp.Key)
	assert.Equal(t, 230, resp.Products)
	assert.Equal(t, "https://objects.test/"+resp.Key, resp.DownloadURL)
	require.NotNil(t, resp.ExpiresAt)

	data := objects.objects[resp.Key]
	assert.Equal(t, int64(len(data)), resp.SizeBytes)
	assert.Equal(t, "application/x-ndjson", objects.types[resp.Key])

	seen := map[string]bool{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var p integration.CanonicalProduct
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &p))
		assert.Equal(t, integration.PlatformShopify, p.SourcePlatform)
		seen[p.ExternalID] = true
	}
	require.NoError(t, scanner.Err())
	assert.Len(t, seen, 230)
}

func TestSnapshotService_CreateSnapshot_EmptyStore(t *testing.T) {
	svc, objects := newSnapshotFixture(t, 0)

	resp, err := svc.CreateSnapshot(context.Background())
	require.NoError(t, err)
	assert.Zero(t, resp.Products)
	assert.Empty(t, objects.objects[resp.Key])
}

func TestSnapshotService_CreateSnapshot_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("store error", func(t *testing.T) {
		store := new(MockCanonicalStore)
		store.On("List", mock.Anything, mock.Anything).Return(nil, int64(0), errors.New("db down"))
		svc := NewSnapshotService(store, newMemObjects(), "", nil)

		_, err := svc.CreateSnapshot(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "list canonical products")
	})

	t.Run("upload error", func(t *testing.T) {
		svc, objects := newSnapshotFixture(t, 1)
		objects.failPut = true

		_, err := svc.CreateSnapshot(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "upload snapshot")
	})

	t.Run("not configured", func(t *testing.T) {
		_, err := NewSnapshotService(nil, newMemObjects(), "", nil).CreateSnapshot(ctx)
		assert.ErrorIs(t, err, ErrCanonicalStoreNotConfigured)

		_, err = NewSnapshotService(newMemStore(), nil, "", nil).CreateSnapshot(ctx)
		assert.ErrorIs(t, err, ErrSnapshotsNotConfigured)
	})
}

func TestSnapshotService_GetAndDelete(t *testing.T) {
	svc, objects := newSnapshotFixture(t, 2)
	ctx := context.Background()

	created, err := svc.CreateSnapshot(ctx)
	require.NoError(t, err)

	got, err := svc.GetSnapshot(ctx, created.Name)
	require.NoError(t, err)
	assert.Equal(t, created.Key, got.Key)
	assert.True(t, got.CreatedAt.Equal(created.CreatedAt))
	assert.NotEmpty(t, got.DownloadURL)

	_, err = svc.GetSnapshot(ctx, "catalog-20200101T000000.000Z.jsonl")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	_, err = svc.GetSnapshot(ctx, "../secrets.txt")
	assert.ErrorIs(t, err, ErrInvalidSnapshotName)

	require.NoError(t, svc.DeleteSnapshot(ctx, created.Name))
	assert.Empty(t, objects.objects)
	assert.ErrorIs(t, svc.DeleteSnapshot(ctx, created.Name), ErrSnapshotNotFound)
}

func TestSnapshotService_ListSnapshots(t *testing.T) {
	svc, objects := newSnapshotFixture(t, 1)
	ctx := context.Background()

	first, err := svc.CreateSnapshot(ctx)
	require.NoError(t, err)
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC) }
	second, err := svc.CreateSnapshot(ctx)
	require.NoError(t, err)
	objects.objects["snapshots/catalog-notes.txt"] = []byte("ignored")

	list, err := svc.ListSnapshots(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.Name, list[0].Name)
	assert.Equal(t, first.Name, list[1].Name)
	assert.Equal(t, first.SizeBytes, list[1].SizeBytes)
}

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/catalogsync/backend/internal/domain/integration"
	"go.uber.org/zap"
)

// Snapshot errors
var (
	ErrSnapshotNotFound       = errors.New("integration: snapshot not found")
	ErrSnapshotsNotConfigured = errors.New("integration: snapshot storage not configured")
	ErrInvalidSnapshotName    = errors.New("integration: invalid snapshot name")
)

const (
	snapshotContentType = "application/x-ndjson"
	snapshotTimeLayout  = "20060102T150405.000Z"
	snapshotPageSize    = 100
)

var snapshotNamePattern = regexp.MustCompile(`^catalog-\d{8}T\d{6}\.\d{3}Z\.jsonl$`)

// ObjectInfo describes a stored object
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ObjectStorage is the blob store snapshots are written to
type ObjectStorage interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
	DeleteObject(ctx context.Context, storageKey string) error
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
}

// SnapshotService exports the canonical store as JSON Lines files in object
// storage. Every line is one canonical product.
type SnapshotService struct {
	store     integration.CanonicalProductStore
	objects   ObjectStorage
	keyPrefix string
	logger    *zap.Logger
	now       func() time.Time
}

// NewSnapshotService creates a new SnapshotService
func NewSnapshotService(
	store integration.CanonicalProductStore,
	objects ObjectStorage,
	keyPrefix string,
	logger *zap.Logger,
) *SnapshotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotService{
		store:     store,
		objects:   objects,
		keyPrefix: keyPrefix,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *SnapshotService) ready() error {
	if s.store == nil {
		return ErrCanonicalStoreNotConfigured
	}
	if s.objects == nil {
		return ErrSnapshotsNotConfigured
	}
	return nil
}

// CreateSnapshot writes every stored canonical product, oldest first, to a
// new snapshot object and returns it with a download URL.
func (s *SnapshotService) CreateSnapshot(ctx context.Context) (*SnapshotResponse, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	count := 0
	for offset := 0; ; offset += snapshotPageSize {
		products, total, err := s.store.List(ctx, integration.ProductListFilter{
			Offset:   offset,
			Limit:    snapshotPageSize,
			OrderBy:  "created_at",
			OrderDir: "asc",
		})
		if err != nil {
			return nil, fmt.Errorf("list canonical products: %w", err)
		}
		for _, p := range products {
			if err := enc.Encode(p); err != nil {
				return nil, fmt.Errorf("encode product %s: %w", p.ExternalID, err)
			}
			count++
		}
		if len(products) == 0 || int64(offset+len(products)) >= total {
			break
		}
	}

	createdAt := s.now().UTC()
	name := "catalog-" + createdAt.Format(snapshotTimeLayout) + ".jsonl"
	key := s.keyPrefix + name
	if err := s.objects.Upload(ctx, key, buf.Bytes(), snapshotContentType); err != nil {
		return nil, fmt.Errorf("upload snapshot: %w", err)
	}

	url, expiresAt, err := s.objects.GenerateDownloadURL(ctx, key, 0)
	if err != nil {
		return nil, fmt.Errorf("presign snapshot: %w", err)
	}

	s.logger.Info("Catalog snapshot created",
		zap.String("key", key),
		zap.Int("products", count),
		zap.Int("size_bytes", buf.Len()),
	)

	return &SnapshotResponse{
		Name:        name,
		Key:         key,
		Products:    count,
		SizeBytes:   int64(buf.Len()),
		CreatedAt:   createdAt,
		DownloadURL: url,
		ExpiresAt:   &expiresAt,
	}, nil
}

// GetSnapshot returns a fresh download URL for an existing snapshot
func (s *SnapshotService) GetSnapshot(ctx context.Context, name string) (*SnapshotResponse, error) {
	key, err := s.keyFor(name)
	if err != nil {
		return nil, err
	}
	exists, err := s.objects.ObjectExists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("check snapshot: %w", err)
	}
	if !exists {
		return nil, ErrSnapshotNotFound
	}

	url, expiresAt, err := s.objects.GenerateDownloadURL(ctx, key, 0)
	if err != nil {
		return nil, fmt.Errorf("presign snapshot: %w", err)
	}
	resp := &SnapshotResponse{
		Name:        name,
		Key:         key,
		DownloadURL: url,
		ExpiresAt:   &expiresAt,
	}
	if createdAt, ok := snapshotTime(name); ok {
		resp.CreatedAt = createdAt
	}
	return resp, nil
}

// ListSnapshots returns the stored snapshots, newest first
func (s *SnapshotService) ListSnapshots(ctx context.Context) ([]SnapshotResponse, error) {
	if s.objects == nil {
		return nil, ErrSnapshotsNotConfigured
	}
	objects, err := s.objects.ListObjects(ctx, s.keyPrefix+"catalog-")
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	out := make([]SnapshotResponse, 0, len(objects))
	for _, obj := range objects {
		name := strings.TrimPrefix(obj.Key, s.keyPrefix)
		createdAt, ok := snapshotTime(name)
		if !ok {
			continue
		}
		out = append(out, SnapshotResponse{
			Name:      name,
			Key:       obj.Key,
			SizeBytes: obj.Size,
			CreatedAt: createdAt,
		})
	}
	slices.SortFunc(out, func(a, b SnapshotResponse) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

// DeleteSnapshot removes a snapshot
func (s *SnapshotService) DeleteSnapshot(ctx context.Context, name string) error {
	key, err := s.keyFor(name)
	if err != nil {
		return err
	}
	exists, err := s.objects.ObjectExists(ctx, key)
	if err != nil {
		return fmt.Errorf("check snapshot: %w", err)
	}
	if !exists {
		return ErrSnapshotNotFound
	}
	if err := s.objects.DeleteObject(ctx, key); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	s.logger.Info("Catalog snapshot deleted", zap.String("key", key))
	return nil
}

func (s *SnapshotService) keyFor(name string) (string, error) {
	if s.objects == nil {
		return "", ErrSnapshotsNotConfigured
	}
	if !snapshotNamePattern.MatchString(name) {
		return "", ErrInvalidSnapshotName
	}
	return s.keyPrefix + name, nil
}

// snapshotTime parses the creation time out of a snapshot name
func snapshotTime(name string) (time.Time, bool) {
	if !snapshotNamePattern.MatchString(name) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, "catalog-"), ".jsonl")
	t, err := time.Parse(snapshotTimeLayout, stamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

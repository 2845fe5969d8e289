// Package integration runs the catalog sync stack against real PostgreSQL
// Redis and MinIO containers started with testcontainers.
package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/catalogsync/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const startupTimeout = time.Minute

func skipIfShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("container test skipped in -short mode")
	}
}

// startContainer runs req and terminates the container when t ends.
func startContainer(t *testing.T, req testcontainers.ContainerRequest) testcontainers.Container {
	t.Helper()
	skipIfShort(t)

	c, err := testcontainers.GenericContainer(context.Background(), testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "start %s", req.Image)
	t.Cleanup(func() {
		if err := c.Terminate(context.Background()); err != nil {
			t.Logf("terminate %s: %v", req.Image, err)
		}
	})
	return c
}

// TestRedis is a throwaway Redis with a connected client.
type TestRedis struct {
	Client *redis.Client
	Host   string
	Port   int
}

func NewTestRedis(t *testing.T) *TestRedis {
	t.Helper()
	c := startContainer(t, testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(startupTimeout),
	})

	ctx := context.Background()
	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%d", host, port.Int())})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())

	return &TestRedis{Client: client, Host: host, Port: port.Int()}
}

// NewTestMinIO starts MinIO and returns an s3 storage config for it. The
// bucket is not created.
func NewTestMinIO(t *testing.T, bucket string) config.StorageConfig {
	t.Helper()
	const user, password = "catsync", "catsync-secret"

	c := startContainer(t, testcontainers.ContainerRequest{
		Image:        "minio/minio:latest",
		ExposedPorts: []string{"9000/tcp"},
		Env:          map[string]string{"MINIO_ROOT_USER": user, "MINIO_ROOT_PASSWORD": password},
		Cmd:          []string{"server", "/data"},
		WaitingFor:   wait.ForHTTP("/minio/health/live").WithPort("9000/tcp").WithStartupTimeout(startupTimeout),
	})

	endpoint, err := c.PortEndpoint(context.Background(), "9000/tcp", "http")
	require.NoError(t, err)

	return config.StorageConfig{
		Driver:            "s3",
		Endpoint:          endpoint,
		Region:            "us-east-1",
		Bucket:            bucket,
		AccessKey:         user,
		SecretKey:         password,
		UsePathStyle:      true,
		PresignExpiration: 5 * time.Minute,
		KeyPrefix:         "snapshots/",
	}
}

package integration

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/catalogsync/backend/internal/infrastructure/logger"
	"github.com/catalogsync/backend/internal/infrastructure/migration"
	"github.com/catalogsync/backend/migrations"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// One migrated Postgres serves the whole package. Tests share it and call
// CleanTables before they write.
var shared struct {
	mu        sync.Mutex
	container *tcpostgres.PostgresContainer
	dsn       string
}

// TestDB is a connection to the shared database owned by one test.
type TestDB struct {
	DB *gorm.DB
	t  *testing.T
}

func NewSharedTestDB(t *testing.T) *TestDB {
	t.Helper()
	skipIfShort(t)

	dsn := sharedDSN(t)
	db := openGorm(t, dsn)
	return &TestDB{DB: db, t: t}
}

func sharedDSN(t *testing.T) string {
	t.Helper()
	shared.mu.Lock()
	defer shared.mu.Unlock()
	if shared.container != nil {
		return shared.dsn
	}

	ctx := context.Background()
	c, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("catsync_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("catsync"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(startupTimeout)),
	)
	require.NoError(t, err, "start postgres")

	dsn, err := c.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := openGorm(t, dsn).DB()
	require.NoError(t, err)
	m, err := migration.Open(pool, migrations.FS, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, m.Up(), "apply migrations")

	shared.container, shared.dsn = c, dsn
	return dsn
}

// openGorm logs statements through the service's GORM logger when
// TEST_DB_DEBUG is set.
func openGorm(t *testing.T, dsn string) *gorm.DB {
	t.Helper()
	gl := gormlogger.Discard
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gl = logger.NewGormLogger(zaptest.NewLogger(t, zaptest.Level(zap.DebugLevel)), gormlogger.Info)
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{Logger: gl})
	require.NoError(t, err)
	pool, err := db.DB()
	require.NoError(t, err)
	pool.SetMaxOpenConns(5)
	pool.SetMaxIdleConns(2)
	pool.SetConnMaxLifetime(5 * time.Minute)
	t.Cleanup(func() { _ = pool.Close() })
	return db
}

// CleanTables truncates everything except the migration ledger.
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()
	var tables []string
	require.NoError(tdb.t, tdb.DB.Raw(
		`SELECT tablename FROM pg_tables WHERE schemaname = 'public' AND tablename <> 'schema_migrations'`,
	).Scan(&tables).Error)

	for _, table := range tables {
		require.NoError(tdb.t, tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %q CASCADE", table)).Error, "truncate %s", table)
	}
}

func terminateShared() {
	shared.mu.Lock()
	defer shared.mu.Unlock()
	if shared.container == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_ = shared.container.Terminate(ctx)
	shared.container = nil
}

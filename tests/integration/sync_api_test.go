package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	appintegration "github.com/catalogsync/backend/internal/application/integration"
	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/catalogsync/backend/internal/infrastructure/auth"
	"github.com/catalogsync/backend/internal/infrastructure/config"
	"github.com/catalogsync/backend/internal/infrastructure/ecommerce"
	"github.com/catalogsync/backend/internal/infrastructure/persistence"
	"github.com/catalogsync/backend/internal/infrastructure/scheduler"
	"github.com/catalogsync/backend/internal/infrastructure/storage"
	"github.com/catalogsync/backend/internal/interfaces/http/dto"
	"github.com/catalogsync/backend/internal/interfaces/http/handler"
	"github.com/catalogsync/backend/internal/interfaces/http/middleware"
	"github.com/catalogsync/backend/internal/interfaces/http/router"
	"github.com/catalogsync/backend/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// syncAPI is the HTTP surface wired to fake platforms and a real database.
type syncAPI struct {
	engine *gin.Engine
	shop   *testutil.FakeShopify
	woo     *testutil.FakeWooCommerce
	db      *TestDB
	objects *storage.MemoryObjectStorage
}

// newSyncAPI builds the API. auth middleware, when given, guards the sync group.
func newSyncAPI(t *testing.T, authn ...gin.HandlerFunc) *syncAPI {
	t.Helper()

	testDB := NewSharedTestDB(t)
	testDB.CleanTables()
	log := zaptest.NewLogger(t)

	shop := testutil.NewFakeShopify(t, testutil.ClassicTee(), testutil.SimpleMug(700))
	woo := testutil.NewFakeWooCommerce(t)

	registry, err := ecommerce.NewDefaultRegistry(shop.Config(), woo.Config())
	require.NoError(t, err)

	mappings := persistence.NewGormSyncMappingRepository(testDB.DB)
	store := persistence.NewGormCanonicalProductRepository(testDB.DB)

	syncService := appintegration.NewSyncService(registry, mappings, nil, log)
	syncService.SetCanonicalStore(store)
	mappingService := appintegration.NewSyncMappingService(mappings, store, log)
	objects := storage.NewMemoryObjectStorage()
	snapshots := appintegration.NewSnapshotService(store, objects, "snapshots/", log)

	executor := scheduler.NewCatalogSyncExecutor(scheduler.PageSyncerFunc(func(
		ctx context.Context,
		source, destination integration.PlatformCode,
		page integration.PageParams,
		opts integration.SyncOptions,
	) (*integration.BatchReport, error) {
		return syncService.SyncBatch(ctx, appintegration.BatchRequest{
			Source: source, Destination: destination, Page: page, Options: opts,
		})
	}), 50, 0, log)
	cfg := scheduler.DefaultCatalogSyncSchedulerConfig()
	cfg.RetryDelay = 10 * time.Millisecond
	jobs, err := scheduler.NewCatalogSyncScheduler(cfg, executor, log)
	require.NoError(t, err)
	require.NoError(t, jobs.Start(context.Background()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = jobs.Stop(ctx)
	})

	engine := gin.New()
	engine.Use(middleware.RequestID())
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.SyncRoutes(
		handler.NewSyncHandler(syncService, mappingService),
		handler.NewMappingHandler(mappingService),
		handler.NewJobHandler(jobs),
		handler.NewSnapshotHandler(snapshots),
	).Use(authn...))
	r.Setup()

	return &syncAPI{engine: engine, shop: shop, woo: woo, db: testDB, objects: objects}
}

func TestSyncAPI_ShopifyToWooCommerce(t *testing.T) {
	api := newSyncAPI(t)
	teeID := strconv.FormatInt(testutil.ClassicTeeID, 10)
	canonicalID := integration.CanonicalIDFor(integration.PlatformShopify, teeID)

	// First sync creates the variable product and its variations
	rec := testutil.Perform(t, api.engine, http.MethodPost, "/api/v1/sync/products/shopify/"+teeID+"/sync",
		gin.H{"destination": "woocommerce"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := testutil.DecodeEnvelope[integration.SyncResult](t, rec).Data
	require.True(t, result.Success, result.Error)
	assert.Equal(t, teeID, result.SourceID)
	assert.Equal(t, "501", result.DestinationID)
	assert.Equal(t, integration.SyncStepRecorded, result.Step)
	assert.True(t, result.Created)

	created := api.woo.Product(501)
	require.NotNil(t, created)
	assert.Equal(t, "Classic Tee", created.Name)
	assert.Equal(t, "variable", created.Type)
	variations := api.woo.Variations(501)
	require.Len(t, variations, 2)
	skus := []string{variations[0].SKU, variations[1].SKU}
	assert.ElementsMatch(t, []string{"TEE-S-RED", "TEE-M-RED"}, skus)

	// Reverse lookup by destination product
	rec = testutil.Perform(t, api.engine, http.MethodGet, "/api/v1/sync/platforms/woocommerce/products/501/mapping", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	mapping := testutil.DecodeEnvelope[appintegration.SyncMappingResponse](t, rec).Data
	assert.Equal(t, canonicalID, mapping.CanonicalProductID)
	assert.Equal(t, integration.MappingStatusSynced, mapping.SyncStatus)
	assert.Len(t, mapping.Variants, 2)

	// Lookup by canonical product
	rec = testutil.Perform(t, api.engine, http.MethodGet, "/api/v1/sync/mappings/"+canonicalID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, testutil.DecodeEnvelope[[]appintegration.SyncMappingResponse](t, rec).Data, 1)

	rec = testutil.Perform(t, api.engine, http.MethodGet, "/api/v1/sync/mappings/"+canonicalID.String()+"/woo", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "501", testutil.DecodeEnvelope[appintegration.SyncMappingResponse](t, rec).Data.PlatformProductID)

	// Upsert updates in place and skips variations already mapped
	rec = testutil.Perform(t, api.engine, http.MethodPost, "/api/v1/sync/products/shopify/"+teeID+"/sync",
		gin.H{"destination": "woocommerce", "options": gin.H{"upsert": true}})
	require.Equal(t, http.StatusOK, rec.Code)
	result = testutil.DecodeEnvelope[integration.SyncResult](t, rec).Data
	require.True(t, result.Success, result.Error)
	assert.Equal(t, "501", result.DestinationID)
	assert.False(t, result.Created)
	assert.Equal(t, 1, api.woo.CountCalls(http.MethodPut, "/wp-json/wc/v3/products/501"))
	assert.Equal(t, 2, api.woo.CountCalls(http.MethodPost, "/wp-json/wc/v3/products/501/variations"))

	// Deleting the mapping releases the identity link
	rec = testutil.Perform(t, api.engine, http.MethodDelete, "/api/v1/sync/mappings/"+mapping.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = testutil.Perform(t, api.engine, http.MethodGet, "/api/v1/sync/platforms/woocommerce/products/501/mapping", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	testutil.AssertErrorBody(t, rec.Body.Bytes(), dto.ErrCodeNotFound)
}

func TestSyncAPI_DryRunLeavesDestinationUntouched(t *testing.T) {
	api := newSyncAPI(t)

	rec := testutil.Perform(t, api.engine, http.MethodPost, "/api/v1/sync/products/shopify/700/sync",
		gin.H{"destination": "woocommerce", "options": gin.H{"dry_run": true}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Preview carries a platform payload, so it is decoded loosely
	result := testutil.DecodeEnvelope[struct {
		Success       bool                 `json:"success"`
		DryRun        bool                 `json:"dry_run"`
		Step          integration.SyncStep `json:"step"`
		DestinationID string               `json:"destination_id"`
		Preview       map[string]any       `json:"preview"`
	}](t, rec).Data
	assert.True(t, result.Success)
	assert.True(t, result.DryRun)
	assert.Equal(t, integration.SyncStepDenormalized, result.Step)
	assert.Equal(t, "simple", result.Preview["kind"])
	assert.Empty(t, result.DestinationID)

	assert.Empty(t, api.woo.Calls())
	var count int64
	require.NoError(t, api.db.DB.Table("sync_mappings").Count(&count).Error)
	assert.Zero(t, count)
}

func TestSyncAPI_ItemFailureIsReportedInBody(t *testing.T) {
	api := newSyncAPI(t)

	rec := testutil.Perform(t, api.engine, http.MethodPost, "/api/v1/sync/products/shopify/1/sync",
		gin.H{"destination": "woocommerce"})
	require.Equal(t, http.StatusOK, rec.Code)

	result := testutil.DecodeEnvelope[integration.SyncResult](t, rec).Data
	assert.False(t, result.Success)
	assert.Equal(t, integration.SyncStepFailed, result.Step)
	assert.Equal(t, integration.SyncStepFetched, result.FailedStep)
	assert.NotEmpty(t, result.Error)
	assert.Empty(t, api.woo.Calls())
}

func TestSyncAPI_BatchImportAndExport(t *testing.T) {
	api := newSyncAPI(t)

	// Batch sync of one Shopify page
	rec := testutil.Perform(t, api.engine, http.MethodPost, "/api/v1/sync/batch",
		gin.H{"source": "shopify", "destination": "woocommerce", "page": gin.H{"per_page": 10}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	report := testutil.DecodeEnvelope[integration.BatchReport](t, rec).Data
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 2, report.Succeeded)
	assert.False(t, report.HasMore)

	// Import the WooCommerce catalog back into the canonical store
	rec = testutil.Perform(t, api.engine, http.MethodPost, "/api/v1/sync/import", gin.H{"source": "woocommerce"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	imported := testutil.DecodeEnvelope[integration.ImportReport](t, rec).Data
	require.Equal(t, 2, imported.Total)
	assert.Equal(t, 2, imported.Succeeded)

	rec = testutil.Perform(t, api.engine, http.MethodGet, "/api/v1/sync/products?page=1&page_size=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := testutil.DecodeEnvelope[[]*integration.CanonicalProduct](t, rec)
	require.Len(t, listed.Data, 2)
	require.NotNil(t, listed.Meta)
	assert.Equal(t, int64(2), listed.Meta.Total)

	// Export a stored product to Shopify
	var stored *integration.CanonicalProduct
	for _, p := range listed.Data {
		if p.Title == "Classic Tee" {
			stored = p
		}
	}
	require.NotNil(t, stored)
	require.NotNil(t, stored.InternalID)
	assert.Equal(t, integration.PlatformWooCommerce, stored.SourcePlatform)

	rec = testutil.Perform(t, api.engine, http.MethodPost, "/api/v1/sync/export",
		gin.H{"destination": "shopify", "product_ids": []string{stored.InternalID.String()}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	exported := testutil.DecodeEnvelope[integration.BatchReport](t, rec).Data
	require.Equal(t, 1, exported.Total)
	require.True(t, exported.Results[0].Success, exported.Results[0].Error)

	shopifyID, err := strconv.ParseInt(exported.Results[0].DestinationID, 10, 64)
	require.NoError(t, err)
	copied := api.shop.Product(shopifyID)
	require.NotNil(t, copied)
	assert.Equal(t, "Classic Tee", copied.Title)
	assert.Len(t, copied.Variants, 2)

	rec = testutil.Perform(t, api.engine, http.MethodGet,
		"/api/v1/sync/mappings/"+stored.InternalID.String()+"/shopify", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, exported.Results[0].DestinationID,
		testutil.DecodeEnvelope[appintegration.SyncMappingResponse](t, rec).Data.PlatformProductID)
}

func TestSyncAPI_ScheduledCatalogJob(t *testing.T) {
	api := newSyncAPI(t)

	rec := testutil.Perform(t, api.engine, http.MethodPost, "/api/v1/sync/jobs",
		gin.H{"source": "shopify", "destination": "woocommerce", "options": gin.H{"upsert": true}})
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	job := testutil.DecodeEnvelope[scheduler.CatalogSyncJob](t, rec).Data

	var final scheduler.CatalogSyncJob
	testutil.RequireEventually(t, func() bool {
		rec := testutil.Perform(t, api.engine, http.MethodGet, "/api/v1/sync/jobs/"+job.ID.String(), nil)
		if rec.Code != http.StatusOK {
			return false
		}
		final = testutil.DecodeEnvelope[scheduler.CatalogSyncJob](t, rec).Data
		return final.Status != scheduler.JobStatusPending && final.Status != scheduler.JobStatusRunning
	}, 30*time.Second, 50*time.Millisecond, "job did not finish")

	assert.Equal(t, scheduler.JobStatusSuccess, final.Status, final.Error)
	assert.Equal(t, 1, final.Summary.Pages)
	assert.Equal(t, 2, final.Summary.Total)
	assert.Equal(t, 2, final.Summary.Succeeded)
	assert.NotNil(t, api.woo.Product(501))

	rec = testutil.Perform(t, api.engine, http.MethodGet, "/api/v1/sync/jobs?limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := testutil.DecodeEnvelope[handler.JobListResponse](t, rec).Data
	require.NotEmpty(t, list.History)
	assert.Equal(t, job.ID, list.History[0].ID)
}

func TestSyncAPI_PlatformHealth(t *testing.T) {
	api := newSyncAPI(t)

	for _, platform := range []string{"shopify", "woocommerce"} {
		rec := testutil.Perform(t, api.engine, http.MethodGet, "/api/v1/sync/platforms/"+platform+"/health", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, testutil.DecodeEnvelope[handler.ConnectionResponse](t, rec).Data.Connected)
	}

	rec := testutil.Perform(t, api.engine, http.MethodGet, "/api/v1/sync/platforms/etsy/health", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	testutil.AssertErrorBody(t, rec.Body.Bytes(), dto.ErrCodeUnsupportedPlatform)
}

func TestSyncAPI_CatalogSnapshot(t *testing.T) {
	api := newSyncAPI(t)

	rec := testutil.Perform(t, api.engine, http.MethodPost, "/api/v1/sync/import", gin.H{"source": "shopify"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = testutil.Perform(t, api.engine, http.MethodPost, "/api/v1/sync/snapshots", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	snapshot := testutil.DecodeEnvelope[appintegration.SnapshotResponse](t, rec).Data
	assert.Equal(t, 2, snapshot.Products)

	data, contentType, ok := api.objects.Get(snapshot.Key)
	require.True(t, ok)
	assert.Equal(t, "application/x-ndjson", contentType)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
	assert.Contains(t, string(data), `"title":"Classic Tee"`)

	rec = testutil.Perform(t, api.engine, http.MethodGet, "/api/v1/sync/snapshots", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, testutil.DecodeEnvelope[[]appintegration.SnapshotResponse](t, rec).Data, 1)

	rec = testutil.Perform(t, api.engine, http.MethodDelete, "/api/v1/sync/snapshots/"+snapshot.Name, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = testutil.Perform(t, api.engine, http.MethodGet, "/api/v1/sync/snapshots/"+snapshot.Name, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSyncAPI_ServiceAuthentication(t *testing.T) {
	tokens := auth.NewTokenService(config.AuthConfig{
		Secret: "integration-secret-at-least-32-chars",
		Issuer: "catsync",
	})
	revocations := auth.NewInMemoryRevocationList()
	api := newSyncAPI(t,
		middleware.ServiceAuth(middleware.ServiceAuthConfig{Tokens: tokens, Revocations: revocations}),
		middleware.ScopeForMethod(),
	)

	send := func(method, path, token string) *httptest.ResponseRecorder {
		return testutil.PerformWithToken(t, api.engine, method, path, token, nil)
	}

	reader, err := tokens.IssueToken(auth.IssueTokenInput{Client: "dashboard", Scopes: []string{auth.ScopeSyncRead}})
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, send(http.MethodGet, "/api/v1/sync/platforms", "").Code)
	assert.Equal(t, http.StatusOK, send(http.MethodGet, "/api/v1/sync/platforms", reader.Token).Code)
	assert.Equal(t, http.StatusForbidden, send(http.MethodPost, "/api/v1/sync/snapshots", reader.Token).Code)

	require.NoError(t, revocations.Revoke(context.Background(), reader.ID, time.Hour))
	rec := send(http.MethodGet, "/api/v1/sync/platforms", reader.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	testutil.AssertErrorBody(t, rec.Body.Bytes(), dto.ErrCodeTokenRevoked)
}

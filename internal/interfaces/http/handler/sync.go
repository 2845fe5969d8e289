package handler

import (
	"context"
	"errors"
	"fmt"

	appintegration "github.com/catalogsync/backend/internal/application/integration"
	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/catalogsync/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogSyncer runs sync operations. The application SyncService implements it.
type CatalogSyncer interface {
	SyncOne(ctx context.Context, req appintegration.SyncRequest) (integration.SyncResult, error)
	SyncBatch(ctx context.Context, req appintegration.BatchRequest) (*integration.BatchReport, error)
	ImportFrom(ctx context.Context, source integration.PlatformCode, page integration.PageParams) (*integration.ImportReport, error)
	ExportTo(ctx context.Context, destination integration.PlatformCode, items []*integration.CanonicalProduct, opts integration.SyncOptions) (*integration.BatchReport, error)
	TestConnection(ctx context.Context, platform integration.PlatformCode) (bool, error)
	Platforms() []integration.PlatformCode
}

// ProductLookup loads stored canonical products for export by ID
type ProductLookup interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*integration.CanonicalProduct, error)
}

// SyncHandler handles catalog sync endpoints
type SyncHandler struct {
	BaseHandler
	syncer   CatalogSyncer
	products ProductLookup
}

// NewSyncHandler creates a new SyncHandler. products may be nil when no
// canonical store is configured; export by ID is then unavailable.
func NewSyncHandler(syncer CatalogSyncer, products ProductLookup) *SyncHandler {
	return &SyncHandler{syncer: syncer, products: products}
}

// ListPlatforms returns the platforms with a configured adapter
//
// @ID           listSyncPlatforms
//
//	@Summary		List configured platforms
//	@Description	Returns the platforms with a configured adapter
//	@Tags			sync-platforms
//	@Produce		json
//	@Success		200	{object}	APIResponse[[]PlatformResponse]
//	@Failure		401	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/sync/platforms [get]
func (h *SyncHandler) ListPlatforms(c *gin.Context) {
	codes := h.syncer.Platforms()
	out := make([]PlatformResponse, 0, len(codes))
	for _, code := range codes {
		out = append(out, PlatformResponse{Code: code, DisplayName: code.DisplayName()})
	}
	h.Success(c, out)
}

// TestConnection checks a platform's credentials
//
// @ID           testPlatformConnection
//
//	@Summary		Test platform credentials
//	@Description	Calls the platform API with the configured credentials
//	@Tags			sync-platforms
//	@Produce		json
//	@Param			platform	path	string	true	"Platform code"	Enums(SHOPIFY, WOOCOMMERCE)
//	@Success		200	{object}	APIResponse[ConnectionResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/sync/platforms/{platform}/health [get]
func (h *SyncHandler) TestConnection(c *gin.Context) {
	platform, err := parsePlatform(c, "platform")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	ok, err := h.syncer.TestConnection(c.Request.Context(), platform)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ConnectionResponse{Platform: platform, Connected: ok})
}

// SyncProduct syncs the source product :id on :platform to the requested
// destination. Item failures are reported in the result with status 200.
//
// @ID           syncProduct
//
//	@Summary		Sync one product
//	@Description	Fetches a source product, normalizes it and pushes it to the destination. Item failures are reported in the result with status 200.
//	@Tags			sync
//	@Accept			json
//	@Produce		json
//	@Param			platform	path	string	true	"Platform code"	Enums(SHOPIFY, WOOCOMMERCE)
//	@Param			id	path	string	true	"Source product ID"
//	@Param			request	body	SyncProductRequest	true	"Destination and options"
//	@Success		200	{object}	APIResponse[integration.SyncResult]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/sync/products/{platform}/{id}/sync [post]
func (h *SyncHandler) SyncProduct(c *gin.Context) {
	source, err := parsePlatform(c, "platform")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req SyncProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	destination, err := integration.ParsePlatformCode(req.Destination)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if destination == source {
		h.BadRequest(c, "destination must differ from source")
		return
	}

	result, err := h.syncer.SyncOne(c.Request.Context(), appintegration.SyncRequest{
		Source:      source,
		SourceID:    c.Param("id"),
		Destination: destination,
		Options:     req.Options.toDomain(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// SyncBatch syncs one page of source products
//
// @ID           syncBatch
//
//	@Summary		Sync a page of products
//	@Description	Syncs one page of source products. Results keep the fetched order and failures are isolated per item.
//	@Tags			sync
//	@Accept			json
//	@Produce		json
//	@Param			request	body	BatchSyncRequest	true	"Source, destination, page and options"
//	@Success		200	{object}	APIResponse[integration.BatchReport]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Failure		502	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/sync/batch [post]
func (h *SyncHandler) SyncBatch(c *gin.Context) {
	var req BatchSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	source, destination, err := parseRoute(req.Source, req.Destination)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if source == destination {
		h.BadRequest(c, "destination must differ from source")
		return
	}

	report, err := h.syncer.SyncBatch(c.Request.Context(), appintegration.BatchRequest{
		Source:      source,
		Page:        req.Page.toDomain(),
		Destination: destination,
		Options:     req.Options.toDomain(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// Import normalizes one page of source products into the canonical store
//
// @ID           importProducts
//
//	@Summary		Import a page into the canonical store
//	@Description	Fetches and normalizes one page of source products
//	@Tags			sync
//	@Accept			json
//	@Produce		json
//	@Param			request	body	ImportRequest	true	"Source and page"
//	@Success		200	{object}	APIResponse[integration.ImportReport]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Failure		502	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/sync/import [post]
func (h *SyncHandler) Import(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	source, err := integration.ParsePlatformCode(req.Source)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	report, err := h.syncer.ImportFrom(c.Request.Context(), source, req.Page.toDomain())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// Export pushes canonical products to the destination. Inline products come
// first, then stored products named by product_ids, in request order.
//
// @ID           exportProducts
//
//	@Summary		Export canonical products
//	@Description	Pushes inline canonical products, then stored ones named by product_ids, to the destination
//	@Tags			sync
//	@Accept			json
//	@Produce		json
//	@Param			request	body	ExportRequest	true	"Destination, products and options"
//	@Success		200	{object}	APIResponse[integration.BatchReport]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/sync/export [post]
func (h *SyncHandler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	if len(req.Products) == 0 && len(req.ProductIDs) == 0 {
		h.BadRequest(c, "products or product_ids is required")
		return
	}
	destination, err := integration.ParsePlatformCode(req.Destination)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := req.Products
	if len(req.ProductIDs) > 0 {
		stored, err := h.loadProducts(c.Request.Context(), req.ProductIDs)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		items = append(items, stored...)
	}

	report, err := h.syncer.ExportTo(c.Request.Context(), destination, items, req.Options.toDomain())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

func (h *SyncHandler) loadProducts(ctx context.Context, ids []string) ([]*integration.CanonicalProduct, error) {
	if h.products == nil {
		return nil, appintegration.ErrCanonicalStoreNotConfigured
	}
	out := make([]*integration.CanonicalProduct, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", integration.ErrMappingInvalidCanonicalID, raw)
		}
		p, err := h.products.GetProduct(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", id, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func parseRoute(source, destination string) (integration.PlatformCode, integration.PlatformCode, error) {
	src, srcErr := integration.ParsePlatformCode(source)
	dst, dstErr := integration.ParsePlatformCode(destination)
	return src, dst, errors.Join(srcErr, dstErr)
}

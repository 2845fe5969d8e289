package handler

import (
	"context"

	appintegration "github.com/catalogsync/backend/internal/application/integration"
	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/catalogsync/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MappingQueries reads sync mappings and stored canonical products.
// The application SyncMappingService implements it.
type MappingQueries interface {
	GetMappings(ctx context.Context, canonicalID uuid.UUID) ([]appintegration.SyncMappingResponse, error)
	GetMapping(ctx context.Context, canonicalID uuid.UUID, platform integration.PlatformCode) (*appintegration.SyncMappingResponse, error)
	FindByPlatformProduct(ctx context.Context, platform integration.PlatformCode, platformProductID string) (*appintegration.SyncMappingResponse, error)
	DeleteMapping(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, query appintegration.ProductListQuery) (*appintegration.CanonicalProductListResponse, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*integration.CanonicalProduct, error)
}

// MappingHandler handles sync mapping and canonical product endpoints
type MappingHandler struct {
	BaseHandler
	queries MappingQueries
}

// NewMappingHandler creates a new MappingHandler
func NewMappingHandler(queries MappingQueries) *MappingHandler {
	return &MappingHandler{queries: queries}
}

// ListMappings returns every platform mapping of a canonical product
//
// @ID           listSyncMappings
//
//	@Summary		List mappings of a canonical product
//	@Description	Returns every platform mapping of a canonical product
//	@Tags			sync-mappings
//	@Produce		json
//	@Param			canonical_id	path	string	true	"Canonical product ID"	format(uuid)
//	@Success		200	{object}	APIResponse[[]appintegration.SyncMappingResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/sync/mappings/{canonical_id} [get]
func (h *MappingHandler) ListMappings(c *gin.Context) {
	canonicalID, err := parseUUIDParam(c, "canonical_id")
	if err != nil {
		h.BadRequest(c, "Invalid canonical product ID")
		return
	}

	mappings, err := h.queries.GetMappings(c.Request.Context(), canonicalID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mappings)
}

// GetMapping returns the mapping of a canonical product on one platform
//
// @ID           getSyncMapping
//
//	@Summary		Get a mapping on one platform
//	@Description	Returns the mapping of a canonical product on one platform
//	@Tags			sync-mappings
//	@Produce		json
//	@Param			canonical_id	path	string	true	"Canonical product ID"	format(uuid)
//	@Param			platform	path	string	true	"Platform code"	Enums(SHOPIFY, WOOCOMMERCE)
//	@Success		200	{object}	APIResponse[appintegration.SyncMappingResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/sync/mappings/{canonical_id}/{platform} [get]
func (h *MappingHandler) GetMapping(c *gin.Context) {
	canonicalID, err := parseUUIDParam(c, "canonical_id")
	if err != nil {
		h.BadRequest(c, "Invalid canonical product ID")
		return
	}
	platform, err := parsePlatform(c, "platform")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	mapping, err := h.queries.GetMapping(c.Request.Context(), canonicalID, platform)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mapping)
}

// FindByPlatformProduct resolves a platform product ID to its mapping
//
// @ID           getSyncMappingByPlatformProduct
//
//	@Summary		Resolve a platform product
//	@Description	Looks up the mapping holding a platform product ID
//	@Tags			sync-mappings
//	@Produce		json
//	@Param			platform	path	string	true	"Platform code"	Enums(SHOPIFY, WOOCOMMERCE)
//	@Param			platform_product_id	path	string	true	"Platform product ID"
//	@Success		200	{object}	APIResponse[appintegration.SyncMappingResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/sync/platforms/{platform}/products/{platform_product_id}/mapping [get]
func (h *MappingHandler) FindByPlatformProduct(c *gin.Context) {
	platform, err := parsePlatform(c, "platform")
	if err != nil {
		h.HandleError(c, err)
		return
	}

	mapping, err := h.queries.FindByPlatformProduct(c.Request.Context(), platform, c.Param("platform_product_id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, mapping)
}

// DeleteMapping removes a mapping so the next sync creates a new product
//
// @ID           deleteSyncMapping
//
//	@Summary		Delete a mapping
//	@Description	Removes a mapping so the next sync creates a new destination product
//	@Tags			sync-mappings
//	@Produce		json
//	@Param			id	path	string	true	"Mapping ID"	format(uuid)
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/sync/mappings/{id} [delete]
func (h *MappingHandler) DeleteMapping(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid mapping ID")
		return
	}

	if err := h.queries.DeleteMapping(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// productListRequest adds ordering to the common paging parameters
type productListRequest struct {
	dto.ListRequest
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=title price created_at updated_at"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ListProducts pages through stored canonical products
//
// @ID           listCanonicalProducts
//
//	@Summary		List canonical products
//	@Description	Pages through stored canonical products
//	@Tags			sync-products
//	@Produce		json
//	@Param			page	query	int	false	"Page number"	default(1)
//	@Param			page_size	query	int	false	"Page size"	default(20)	maximum(100)
//	@Param			order_by	query	string	false	"Order by field"	Enums(title, price, created_at, updated_at)	default(title)
//	@Param			order_dir	query	string	false	"Order direction"	Enums(asc, desc)	default(asc)
//	@Success		200	{object}	APIResponse[[]integration.CanonicalProduct]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/sync/products [get]
func (h *MappingHandler) ListProducts(c *gin.Context) {
	req := productListRequest{ListRequest: dto.DefaultListRequest()}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	list, err := h.queries.ListProducts(c.Request.Context(), appintegration.ProductListQuery{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, list.Items, list.Total, list.Page, list.PageSize)
}

// GetProduct returns one stored canonical product
//
// @ID           getCanonicalProduct
//
//	@Summary		Get a canonical product
//	@Description	Returns one stored canonical product
//	@Tags			sync-products
//	@Produce		json
//	@Param			id	path	string	true	"Canonical product ID"	format(uuid)
//	@Success		200	{object}	APIResponse[integration.CanonicalProduct]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/sync/products/{id} [get]
func (h *MappingHandler) GetProduct(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.queries.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

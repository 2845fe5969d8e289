package handler

import (
	"context"

	appintegration "github.com/catalogsync/backend/internal/application/integration"
	"github.com/gin-gonic/gin"
)

// SnapshotService exports the canonical store to object storage.
// *appintegration.SnapshotService implements it.
type SnapshotService interface {
	CreateSnapshot(ctx context.Context) (*appintegration.SnapshotResponse, error)
	GetSnapshot(ctx context.Context, name string) (*appintegration.SnapshotResponse, error)
	ListSnapshots(ctx context.Context) ([]appintegration.SnapshotResponse, error)
	DeleteSnapshot(ctx context.Context, name string) error
}

// SnapshotHandler handles catalog snapshot endpoints
type SnapshotHandler struct {
	BaseHandler
	snapshots SnapshotService
}

// NewSnapshotHandler creates a new SnapshotHandler. A nil service answers 503.
func NewSnapshotHandler(s SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{snapshots: s}
}

func (h *SnapshotHandler) available(c *gin.Context) bool {
	if h.snapshots == nil {
		h.ServiceUnavailable(c, "Snapshot storage is disabled")
		return false
	}
	return true
}

// CreateSnapshot writes the canonical store to a new snapshot
//
// @ID           createCatalogSnapshot
//
//	@Summary		Create a snapshot
//	@Description	Writes the canonical store as JSON Lines to object storage
//	@Tags			sync-snapshots
//	@Produce		json
//	@Success		201	{object}	APIResponse[appintegration.SnapshotResponse]
//	@Failure		401	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/sync/snapshots [post]
func (h *SnapshotHandler) CreateSnapshot(c *gin.Context) {
	if !h.available(c) {
		return
	}
	snapshot, err := h.snapshots.CreateSnapshot(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, snapshot)
}

// ListSnapshots returns stored snapshots, newest first
//
// @ID           listCatalogSnapshots
//
//	@Summary		List snapshots
//	@Description	Returns stored snapshots, newest first
//	@Tags			sync-snapshots
//	@Produce		json
//	@Success		200	{object}	APIResponse[[]appintegration.SnapshotResponse]
//	@Failure		401	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/sync/snapshots [get]
func (h *SnapshotHandler) ListSnapshots(c *gin.Context) {
	if !h.available(c) {
		return
	}
	snapshots, err := h.snapshots.ListSnapshots(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, snapshots)
}

// GetSnapshot returns a snapshot with a fresh download URL
//
// @ID           getCatalogSnapshot
//
//	@Summary		Get a snapshot
//	@Description	Returns a snapshot with a fresh download URL
//	@Tags			sync-snapshots
//	@Produce		json
//	@Param			name	path	string	true	"Snapshot name"
//	@Success		200	{object}	APIResponse[appintegration.SnapshotResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/sync/snapshots/{name} [get]
func (h *SnapshotHandler) GetSnapshot(c *gin.Context) {
	if !h.available(c) {
		return
	}
	snapshot, err := h.snapshots.GetSnapshot(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, snapshot)
}

// DeleteSnapshot removes a snapshot
//
// @ID           deleteCatalogSnapshot
//
//	@Summary		Delete a snapshot
//	@Description	Removes a snapshot from object storage
//	@Tags			sync-snapshots
//	@Produce		json
//	@Param			name	path	string	true	"Snapshot name"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/sync/snapshots/{name} [delete]
func (h *SnapshotHandler) DeleteSnapshot(c *gin.Context) {
	if !h.available(c) {
		return
	}
	if err := h.snapshots.DeleteSnapshot(c.Request.Context(), c.Param("name")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

package handler

import (
	"strconv"

	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/catalogsync/backend/internal/infrastructure/scheduler"
	"github.com/catalogsync/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// JobScheduler queues and reports full catalog sync runs.
// *scheduler.CatalogSyncScheduler implements it.
type JobScheduler interface {
	ScheduleSync(source, destination integration.PlatformCode, opts integration.SyncOptions) (scheduler.CatalogSyncJob, error)
	GetJob(id uuid.UUID) (scheduler.CatalogSyncJob, bool)
	ActiveJobs() []scheduler.CatalogSyncJob
	GetJobHistory(limit int) []scheduler.CatalogSyncJob
}

const defaultJobHistoryLimit = 20

// JobHandler handles scheduled sync job endpoints
type JobHandler struct {
	BaseHandler
	scheduler JobScheduler
}

// NewJobHandler creates a new JobHandler. A nil scheduler answers 503.
func NewJobHandler(s JobScheduler) *JobHandler {
	return &JobHandler{scheduler: s}
}

func (h *JobHandler) available(c *gin.Context) bool {
	if h.scheduler == nil {
		h.ServiceUnavailable(c, "Scheduled sync is disabled")
		return false
	}
	return true
}

// ScheduleSync queues a full catalog sync and answers 202 with the job
//
// @ID           scheduleCatalogSync
//
//	@Summary		Schedule a full catalog sync
//	@Description	Queues a job that walks every source page
//	@Tags			sync-jobs
//	@Accept			json
//	@Produce		json
//	@Param			request	body	ScheduleSyncRequest	true	"Source, destination and options"
//	@Success		202	{object}	APIResponse[scheduler.CatalogSyncJob]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/sync/jobs [post]
func (h *JobHandler) ScheduleSync(c *gin.Context) {
	if !h.available(c) {
		return
	}

	var req ScheduleSyncRequest
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

	job, err := h.scheduler.ScheduleSync(source, destination, req.Options.toDomain())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Accepted(c, job)
}

// ListJobs returns active jobs and recent history (?limit=, default 20)
//
// @ID           listCatalogSyncJobs
//
//	@Summary		List sync jobs
//	@Description	Returns active jobs and recent history
//	@Tags			sync-jobs
//	@Produce		json
//	@Param			limit	query	int	false	"History size"	default(20)
//	@Success		200	{object}	APIResponse[JobListResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/sync/jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	if !h.available(c) {
		return
	}

	limit := defaultJobHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.BadRequest(c, "limit must be a positive integer")
			return
		}
		limit = n
	}
	h.Success(c, JobListResponse{
		Active:  h.scheduler.ActiveJobs(),
		History: h.scheduler.GetJobHistory(limit),
	})
}

// GetJob returns one active or recently finished job
//
// @ID           getCatalogSyncJob
//
//	@Summary		Get a sync job
//	@Description	Returns one active or recently finished job
//	@Tags			sync-jobs
//	@Produce		json
//	@Param			id	path	string	true	"Job ID"	format(uuid)
//	@Success		200	{object}	APIResponse[scheduler.CatalogSyncJob]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/sync/jobs/{id} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	if !h.available(c) {
		return
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid job ID")
		return
	}
	job, ok := h.scheduler.GetJob(id)
	if !ok {
		h.NotFound(c, "Sync job not found")
		return
	}
	h.Success(c, job)
}

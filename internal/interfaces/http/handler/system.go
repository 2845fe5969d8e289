package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/catalogsync/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// Features reports which optional subsystems this instance runs with.
type Features struct {
	Scheduler   bool `json:"scheduler"`
	Snapshots   bool `json:"snapshots"`
	ServiceAuth bool `json:"service_auth"`
}

// SystemHandler serves build info and a dependency-free ping.
type SystemHandler struct {
	BaseHandler
	name     string
	version  string
	features Features
	started  time.Time
}

func NewSystemHandler(name, version string, features Features) *SystemHandler {
	if version == "" {
		version = "dev"
	}
	return &SystemHandler{name: name, version: version, features: features, started: time.Now()}
}

type SystemInfoResponse struct {
	Name      string                     `json:"name"`
	Version   string                     `json:"version"`
	GoVersion string                     `json:"go_version"`
	Uptime    string                     `json:"uptime"`
	Platforms []integration.PlatformCode `json:"platforms"`
	Features  Features                   `json:"features"`
}

// GetSystemInfo handles GET /system/info.
//
// @ID           getSystemInfo
//
//	@Summary		Get system information
//	@Description	Returns name, version, uptime, configured platforms and enabled features
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	APIResponse[SystemInfoResponse]
//	@Router			/system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(SystemInfoResponse{
		Name:      h.name,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.started).Round(time.Second).String(),
		Platforms: integration.AllPlatforms(),
		Features:  h.features,
	}))
}

type PingResponse struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Ping answers without touching the database or any platform.
//
// @ID           pingSystem
//
//	@Summary		Ping the API
//	@Description	Answers without touching the database or any platform
//	@Tags			system
//	@Produce		json
//	@Success		200	{object}	APIResponse[PingResponse]
//	@Router			/system/ping [get]
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(PingResponse{
		Message:   "pong",
		Timestamp: time.Now().UTC().Truncate(time.Second),
	}))
}

package handler

import (
	"github.com/catalogsync/backend/internal/interfaces/http/router"
)

// SyncRoutes creates the route group for catalog sync endpoints
func SyncRoutes(sync *SyncHandler, mappings *MappingHandler, jobs *JobHandler, snapshots *SnapshotHandler) *router.DomainGroup {
	group := router.NewDomainGroup("sync", "/sync")

	// Platforms
	group.GET("/platforms", sync.ListPlatforms)
	group.GET("/platforms/:platform/health", sync.TestConnection)
	group.GET("/platforms/:platform/products/:platform_product_id/mapping", mappings.FindByPlatformProduct)

	// Sync operations
	group.POST("/products/:platform/:id/sync", sync.SyncProduct)
	group.POST("/batch", sync.SyncBatch)
	group.POST("/import", sync.Import)
	group.POST("/export", sync.Export)

	// Mappings
	group.GET("/mappings/:canonical_id", mappings.ListMappings)
	group.GET("/mappings/:canonical_id/:platform", mappings.GetMapping)
	group.DELETE("/mappings/:id", mappings.DeleteMapping)

	// Canonical store
	group.GET("/products", mappings.ListProducts)
	group.GET("/products/:id", mappings.GetProduct)

	// Scheduled full syncs
	group.POST("/jobs", jobs.ScheduleSync)
	group.GET("/jobs", jobs.ListJobs)
	group.GET("/jobs/:id", jobs.GetJob)

	// Catalog snapshots
	group.POST("/snapshots", snapshots.CreateSnapshot)
	group.GET("/snapshots", snapshots.ListSnapshots)
	group.GET("/snapshots/:name", snapshots.GetSnapshot)
	group.DELETE("/snapshots/:name", snapshots.DeleteSnapshot)

	return group
}

// SystemRoutes creates the route group for system endpoints
func SystemRoutes(system *SystemHandler) *router.DomainGroup {
	group := router.NewDomainGroup("system", "/system")
	group.GET("/info", system.GetSystemInfo)
	group.GET("/ping", system.Ping)
	return group
}

package handler

import (
	"github.com/catalogsync/backend/internal/domain/integration"
	"github.com/catalogsync/backend/internal/infrastructure/scheduler"
)

// SyncOptionsRequest mirrors integration.SyncOptions with request validation
type SyncOptionsRequest struct {
	DryRun      bool `json:"dry_run"`
	Upsert      bool `json:"upsert"`
	Concurrency int  `json:"concurrency" binding:"omitempty,min=1,max=64"`
}

func (o SyncOptionsRequest) toDomain() integration.SyncOptions {
	return integration.SyncOptions{DryRun: o.DryRun, Upsert: o.Upsert, Concurrency: o.Concurrency}
}

// PageRequest selects a page of source products
type PageRequest struct {
	Page    int      `json:"page" binding:"omitempty,min=1"`
	PerPage int      `json:"per_page" binding:"omitempty,min=1,max=250"`
	Cursor  string   `json:"cursor" binding:"max=1024"`
	Status  string   `json:"status" binding:"max=32"`
	IDs     []string `json:"ids" binding:"max=250,dive,required,max=64"`
}

func (p PageRequest) toDomain() integration.PageParams {
	return integration.PageParams{
		Page:    p.Page,
		PerPage: p.PerPage,
		Cursor:  p.Cursor,
		Status:  p.Status,
		IDs:     p.IDs,
	}
}

// SyncProductRequest syncs one source product
type SyncProductRequest struct {
	Destination string             `json:"destination" binding:"required,platform"`
	Options     SyncOptionsRequest `json:"options"`
}

// BatchSyncRequest syncs one page of source products
type BatchSyncRequest struct {
	Source      string             `json:"source" binding:"required,platform"`
	Destination string             `json:"destination" binding:"required,platform"`
	Page        PageRequest        `json:"page"`
	Options     SyncOptionsRequest `json:"options"`
}

// ImportRequest normalizes one page of source products
type ImportRequest struct {
	Source string      `json:"source" binding:"required,platform"`
	Page   PageRequest `json:"page"`
}

// ExportRequest pushes canonical products given inline or by stored ID
type ExportRequest struct {
	Destination string                          `json:"destination" binding:"required,platform"`
	Products    []*integration.CanonicalProduct `json:"products" binding:"max=250"`
	ProductIDs  []string                        `json:"product_ids" binding:"max=250,dive,uuid"`
	Options     SyncOptionsRequest              `json:"options"`
}

// ScheduleSyncRequest queues a full catalog sync
type ScheduleSyncRequest struct {
	Source      string             `json:"source" binding:"required,platform"`
	Destination string             `json:"destination" binding:"required,platform"`
	Options     SyncOptionsRequest `json:"options"`
}

// PlatformResponse describes a configured platform
type PlatformResponse struct {
	Code        integration.PlatformCode `json:"code"`
	DisplayName string                   `json:"display_name"`
}

// ConnectionResponse is the outcome of a platform connection test
type ConnectionResponse struct {
	Platform  integration.PlatformCode `json:"platform"`
	Connected bool                     `json:"connected"`
}

// JobListResponse lists queued, running and finished sync jobs
type JobListResponse struct {
	Active  []scheduler.CatalogSyncJob `json:"active"`
	History []scheduler.CatalogSyncJob `json:"history"`
}

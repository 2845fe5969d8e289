// Package models holds the GORM table structs for the sync backend:
// sync_mappings and canonical_products. Domain types in
// internal/domain/integration carry no ORM tags; each model converts to and
// from its domain type with a FromDomain/ToDomain pair.
package models

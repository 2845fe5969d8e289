// Package integration contains the catalog integration bounded context.
// It models the canonical product hub that every e-commerce platform is
// normalized into and denormalized from.
//
// Key concepts:
//   - CanonicalProduct: platform-agnostic product representation
//   - PlatformAdapter: Port interface for talking to a platform's product API (Shopify, WooCommerce)
//   - Transformer: Port interface for pure payload <-> canonical conversion
//   - SyncMapping: Entity linking a canonical product to its representation on a platform
//   - SyncResult: Per-item outcome of a sync, import or export run
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (implementations) are in the infrastructure layer
package integration

// Package service contains the catalog use cases. It coordinates the stores
// defined in internal/store to serve categories, products and tags with
// their relations loaded, and applies tag reconciliation plans produced by
// internal/domain/tagsync.
//
// Services receive their stores through constructor injection and never
// depend on a concrete database implementation. Errors returned by the
// stores are wrapped in ServiceError or TagSyncError without losing their
// classification, so the API layer can map them with store.KindOf.
package service

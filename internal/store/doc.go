// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the HTTP layer, which depends only on ParkStore and OwnerStore.
package store

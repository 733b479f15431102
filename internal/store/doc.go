// Package store defines interfaces for task storage.
// These interfaces abstract the underlying storage mechanism from the
// application's core logic; the only implementation today is the in-memory
// store in internal/platform/memory.
package store

// Package cache implements the two-tier cache used for embeddings and query
// results: a bounded in-process tier optionally backed by a shared tier
// (remote HTTP or local SQLite). Secondary-tier failures never propagate;
// the cache silently degrades to local-only.
package cache

import "context"

// Cache is the shape every tier implements. Get returns the value and
// whether it was found; implementations absorb their own errors so callers
// never have to distinguish "miss" from "tier down".
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Close() error
}

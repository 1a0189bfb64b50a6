// Package cachestore provides a small TTL'd key/value cache used to memoize
// external lookups (imgur and youtube metadata). Keys are namespaced by a
// "name" so unrelated lookup types don't collide. Entries expire after the
// store's TTL; an expired entry reads as a miss.
package cachestore

import (
	"context"
	"encoding/json"
)

type CacheStore interface {
	// Get returns the cached value, or ("", nil) on a miss.
	Get(ctx context.Context, name, key string) (string, error)
	Set(ctx context.Context, name, key string, val string) error
	Purge(ctx context.Context, name, key string) error
}

// GetJSON reads a cached value and unmarshals it into out, returning whether
// the cache hit.
func GetJSON(ctx context.Context, s CacheStore, name, key string, out any) (bool, error) {
	raw, err := s.Get(ctx, name, key)
	if err != nil || raw == "" {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		// a corrupt entry is just a miss; drop it
		_ = s.Purge(ctx, name, key)
		return false, nil
	}
	return true, nil
}

// SetJSON marshals val and stores it under name/key.
func SetJSON(ctx context.Context, s CacheStore, name, key string, val any) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return s.Set(ctx, name, key, string(raw))
}

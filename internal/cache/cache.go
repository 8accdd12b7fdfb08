// Package cache keeps source image bytes in memory once they have been
// loaded, so later reads of the same image are served without going back
// to storage.
package cache

import (
	"context"
	"errors"

	"golang.org/x/sync/singleflight"
)

// Provider is an interface for getting and setting cached objects
type Provider interface {
	Get(ctx context.Context, key string) (data []byte, err error)
	Set(ctx context.Context, key string, data []byte) (err error)
	Shutdown()
}

// LoaderFunc loads the data for a key that is not in the cache yet
type LoaderFunc func(ctx context.Context, key string) (data []byte, err error)

// Auto is a cache that loads missing objects through its loader and stores
// them for later gets. Concurrent gets for the same key share a single load.
type Auto struct {
	Provider    Provider
	Loader      LoaderFunc
	lookupGroup singleflight.Group
}

// Get returns an object from the cache if it exists, otherwise it loads it
// into the cache and returns it
func (a *Auto) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := a.Provider.Get(ctx, key)
	// Anything but a cache miss settles the get, including provider errors
	if err != ErrNotFound {
		return data, err
	}

	v, err, _ := a.lookupGroup.Do(key, func() (interface{}, error) {
		data, err := a.Loader(ctx, key)
		if err != nil {
			return nil, err
		}

		if err := a.Provider.Set(ctx, key, data); err != nil {
			return nil, err
		}

		return data, nil
	})
	if err != nil {
		return nil, err
	}

	data, _ = v.([]byte)
	return data, nil
}

// Errors
var (
	ErrNotFound = errors.New("not found in cache")
)

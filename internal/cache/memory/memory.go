// Package memory implements an in-memory cache
package memory

import (
	"context"
	"sync"

	"github.com/framr/framr/internal/cache"
)

// Provider implements a simple in-memory cache
type Provider struct {
	objects map[string][]byte
	mutex   sync.RWMutex
}

// New returns a new Provider instance
func New() *Provider {
	return &Provider{
		objects: make(map[string][]byte),
	}
}

// Get returns an object from the cache if it exists
func (p *Provider) Get(ctx context.Context, key string) ([]byte, error) {
	p.mutex.RLock()
	data, exists := p.objects[key]
	p.mutex.RUnlock()

	if !exists {
		return nil, cache.ErrNotFound
	}

	return data, nil
}

// Set adds an object to the cache
func (p *Provider) Set(ctx context.Context, key string, data []byte) error {
	p.mutex.Lock()
	p.objects[key] = data
	p.mutex.Unlock()

	return nil
}

// Shutdown shuts down the cache
func (p *Provider) Shutdown() {}

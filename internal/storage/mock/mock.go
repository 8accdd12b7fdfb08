// Package mock implements an in-memory image storage for tests
package mock

import (
	"context"
	"sort"

	"github.com/framr/framr/internal/storage"
)

// Provider implements a mock image storage backed by a map
type Provider struct {
	Images map[string][]byte
}

// Get returns the source bytes for an image id
func (p *Provider) Get(ctx context.Context, id string) ([]byte, error) {
	data, exists := p.Images[id]
	if !exists {
		return nil, storage.ErrNotFound
	}

	return data, nil
}

// List returns the stored image ids in sorted order
func (p *Provider) List(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(p.Images))
	for id := range p.Images {
		ids = append(ids, id)
	}

	sort.Strings(ids)
	return ids, nil
}

package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/framr/framr/internal/storage"
)

// Extensions that List considers to be source images
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// Provider implements a file-based image source
type Provider struct {
	path string
}

// New returns a new Provider instance
func New(path string) (*Provider, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	return &Provider{
		path,
	}, nil
}

// Get returns the image data for an image id
func (p *Provider) Get(ctx context.Context, id string) ([]byte, error) {
	imageData, err := os.ReadFile(filepath.Join(p.path, id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, storage.ErrNotFound
		}

		return nil, err
	}

	return imageData, nil
}

// List returns the ids of all source images in the directory, sorted by name
func (p *Provider) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(p.path)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			ids = append(ids, entry.Name())
		}
	}

	sort.Strings(ids)

	return ids, nil
}

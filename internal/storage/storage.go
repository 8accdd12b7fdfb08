package storage

import (
	"context"
	"errors"
)

// Provider is an interface for retrieving the encoded bytes of source images
type Provider interface {
	Get(ctx context.Context, id string) ([]byte, error)
	List(ctx context.Context) ([]string, error)
}

// Errors
var (
	ErrNotFound = errors.New("image not found")
)

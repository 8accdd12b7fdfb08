package cache_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/framr/framr/internal/cache"
	"github.com/framr/framr/internal/cache/memory"
	"github.com/framr/framr/internal/storage"
	"github.com/framr/framr/internal/storage/mock"
)

func TestAuto(t *testing.T) {
	ctx := context.Background()

	source := &mock.Provider{
		Images: map[string][]byte{
			"a.png": []byte("source bytes"),
		},
	}

	var loads int
	auto := &cache.Auto{
		Provider: memory.New(),
		Loader: func(ctx context.Context, key string) ([]byte, error) {
			loads++
			return source.Get(ctx, key)
		},
	}

	t.Run("loads a missing object through storage", func(t *testing.T) {
		data, err := auto.Get(ctx, "a.png")
		if err != nil {
			t.Fatal(err)
		}

		if string(data) != "source bytes" {
			t.Errorf("got %q, expected the source bytes", data)
		}

		if loads != 1 {
			t.Errorf("loader ran %d times, expected 1", loads)
		}
	})

	t.Run("serves later gets from memory", func(t *testing.T) {
		// Drop the backing object so a re-read could only come from the cache
		delete(source.Images, "a.png")

		data, err := auto.Get(ctx, "a.png")
		if err != nil {
			t.Fatal(err)
		}

		if string(data) != "source bytes" {
			t.Errorf("got %q, expected the cached bytes", data)
		}

		if loads != 1 {
			t.Errorf("loader ran %d times, expected 1", loads)
		}
	})

	t.Run("propagates loader errors", func(t *testing.T) {
		_, err := auto.Get(ctx, "missing.png")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("got %v, expected storage.ErrNotFound", err)
		}
	})
}

func TestAutoConcurrent(t *testing.T) {
	ctx := context.Background()

	auto := &cache.Auto{
		Provider: memory.New(),
		Loader: func(ctx context.Context, key string) ([]byte, error) {
			return []byte(key), nil
		},
	}

	var group sync.WaitGroup
	for i := 0; i < 8; i++ {
		group.Add(1)
		go func() {
			defer group.Done()

			data, err := auto.Get(ctx, "b.png")
			if err != nil {
				t.Error(err)
				return
			}

			if string(data) != "b.png" {
				t.Errorf("got %q, expected b.png", data)
			}
		}()
	}

	group.Wait()
}

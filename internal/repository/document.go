package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aetherdigital/backend/internal/storage"
)

// document is one JSON array persisted through a storage.Backend. All mutations go
// through update, which runs inside the backend's exclusive Update. mu only keeps
// goroutines of this process from queueing on the backend lock.
type document[T any] struct {
	backend storage.Backend
	name    string
	mu      sync.Mutex
}

func newDocument[T any](backend storage.Backend, name string) *document[T] {
	return &document[T]{backend: backend, name: name}
}

func (d *document[T]) read(ctx context.Context) ([]T, error) {
	data, err := d.backend.Load(ctx, d.name)
	if err != nil {
		return nil, err
	}

	return d.decode(data)
}

func (d *document[T]) decode(data []byte) ([]T, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		// never treat a corrupt document as empty, the next write would wipe it
		return nil, fmt.Errorf("decode %s failed: %w", d.name, err)
	}

	return items, nil
}

// update applies fn to the current items and replaces the document with the result.
// When fn returns changed=false nothing is written. fn may run more than once if the
// backend retries, so it must derive everything from items.
func (d *document[T]) update(ctx context.Context, fn func(items []T) (out []T, changed bool, err error)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.backend.Update(ctx, d.name, func(current []byte) ([]byte, error) {
		items, err := d.decode(current)
		if err != nil {
			return nil, err
		}

		out, changed, err := fn(items)
		if err != nil || !changed {
			return nil, err
		}

		if out == nil {
			out = []T{}
		}

		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode %s failed: %w", d.name, err)
		}

		return data, nil
	})
}

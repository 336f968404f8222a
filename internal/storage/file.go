package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 5 * time.Millisecond

type FileBackend struct {
	dir string
}

func NewFileBackend(dir string) (*FileBackend, error) {
	if dir == "" {
		return nil, errors.New("empty storage dir")
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid document name %q", name)
	}
	return filepath.Join(b.dir, name), nil
}

func (b *FileBackend) Load(_ context.Context, name string) ([]byte, error) {
	const op = "storage.FileBackend.Load"

	path, err := b.path(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: read %s failed: %w", op, name, err)
	}

	return data, nil
}

// Replace writes data to a temp file in the same directory, syncs it and renames it over
// the target, so a crash mid-write leaves the previous version in place.
func (b *FileBackend) Replace(_ context.Context, name string, data []byte) (err error) {
	const op = "storage.FileBackend.Replace"

	path, err := b.path(name)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tmp, err := os.CreateTemp(b.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("%s: create temp failed: %w", op, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("%s: write temp failed: %w", op, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("%s: sync temp failed: %w", op, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%s: close temp failed: %w", op, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%s: rename failed: %w", op, err)
	}

	return nil
}

// Update holds an exclusive flock on a sibling lock file for the whole read-modify-write,
// so the API and the sendbulk command never interleave writes to the same document.
func (b *FileBackend) Update(ctx context.Context, name string, fn UpdateFunc) (err error) {
	const op = "storage.FileBackend.Update"

	if _, err := b.path(name); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	lock := flock.New(filepath.Join(b.dir, "."+name+".lock"))
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("%s: lock %s failed: %w", op, name, err)
	}
	if !locked {
		return fmt.Errorf("%s: lock %s not acquired", op, name)
	}
	defer func() {
		if uerr := lock.Unlock(); uerr != nil && err == nil {
			err = fmt.Errorf("%s: unlock %s failed: %w", op, name, uerr)
		}
	}()

	current, err := b.Load(ctx, name)
	if err != nil {
		return err
	}

	next, err := fn(current)
	if err != nil || next == nil {
		return err
	}

	return b.Replace(ctx, name, next)
}

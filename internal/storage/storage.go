// Package storage keeps whole JSON documents behind a load/replace contract so the
// stores above it can move between flat files, MySQL and Redis without changing callers.
package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

const (
	TypeFile  = "file"
	TypeMySQL = "mysql"
	TypeRedis = "redis"
)

// UpdateFunc maps the current bytes of a document (nil when absent) to its next
// version. Returning nil next leaves the document untouched. It may be called more
// than once when a backend retries after a conflicting write.
type UpdateFunc func(current []byte) (next []byte, err error)

// Backend stores named documents.
//
// Load returns (nil, nil) for a document that was never written.
// Replace swaps the whole document atomically: readers see the old bytes or the new ones,
// never a partial write.
// Update runs a read-modify-write that excludes every other Update of the same document,
// including ones issued by other processes sharing the store.
type Backend interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Replace(ctx context.Context, name string, data []byte) error
	Update(ctx context.Context, name string, fn UpdateFunc) error
}

type Deps struct {
	Dir   string
	DB    *sqlx.DB
	Redis redis.UniversalClient
}

func New(backendType string, deps Deps) (Backend, error) {
	switch backendType {
	case TypeFile, "":
		return NewFileBackend(deps.Dir)
	case TypeMySQL:
		if deps.DB == nil {
			return nil, fmt.Errorf("storage %s: no database connection", backendType)
		}
		return NewMySQLBackend(deps.DB), nil
	case TypeRedis:
		if deps.Redis == nil {
			return nil, fmt.Errorf("storage %s: no redis client", backendType)
		}
		return NewRedisBackend(deps.Redis), nil
	}

	return nil, fmt.Errorf("unknown storage type %q", backendType)
}

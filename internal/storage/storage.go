package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrStorageUnavailable covers connectivity failures to the object store.
var ErrStorageUnavailable = errors.New("object storage unavailable")

// ErrObjectNotFound is returned when the requested key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStore persists uploaded files (probing-chart photos) under opaque
// keys.
type ObjectStore interface {
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

package storage

import (
	"context"
	"io"
)

// ObjectStorage defines the object operations the service needs from a
// storage backend.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	ObjectURL(key string) string
}

// Storage wraps an ObjectStorage backend with a stable API.
type Storage struct {
	backend ObjectStorage
}

func New(backend ObjectStorage) *Storage {
	return &Storage{backend: backend}
}

func (s *Storage) EnsureBucket(ctx context.Context) error {
	return s.backend.EnsureBucket(ctx)
}

func (s *Storage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	return s.backend.Put(ctx, key, r, size, contentType)
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	return s.backend.Delete(ctx, key)
}

func (s *Storage) ObjectURL(key string) string {
	return s.backend.ObjectURL(key)
}

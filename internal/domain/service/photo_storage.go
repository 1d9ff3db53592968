package service

import (
	"context"
	"io"

	"cadastre/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrPhotoNotFound is returned when no object is stored under the requested key.
var ErrPhotoNotFound = errors.New("photo not found")

// PhotoStorage keeps property photos in an object store.
type PhotoStorage interface {
	// Put stores r under key, replacing any previous object.
	Put(ctx context.Context, key, contentType string, r io.Reader) (*entity.PropertyPhoto, error)

	// Open returns a reader for the object; the caller closes it.
	Open(ctx context.Context, key string) (io.ReadCloser, *entity.PropertyPhoto, error)

	// Delete removes the object. Deleting a missing key returns ErrPhotoNotFound.
	Delete(ctx context.Context, key string) error

	Close() error
}

// Package storage keeps property photos in a gocloud blob bucket.
package storage

import (
	"context"
	"io"
	"log/slog"

	"cadastre/config"
	"cadastre/internal/domain/entity"
	"cadastre/internal/domain/service"
	"cadastre/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"
)

type blobStorage struct {
	bucket *blob.Bucket
}

// Params holds dependencies for the photo storage, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured bucket and closes it on shutdown.
func New(params Params) (service.PhotoStorage, error) {
	storage, err := Open(params.Ctx, params.Config.Storage.BucketURL)
	if err != nil {
		return nil, err
	}
	params.Logger.Info("Photo storage bucket opened", slog.String("url", params.Config.Storage.BucketURL))

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return storage.Close()
		},
	})

	return storage, nil
}

// Open opens a bucket by URL, e.g. mem://, file:///var/lib/cadastre, s3://bucket, gs://bucket.
func Open(ctx context.Context, bucketURL string) (service.PhotoStorage, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open bucket %s", bucketURL)
	}

	return NewBlobStorage(bucket), nil
}

// NewBlobStorage wraps an already opened bucket.
func NewBlobStorage(bucket *blob.Bucket) service.PhotoStorage {
	return &blobStorage{bucket: bucket}
}

func (s *blobStorage) Put(ctx context.Context, key, contentType string, r io.Reader) (*entity.PropertyPhoto, error) {
	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return nil, errors.Wrapf(err, "open writer for %s", key)
	}

	digest := util.NewDigest(r)
	if _, err := io.Copy(w, digest); err != nil {
		_ = w.Close()

		return nil, errors.Wrapf(err, "write %s", key)
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrapf(err, "close writer for %s", key)
	}

	attrs, err := s.bucket.Attributes(ctx, key)
	if err != nil {
		return nil, s.mapError(err, key)
	}

	return &entity.PropertyPhoto{
		Key:         key,
		ContentType: attrs.ContentType,
		Size:        digest.Size(),
		Checksum:    digest.Sum(),
		ModTime:     attrs.ModTime,
	}, nil
}

func (s *blobStorage) Open(ctx context.Context, key string) (io.ReadCloser, *entity.PropertyPhoto, error) {
	reader, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, nil, s.mapError(err, key)
	}

	return reader, &entity.PropertyPhoto{
		Key:         key,
		ContentType: reader.ContentType(),
		Size:        reader.Size(),
		ModTime:     reader.ModTime(),
	}, nil
}

func (s *blobStorage) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		return s.mapError(err, key)
	}

	return nil
}

func (s *blobStorage) Close() error {
	return errors.WithStack(s.bucket.Close())
}

func (s *blobStorage) mapError(err error, key string) error {
	if gcerrors.Code(err) == gcerrors.NotFound {
		return service.ErrPhotoNotFound
	}

	return errors.Wrapf(err, "blob %s", key)
}

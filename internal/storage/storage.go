// Package storage puts uploaded documents into object storage and lists them
// back by key prefix.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/yukikurage/legal-case-api/internal/config"
	"github.com/yukikurage/legal-case-api/internal/metrics"
)

var ErrInvalidKey = errors.New("storage: invalid object key")

// ObjectStore is the subset of object storage the document service needs.
// Implementations make a single attempt per call.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	List(ctx context.Context, prefix string) ([]string, error)
}

// New builds the object store selected by cfg.ObjectStore, wrapped with
// metrics.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ObjectStore, error) {
	var (
		store ObjectStore
		err   error
	)
	switch cfg.ObjectStore {
	case config.ObjectStoreS3:
		store, err = NewS3Store(ctx, S3Options{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretKey,
			UsePathStyle:    cfg.S3UsePathStyle,
			Encrypt:         cfg.S3SSE,
		}, log)
	case config.ObjectStoreMinio:
		store, err = NewMinioStore(ctx, MinioOptions{
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretKey,
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			UseSSL:          cfg.S3UseSSL,
			Encrypt:         cfg.S3SSE,
		})
	case config.ObjectStoreLocal:
		store, err = NewLocalStore(cfg.LocalStoragePath)
	default:
		return nil, fmt.Errorf("unknown object store %q", cfg.ObjectStore)
	}
	if err != nil {
		return nil, err
	}
	log.Info().Str("object_store", cfg.ObjectStore).Msg("object storage ready")
	return Instrument(store, cfg.ObjectStore), nil
}

// Instrumented records the outcome and latency of every call.
type Instrumented struct {
	inner   ObjectStore
	backend string
}

// Instrument wraps store so its calls show up in the object store metrics.
func Instrument(store ObjectStore, backend string) *Instrumented {
	return &Instrumented{inner: store, backend: backend}
}

func (s *Instrumented) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	start := time.Now()
	err := s.inner.Put(ctx, key, body, size, contentType)
	metrics.RecordStorageOperation(s.backend, "put", status(err), time.Since(start).Seconds())
	return err
}

func (s *Instrumented) List(ctx context.Context, prefix string) ([]string, error) {
	start := time.Now()
	keys, err := s.inner.List(ctx, prefix)
	metrics.RecordStorageOperation(s.backend, "list", status(err), time.Since(start).Seconds())
	return keys, err
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

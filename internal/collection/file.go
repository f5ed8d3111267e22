package collection

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// FileCollection keeps a whole collection as one JSON array on disk. Every
// mutation rewrites the full file, so it only suits small record counts.
// Writers are serialized by a mutex and the file is replaced via rename, so
// readers never observe a partial write.
type FileCollection[T Record] struct {
	path string
	mu   sync.RWMutex
	log  zerolog.Logger
}

// NewFileCollection returns a collection stored at dir/name.json. The file
// itself is created lazily on the first write.
func NewFileCollection[T Record](dir, name string, log zerolog.Logger) (*FileCollection[T], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileCollection[T]{
		path: filepath.Join(dir, name+".json"),
		log:  log.With().Str("collection", name).Logger(),
	}, nil
}

// Path returns the backing file path.
func (c *FileCollection[T]) Path() string {
	return c.path
}

func (c *FileCollection[T]) Append(ctx context.Context, rec T) error {
	return c.mutate(ctx, func(records []T) ([]T, error) {
		return append(records, rec), nil
	})
}

func (c *FileCollection[T]) AppendUnique(ctx context.Context, rec T, unique Match) error {
	return c.mutate(ctx, func(records []T) ([]T, error) {
		for _, existing := range records {
			if unique.Matches(existing) {
				return nil, ErrConflict
			}
		}
		return append(records, rec), nil
	})
}

func (c *FileCollection[T]) List(ctx context.Context, m Match) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	records, _, err := c.load()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if m.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (c *FileCollection[T]) FindOne(ctx context.Context, m Match) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	records, _, err := c.load()
	if err != nil {
		return zero, err
	}
	for _, rec := range records {
		if m.Matches(rec) {
			return rec, nil
		}
	}
	return zero, ErrNotFound
}

func (c *FileCollection[T]) Update(ctx context.Context, id string, mutate func(*T) error) error {
	return c.mutate(ctx, func(records []T) ([]T, error) {
		for i := range records {
			if records[i].RecordID() != id {
				continue
			}
			if err := mutate(&records[i]); err != nil {
				return nil, err
			}
			return records, nil
		}
		return nil, ErrNotFound
	})
}

// mutate runs a full read-modify-write cycle under the write lock. A
// missing file is materialized as an empty collection before fn runs.
func (c *FileCollection[T]) mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	records, exists, err := c.load()
	if err != nil {
		return err
	}
	if !exists {
		if err := c.store(records); err != nil {
			return err
		}
	}

	updated, err := fn(records)
	if err != nil {
		return err
	}
	return c.store(updated)
}

func (c *FileCollection[T]) load() ([]T, bool, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", c.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, true, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, true, fmt.Errorf("decode %s: %w", c.path, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, true, nil
}

func (c *FileCollection[T]) store(records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), filepath.Base(c.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		if rmErr := os.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			c.log.Warn().Err(rmErr).Str("file", tmpName).Msg("failed to remove temp file")
		}
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		cleanup()
		return fmt.Errorf("replace %s: %w", c.path, err)
	}
	return nil
}

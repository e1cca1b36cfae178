package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileAdapter stores one JSON file per collection under a directory.
// Writes go to a temp file that is renamed into place.
type FileAdapter struct {
	dir string
}

func NewFileAdapter(dir string) (*FileAdapter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &FileAdapter{dir: dir}, nil
}

func (f *FileAdapter) path(collection string) string {
	return filepath.Join(f.dir, collection+".json")
}

func (f *FileAdapter) Get(ctx context.Context, collection string) ([]json.RawMessage, error) {
	payload, err := os.ReadFile(f.path(collection))
	if errors.Is(err, os.ErrNotExist) {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", collection, err)
	}
	return decodeCollection(ctx, collection, payload), nil
}

func (f *FileAdapter) Set(_ context.Context, collection string, records []json.RawMessage) error {
	payload, err := encodeCollection(records)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", collection, err)
	}
	tmp, err := os.CreateTemp(f.dir, collection+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", collection, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", collection, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", collection, err)
	}
	if err := os.Rename(tmpName, f.path(collection)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", collection, err)
	}
	return nil
}

func (f *FileAdapter) Close() error { return nil }

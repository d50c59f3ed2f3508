package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// jsonFileStorage stores each collection as a separate JSON file.
//
// Layout:
//
//	data_dir/
//	  authors.json
//	  books.json
//	  publishers.json
type jsonFileStorage struct {
	logger *zap.Logger
	dir    string
}

// NewJSONFileStorage provides an instance of file-based collections storage.
func NewJSONFileStorage(logger *zap.Logger, dir string) (Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &jsonFileStorage{logger: logger, dir: dir}, nil
}

func (js *jsonFileStorage) path(name CollectionName) string {
	return filepath.Join(js.dir, string(name)+".json")
}

// Read returns the raw content of the collection file.
func (js *jsonFileStorage) Read(_ context.Context, name CollectionName) ([]byte, error) {
	data, err := os.ReadFile(js.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrCollectionMissing
	}
	return data, err
}

// Write replaces the collection file. Content goes to a temporary file
// in the same folder which is then renamed over the previous one.
func (js *jsonFileStorage) Write(_ context.Context, name CollectionName, data []byte) error {
	tmp, err := os.CreateTemp(js.dir, "."+string(name)+".json-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, js.path(name))
}

// Close is a no-op, files are never kept open.
func (js *jsonFileStorage) Close() error {
	return nil
}

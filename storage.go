package main

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// ErrCollectionMissing is returned by a Storage when the collection
// was never persisted.
var ErrCollectionMissing = errors.New("collection not persisted")

//go:embed seed/*.json
var builtinSeeds embed.FS

// Storage defines a backend able to persist whole encoded collections.
type Storage interface {
	Read(ctx context.Context, name CollectionName) ([]byte, error)
	Write(ctx context.Context, name CollectionName, data []byte) error
	Close() error
}

// CollectionStore hydrates and persists typed collections on top of a
// Storage backend. Collections absent from the backend are seeded on
// first access, from the bundled seed folder when configured and from
// the built-in data set otherwise.
type CollectionStore struct {
	logger  *zap.Logger
	backend Storage
	seedDir string
}

// NewCollectionStore provides an instance of CollectionStore.
func NewCollectionStore(logger *zap.Logger, backend Storage, seedDir string) *CollectionStore {
	return &CollectionStore{
		logger:  logger,
		backend: backend,
		seedDir: seedDir,
	}
}

// LoadCollection decodes the named collection into dst which must be a
// pointer to a slice of records.
func (cs *CollectionStore) LoadCollection(ctx context.Context, name CollectionName, dst any) error {
	data, err := cs.backend.Read(ctx, name)
	if errors.Is(err, ErrCollectionMissing) {
		return cs.seedCollection(ctx, name, dst)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s collection: %w", name, err)
	}
	if err = json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode %s collection: %w", name, err)
	}
	return nil
}

// SaveCollection replaces the persisted content of the named collection.
func (cs *CollectionStore) SaveCollection(ctx context.Context, name CollectionName, records any) error {
	data, err := EncodeCollection(records)
	if err != nil {
		return fmt.Errorf("failed to encode %s collection: %w", name, err)
	}
	if err = cs.backend.Write(ctx, name, data); err != nil {
		return fmt.Errorf("failed to write %s collection: %w", name, err)
	}
	return nil
}

func (cs *CollectionStore) seedCollection(ctx context.Context, name CollectionName, dst any) error {
	data, source, err := cs.seedData(name)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode %s seed from %s: %w", name, source, err)
	}
	if err = cs.SaveCollection(ctx, name, dst); err != nil {
		return err
	}
	cs.logger.Info("collection seeded", zap.String("collection", string(name)), zap.String("seed.source", source))
	return nil
}

// seedData returns the initial content of a collection and where it comes from.
func (cs *CollectionStore) seedData(name CollectionName) ([]byte, string, error) {
	if cs.seedDir != "" {
		path := filepath.Join(cs.seedDir, string(name)+".json")
		data, err := os.ReadFile(path)
		if err == nil {
			return data, path, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			cs.logger.Warn("failed to read bundled seed", zap.String("collection", string(name)), zap.String("seed.path", path), zap.Error(err))
		}
	}
	data, err := builtinSeeds.ReadFile("seed/" + string(name) + ".json")
	if err != nil {
		return nil, "", fmt.Errorf("no seed available for %s collection: %w", name, err)
	}
	return data, "builtin", nil
}

// EncodeCollection renders records as a pretty-printed json array.
// HTML characters are kept as is to keep the files human friendly.
func EncodeCollection(records any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"
)

type boltStorage struct {
	logger *zap.Logger
	client *bolt.DB
	config *BoltDBConfig
}

// GetBoltDBClient setup the database inside the data folder and the bucket
// then provides a ready to use client.
func GetBoltDBClient(config *BoltDBConfig, dataDir string) (*bolt.DB, error) {
	path := config.FileName
	if !filepath.IsAbs(path) {
		path = filepath.Join(dataDir, path)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: config.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open the database, %v", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, errB := tx.CreateBucketIfNotExists([]byte(config.BucketName)); errB != nil {
			return fmt.Errorf("failed to create %s bucket: %v", config.BucketName, errB)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set up bucket: %v", err)
	}
	return db, nil
}

// NewBoltStorage provides an instance of bolt-based collections storage.
// Each collection is a single key of the configured bucket.
func NewBoltStorage(logger *zap.Logger, boltConfig *BoltDBConfig, client *bolt.DB) Storage {
	return &boltStorage{
		logger: logger,
		client: client,
		config: boltConfig,
	}
}

// Close shuts down the bolt-based storage.
func (bs *boltStorage) Close() error {
	return bs.client.Close()
}

// Read retrieves the encoded collection from boltdb store.
func (bs *boltStorage) Read(_ context.Context, name CollectionName) ([]byte, error) {
	var data []byte
	err := bs.client.View(func(tx *bolt.Tx) error {
		value := tx.Bucket([]byte(bs.config.BucketName)).Get([]byte(name))
		if value == nil {
			return ErrCollectionMissing
		}
		// value is only valid during the transaction.
		data = append([]byte(nil), value...)
		return nil
	})
	return data, err
}

// Write replaces the encoded collection into boltdb store.
func (bs *boltStorage) Write(_ context.Context, name CollectionName, data []byte) error {
	return bs.client.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bs.config.BucketName)).Put([]byte(name), data)
	})
}

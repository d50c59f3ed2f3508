package main

import (
	"fmt"

	"go.uber.org/zap"
)

// Supported storage backends.
const (
	JSONBackend   = "json"
	BoltBackend   = "bolt"
	SQLiteBackend = "sqlite"
	RedisBackend  = "redis"
)

// NewStorage creates the collections backend selected by the configuration.
// File based backends keep their files under dataDir.
func NewStorage(logger *zap.Logger, config *Config, dataDir string) (Storage, error) {
	switch config.Storage.Backend {
	case JSONBackend, "":
		return NewJSONFileStorage(logger, dataDir)

	case BoltBackend:
		client, err := GetBoltDBClient(&config.BoltDB, dataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to boltDB server: %s", err)
		}
		return NewBoltStorage(logger, &config.BoltDB, client), nil

	case SQLiteBackend:
		db, err := GetSQLiteClient(&config.SQLite, dataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to setup sqlite database: %s", err)
		}
		return NewSQLiteStorage(logger, db), nil

	case RedisBackend:
		client, err := GetRedisClient(&config.Redis)
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to redis server: %s", err)
		}
		return NewRedisStorage(logger, client, config.Redis.KeyPrefix), nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %q", config.Storage.Backend)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type redisStorage struct {
	logger *zap.Logger
	client *redis.Client
	prefix string
}

// NewRedisStorage provides an instance of redis-based collections storage.
// Each collection is stored as a single string value under prefix+name.
func NewRedisStorage(logger *zap.Logger, client *redis.Client, prefix string) Storage {
	return &redisStorage{
		logger: logger,
		client: client,
		prefix: prefix,
	}
}

// GetRedisClient provides a ready to use redis client.
func GetRedisClient(config *RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", config.Host, config.Port),
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		PoolSize:     config.PoolSize,
		PoolTimeout:  config.PoolTimeout,
		Password:     config.Password,
		Username:     config.Username,
		DB:           config.DatabaseIndex,
	})

	// test connection.
	if pong, err := client.Ping(context.Background()).Result(); pong != "PONG" || err != nil {
		return client, fmt.Errorf("test connection failed: %v", err)
	}
	return client, nil
}

func (rs *redisStorage) key(name CollectionName) string {
	return rs.prefix + string(name)
}

// Read retrieves the encoded collection.
func (rs *redisStorage) Read(ctx context.Context, name CollectionName) ([]byte, error) {
	data, err := rs.client.Get(ctx, rs.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCollectionMissing
	}
	return data, err
}

// Write replaces the encoded collection. No expiration is set.
func (rs *redisStorage) Write(ctx context.Context, name CollectionName, data []byte) error {
	return rs.client.Set(ctx, rs.key(name), data, 0).Err()
}

// Close releases the redis connections pool.
func (rs *redisStorage) Close() error {
	return rs.client.Close()
}

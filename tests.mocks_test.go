package main

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

// This file contains mocks definitions needed to perform unit tests.

// MockStorage is an in-memory Storage. ReadFunc and WriteFunc, when
// set, replace the default map based behavior.
type MockStorage struct {
	mu        sync.Mutex
	data      map[CollectionName][]byte
	writes    int
	ReadFunc  func(ctx context.Context, name CollectionName) ([]byte, error)
	WriteFunc func(ctx context.Context, name CollectionName, data []byte) error
}

// NewMockStorage returns an empty in-memory storage.
func NewMockStorage() *MockStorage {
	return &MockStorage{data: make(map[CollectionName][]byte)}
}

// Read mocks the behavior of loading a collection from the backend.
func (m *MockStorage) Read(ctx context.Context, name CollectionName) ([]byte, error) {
	if m.ReadFunc != nil {
		return m.ReadFunc(ctx, name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.data[name]
	if !ok {
		return nil, ErrCollectionMissing
	}
	return data, nil
}

// Write mocks the behavior of persisting a collection to the backend.
func (m *MockStorage) Write(ctx context.Context, name CollectionName, data []byte) error {
	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, name, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[name] = append([]byte(nil), data...)
	m.writes++
	return nil
}

// Close is a no-op.
func (m *MockStorage) Close() error {
	return nil
}

// Writes returns the number of successful writes.
func (m *MockStorage) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Raw returns the bytes currently stored for a collection.
func (m *MockStorage) Raw(name CollectionName) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[name]
}

// newTestCatalog returns a catalog seeded with the built-in data set
// on top of a fresh in-memory storage.
func newTestCatalog(t *testing.T) (*Catalog, *MockStorage) {
	t.Helper()
	storage := NewMockStorage()
	return NewCatalog(zap.NewNop(), NewCollectionStore(zap.NewNop(), storage, "")), storage
}

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2023, 0o7, 0o2, 0o0, 0o0, 0o0, 0o00000000, time.UTC)}
}

// Now returns an already defined time to be used as mock. This
// equals to `Sun, 02 Jul 2023 00:00:00 UTC` in time.RFC1123 format.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}

// MockUIDHandler implements a fake UIDHandler.
type MockUIDHandler struct {
	MockedUID string
}

// NewMockUIDHandler returns a mocked instance with predictable id.
func NewMockUIDHandler(id string) *MockUIDHandler {
	return &MockUIDHandler{MockedUID: id}
}

// Generate constructs a predictable id to be used as mock.
func (muid *MockUIDHandler) Generate(prefix string) string {
	return prefix + ":" + muid.MockedUID
}

// newTestAPIHandler builds an api handler on top of a seeded test catalog.
func newTestAPIHandler(t *testing.T, config *Config) (*APIHandler, *MockStorage) {
	t.Helper()
	if config == nil {
		config = &Config{}
	}
	catalog, storage := newTestCatalog(t)
	clock := NewMockClocker()
	api := NewAPIHandler(zap.NewNop(), config, &Statistics{started: clock.Now()}, clock, NewMockUIDHandler("0"), catalog)
	return api, storage
}

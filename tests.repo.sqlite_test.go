package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSQLiteStore(t *testing.T, dir string) Storage {
	t.Helper()
	db, err := GetSQLiteClient(&SQLiteConfig{FileName: "test.sqlite.db"}, dir)
	require.NoError(t, err, "failed in creating a test sqlite store")
	s := NewSQLiteStorage(zap.NewNop(), db)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStorage(t *testing.T) {
	testStorageContract(t, newTestSQLiteStore(t, t.TempDir()))
}

// TestSQLiteStorage_Reopen ensures collections survive a restart.
func TestSQLiteStorage_Reopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s := newTestSQLiteStore(t, dir)
	c := NewCatalog(zap.NewNop(), NewCollectionStore(zap.NewNop(), s, ""))
	removed, err := c.DeleteBook(ctx, "b2")
	require.NoError(t, err)
	assert.True(t, removed)
	require.NoError(t, s.Close())

	s = newTestSQLiteStore(t, dir)
	c = NewCatalog(zap.NewNop(), NewCollectionStore(zap.NewNop(), s, ""))
	books, err := c.ListBooks(ctx, ListParams{})
	require.NoError(t, err)
	assert.Equal(t, []string{"b1"}, bookIDs(books))
}

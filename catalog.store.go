package main

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// CollectionLoader is the storage side of the catalog. Swapping it is
// enough to move the catalog onto another kind of store.
type CollectionLoader interface {
	LoadCollection(ctx context.Context, name CollectionName, dst any) error
	SaveCollection(ctx context.Context, name CollectionName, records any) error
}

// Catalog owns the in-memory books, authors and publishers collections.
// Every operation reloads them from the store first, then computes and
// optionally persists the result. The whole sequence runs under mu so
// concurrent requests never interleave a reload with a write.
type Catalog struct {
	logger     *zap.Logger
	store      CollectionLoader
	mu         sync.Mutex
	books      []Book
	authors    []Author
	publishers []Publisher
}

// NewCatalog provides an instance of Catalog.
func NewCatalog(logger *zap.Logger, store CollectionLoader) *Catalog {
	return &Catalog{logger: logger, store: store}
}

// refresh replaces the in-memory collections wholesale. Callers hold mu.
func (c *Catalog) refresh(ctx context.Context) error {
	authors, err := loadRecords[Author](ctx, c.store, AuthorsCollection)
	if err != nil {
		return err
	}
	publishers, err := loadRecords[Publisher](ctx, c.store, PublishersCollection)
	if err != nil {
		return err
	}
	books, err := loadRecords[Book](ctx, c.store, BooksCollection)
	if err != nil {
		return err
	}
	c.authors, c.publishers, c.books = authors, publishers, books
	return nil
}

func loadRecords[T any](ctx context.Context, store CollectionLoader, name CollectionName) ([]T, error) {
	var records []T
	if err := store.LoadCollection(ctx, name, &records); err != nil {
		return nil, storageError("failed to load "+string(name), err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// persist writes records as the new content of the named collection.
func (c *Catalog) persist(ctx context.Context, name CollectionName, records any) error {
	if err := c.store.SaveCollection(ctx, name, records); err != nil {
		c.logger.Error("failed to persist collection", zap.String("collection", string(name)), zap.Error(err))
		return storageError("failed to save "+string(name), err)
	}
	return nil
}

// Counts returns the number of records of each collection.
func (c *Catalog) Counts(ctx context.Context) (map[CollectionName]int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.refresh(ctx); err != nil {
		return nil, err
	}
	return map[CollectionName]int{
		BooksCollection:      len(c.books),
		AuthorsCollection:    len(c.authors),
		PublishersCollection: len(c.publishers),
	}, nil
}

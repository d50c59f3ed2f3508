package main

import (
	"context"
)

var _ CatalogServiceProvider = (*Catalog)(nil) // ensure Catalog implements CatalogServiceProvider.

// CatalogServiceProvider defines the catalog operations exposed by the api.
type CatalogServiceProvider interface {
	ListBooks(ctx context.Context, params ListParams) ([]Book, error)
	CreateBook(ctx context.Context, book Book) (Book, error)
	GetBook(ctx context.Context, id string) (Book, bool, error)
	UpdateBook(ctx context.Context, id string, book Book) (Book, bool, error)
	DeleteBook(ctx context.Context, id string) (bool, error)

	ListAuthors(ctx context.Context, params ListParams) ([]Author, error)
	CreateAuthor(ctx context.Context, author Author) (Author, error)
	GetAuthor(ctx context.Context, id string) (Author, bool, error)
	UpdateAuthor(ctx context.Context, id string, author Author) (Author, bool, error)
	DeleteAuthor(ctx context.Context, id string) (bool, error)

	ListPublishers(ctx context.Context, params ListParams) ([]Publisher, error)
	CreatePublisher(ctx context.Context, publisher Publisher) (Publisher, error)
	GetPublisher(ctx context.Context, id string) (Publisher, bool, error)
	UpdatePublisher(ctx context.Context, id string, publisher Publisher) (Publisher, bool, error)
	DeletePublisher(ctx context.Context, id string) (bool, error)

	Counts(ctx context.Context) (map[CollectionName]int, error)
}

package main

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// ListBooks returns the books matching params.
func (c *Catalog) ListBooks(ctx context.Context, params ListParams) ([]Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.refresh(ctx); err != nil {
		return nil, err
	}
	return bookQuerySchema.apply(c.books, params), nil
}

// CreateBook stores a new book after checking its id and references.
func (c *Catalog) CreateBook(ctx context.Context, book Book) (Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.refresh(ctx); err != nil {
		return Book{}, err
	}
	books, err := appendRecord(c.books, book, "book")
	if err != nil {
		return Book{}, err
	}
	if err = c.checkBookReferences(book); err != nil {
		return Book{}, err
	}
	if err = c.persist(ctx, BooksCollection, books); err != nil {
		return Book{}, err
	}
	c.books = books
	c.logger.Debug("book created", zap.String("book.id", book.ID))
	return book, nil
}

// GetBook looks a book up by id. The boolean reports whether it exists.
func (c *Catalog) GetBook(ctx context.Context, id string) (Book, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.refresh(ctx); err != nil {
		return Book{}, false, err
	}
	idx := indexOf(c.books, id)
	if idx < 0 {
		return Book{}, false, nil
	}
	return c.books[idx], true, nil
}

// UpdateBook replaces the book identified by id. The stored book always
// carries id, whatever the payload says.
func (c *Catalog) UpdateBook(ctx context.Context, id string, book Book) (Book, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.refresh(ctx); err != nil {
		return Book{}, false, err
	}
	if !containsID(c.books, id) {
		return Book{}, false, nil
	}
	if err := c.checkBookReferences(book); err != nil {
		return Book{}, true, err
	}
	books, book, _ := replaceRecord(c.books, id, book)
	if err := c.persist(ctx, BooksCollection, books); err != nil {
		return Book{}, true, err
	}
	c.books = books
	c.logger.Debug("book updated", zap.String("book.id", id))
	return book, true, nil
}

// DeleteBook removes the book identified by id and reports if one was removed.
func (c *Catalog) DeleteBook(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.refresh(ctx); err != nil {
		return false, err
	}
	books, removed := removeRecord(c.books, id)
	if !removed {
		return false, nil
	}
	if err := c.persist(ctx, BooksCollection, books); err != nil {
		return false, err
	}
	c.books = books
	c.logger.Debug("book deleted", zap.String("book.id", id))
	return true, nil
}

// checkBookReferences ensures non-empty author and publisher ids resolve.
func (c *Catalog) checkBookReferences(book Book) error {
	if strings.TrimSpace(book.AuthorID) != "" && !containsID(c.authors, book.AuthorID) {
		return validationError("authorId does not exist")
	}
	if strings.TrimSpace(book.PublisherID) != "" && !containsID(c.publishers, book.PublisherID) {
		return validationError("publisherId does not exist")
	}
	return nil
}

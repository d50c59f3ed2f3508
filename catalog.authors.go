package main

import (
	"context"
	"slices"

	"go.uber.org/zap"
)

// ListAuthors returns the authors matching params.
func (c *Catalog) ListAuthors(ctx context.Context, params ListParams) ([]Author, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.refresh(ctx); err != nil {
		return nil, err
	}
	return authorQuerySchema.apply(c.authors, params), nil
}

// CreateAuthor stores a new author.
func (c *Catalog) CreateAuthor(ctx context.Context, author Author) (Author, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.refresh(ctx); err != nil {
		return Author{}, err
	}
	authors, err := appendRecord(c.authors, author, "author")
	if err != nil {
		return Author{}, err
	}
	if err = c.persist(ctx, AuthorsCollection, authors); err != nil {
		return Author{}, err
	}
	c.authors = authors
	c.logger.Debug("author created", zap.String("author.id", author.ID))
	return author, nil
}

// GetAuthor looks an author up by id.
func (c *Catalog) GetAuthor(ctx context.Context, id string) (Author, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.refresh(ctx); err != nil {
		return Author{}, false, err
	}
	idx := indexOf(c.authors, id)
	if idx < 0 {
		return Author{}, false, nil
	}
	return c.authors[idx], true, nil
}

// UpdateAuthor replaces the author identified by id.
func (c *Catalog) UpdateAuthor(ctx context.Context, id string, author Author) (Author, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.refresh(ctx); err != nil {
		return Author{}, false, err
	}
	authors, author, found := replaceRecord(c.authors, id, author)
	if !found {
		return Author{}, false, nil
	}
	if err := c.persist(ctx, AuthorsCollection, authors); err != nil {
		return Author{}, true, err
	}
	c.authors = authors
	c.logger.Debug("author updated", zap.String("author.id", id))
	return author, true, nil
}

// DeleteAuthor removes the author identified by id. It fails with a
// conflict while at least one book still references that id.
func (c *Catalog) DeleteAuthor(ctx context.Context, id string) (bool, error) {
	// A blank id would match every book without a author.
	if normalize(id) == "" {
		return false, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.refresh(ctx); err != nil {
		return false, err
	}
	if slices.ContainsFunc(c.books, func(b Book) bool { return sameID(b.AuthorID, id) }) {
		return false, conflictError("author has associated books")
	}
	authors, removed := removeRecord(c.authors, id)
	if !removed {
		return false, nil
	}
	if err := c.persist(ctx, AuthorsCollection, authors); err != nil {
		return false, err
	}
	c.authors = authors
	c.logger.Debug("author deleted", zap.String("author.id", id))
	return true, nil
}

package main

import (
	"context"
	"slices"

	"go.uber.org/zap"
)

func (c *Catalog) ListPublishers(ctx context.Context, params ListParams) ([]Publisher, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.refresh(ctx); err != nil {
		return nil, err
	}
	return publisherQuerySchema.apply(c.publishers, params), nil
}

func (c *Catalog) CreatePublisher(ctx context.Context, publisher Publisher) (Publisher, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.refresh(ctx); err != nil {
		return Publisher{}, err
	}
	publishers, err := appendRecord(c.publishers, publisher, "publisher")
	if err != nil {
		return Publisher{}, err
	}
	if err = c.persist(ctx, PublishersCollection, publishers); err != nil {
		return Publisher{}, err
	}
	c.publishers = publishers
	c.logger.Debug("publisher created", zap.String("publisher.id", publisher.ID))
	return publisher, nil
}

func (c *Catalog) GetPublisher(ctx context.Context, id string) (Publisher, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.refresh(ctx); err != nil {
		return Publisher{}, false, err
	}
	idx := indexOf(c.publishers, id)
	if idx < 0 {
		return Publisher{}, false, nil
	}
	return c.publishers[idx], true, nil
}

func (c *Catalog) UpdatePublisher(ctx context.Context, id string, publisher Publisher) (Publisher, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.refresh(ctx); err != nil {
		return Publisher{}, false, err
	}
	publishers, publisher, found := replaceRecord(c.publishers, id, publisher)
	if !found {
		return Publisher{}, false, nil
	}
	if err := c.persist(ctx, PublishersCollection, publishers); err != nil {
		return Publisher{}, true, err
	}
	c.publishers = publishers
	c.logger.Debug("publisher updated", zap.String("publisher.id", id))
	return publisher, true, nil
}

// DeletePublisher removes the publisher identified by id unless a book
// still references it.
func (c *Catalog) DeletePublisher(ctx context.Context, id string) (bool, error) {
	// A blank id would match every book without a publisher.
	if normalize(id) == "" {
		return false, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.refresh(ctx); err != nil {
		return false, err
	}
	if slices.ContainsFunc(c.books, func(b Book) bool { return sameID(b.PublisherID, id) }) {
		return false, conflictError("publisher has associated books")
	}
	publishers, removed := removeRecord(c.publishers, id)
	if !removed {
		return false, nil
	}
	if err := c.persist(ctx, PublishersCollection, publishers); err != nil {
		return false, err
	}
	c.publishers = publishers
	c.logger.Debug("publisher deleted", zap.String("publisher.id", id))
	return true, nil
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestCatalog_Seeded ensures a fresh storage exposes the built-in data set.
func TestCatalog_Seeded(t *testing.T) {
	c, storage := newTestCatalog(t)
	counts, err := c.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[CollectionName]int{BooksCollection: 2, AuthorsCollection: 2, PublishersCollection: 2}, counts)
	for _, name := range Collections {
		assert.NotEmpty(t, storage.Raw(name), "collection %s should be persisted", name)
	}
}

func TestCatalog_CreateAndGetAuthor(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	created, err := c.CreateAuthor(ctx, Author{ID: "A3", Name: "Gabriel Garcia Marquez", Country: "Colombia"})
	require.NoError(t, err)
	assert.Equal(t, "A3", created.ID)

	t.Run("lookup ignores case and spaces", func(t *testing.T) {
		author, found, err := c.GetAuthor(ctx, "  a3 ")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, created, author)
	})

	t.Run("unknown id is not an error", func(t *testing.T) {
		author, found, err := c.GetAuthor(ctx, "a404")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, Author{}, author)
	})

	t.Run("duplicate id conflicts", func(t *testing.T) {
		_, err := c.CreateAuthor(ctx, Author{ID: " a3", Name: "Someone"})
		assert.ErrorIs(t, err, ErrConflict)
		assert.Equal(t, "author id already exists", ClientMessage(err, ""))
	})

	t.Run("missing id is rejected", func(t *testing.T) {
		_, err := c.CreateAuthor(ctx, Author{ID: "  ", Name: "Nobody"})
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, "author must include 'id'", ClientMessage(err, ""))
	})
}

func TestCatalog_CreateBookReferences(t *testing.T) {
	c, storage := newTestCatalog(t)
	ctx := context.Background()
	_, err := c.Counts(ctx)
	require.NoError(t, err)
	writes := storage.Writes()

	_, err = c.CreateBook(ctx, Book{ID: "b3", AuthorID: "zzz"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "authorId does not exist", ClientMessage(err, ""))

	_, err = c.CreateBook(ctx, Book{ID: "b3", AuthorID: "A1", PublisherID: "nope"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "publisherId does not exist", ClientMessage(err, ""))
	assert.Equal(t, writes, storage.Writes(), "rejected creations must not touch the storage")

	book, err := c.CreateBook(ctx, Book{ID: "b3", Title: "Norwegian Wood", AuthorID: "A2", PublisherID: "p2"})
	require.NoError(t, err)
	assert.Equal(t, "b3", book.ID)

	var persisted []Book
	require.NoError(t, json.Unmarshal(storage.Raw(BooksCollection), &persisted))
	assert.Len(t, persisted, 3)
	assert.Equal(t, "Norwegian Wood", persisted[2].Title)
}

func TestCatalog_UpdateKeepsPathID(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	updated, found, err := c.UpdatePublisher(ctx, "P1", Publisher{ID: "other", Name: "Wiley"})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, Publisher{ID: "P1", Name: "Wiley"}, updated)

	publisher, found, err := c.GetPublisher(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Wiley", publisher.Name)

	_, found, err = c.GetPublisher(ctx, "other")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = c.UpdatePublisher(ctx, "p9", Publisher{Name: "Ghost"})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCatalog_UpdateBookReferences(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	_, found, err := c.UpdateBook(ctx, "b1", Book{Title: "Operating System Concepts", AuthorID: "zzz"})
	assert.True(t, found)
	assert.ErrorIs(t, err, ErrValidation)

	book, found, err := c.UpdateBook(ctx, "b1", Book{Title: "OSC", AuthorID: "a2"})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, Book{ID: "b1", Title: "OSC", AuthorID: "a2"}, book)
}

// TestCatalog_ReferentialDelete walks the author deletion scenario.
func TestCatalog_ReferentialDelete(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	removed, err := c.DeleteAuthor(ctx, "a1")
	assert.ErrorIs(t, err, ErrConflict)
	assert.False(t, removed)
	assert.Equal(t, "author has associated books", ClientMessage(err, ""))

	removed, err = c.DeleteBook(ctx, "B1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = c.DeleteAuthor(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = c.DeleteAuthor(ctx, "a1")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestCatalog_DeleteBlankID(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	_, err := c.CreateBook(ctx, Book{ID: "b3", Title: "Anonymous"})
	require.NoError(t, err)

	removed, err := c.DeleteAuthor(ctx, " ")
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = c.DeletePublisher(ctx, "")
	require.NoError(t, err)
	assert.False(t, removed)

	counts, err := c.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, counts[BooksCollection])
	assert.Equal(t, 2, counts[AuthorsCollection])
	assert.Equal(t, 2, counts[PublishersCollection])
}

func TestCatalog_DeletePublisherWithBooks(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	_, err := c.DeletePublisher(ctx, "p2")
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "publisher has associated books", ClientMessage(err, ""))

	_, err = c.CreatePublisher(ctx, Publisher{ID: "p3", Name: "Penguin"})
	require.NoError(t, err)
	removed, err := c.DeletePublisher(ctx, "P3")
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestCatalog_StorageFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("read failure", func(t *testing.T) {
		c, storage := newTestCatalog(t)
		storage.ReadFunc = func(context.Context, CollectionName) ([]byte, error) {
			return nil, errors.New("disk on fire")
		}
		_, err := c.ListBooks(ctx, ListParams{})
		assert.ErrorIs(t, err, ErrStorage)
		assert.Equal(t, "internal error", ClientMessage(err, "internal error"))
	})

	t.Run("corrupted collection", func(t *testing.T) {
		c, storage := newTestCatalog(t)
		require.NoError(t, storage.Write(ctx, AuthorsCollection, []byte("{not json")))
		_, _, err := c.GetAuthor(ctx, "a1")
		assert.ErrorIs(t, err, ErrStorage)
	})

	t.Run("write failure keeps previous state", func(t *testing.T) {
		c, storage := newTestCatalog(t)
		_, err := c.Counts(ctx)
		require.NoError(t, err)
		storage.WriteFunc = func(context.Context, CollectionName, []byte) error {
			return errors.New("read-only")
		}
		_, err = c.CreatePublisher(ctx, Publisher{ID: "p3"})
		assert.ErrorIs(t, err, ErrStorage)

		storage.WriteFunc = nil
		_, found, err := c.GetPublisher(ctx, "p3")
		require.NoError(t, err)
		assert.False(t, found)
	})
}

// TestCatalog_ConcurrentCreates ensures parallel writers never lose an update.
func TestCatalog_ConcurrentCreates(t *testing.T) {
	storage, err := NewJSONFileStorage(zap.NewNop(), t.TempDir())
	require.NoError(t, err)
	c := NewCatalog(zap.NewNop(), NewCollectionStore(zap.NewNop(), storage, ""))
	ctx := context.Background()

	const writers = 50
	errs := make(chan error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := c.CreateAuthor(ctx, Author{ID: "w" + strconv.Itoa(i), Name: "Writer " + strconv.Itoa(i)})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	counts, err := c.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2+writers, counts[AuthorsCollection])

	var persisted []Author
	raw, err := storage.Read(ctx, AuthorsCollection)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.Len(t, persisted, 2+writers)
}

// TestCatalog_ReloadsEachCall ensures out of band changes to the storage are seen.
func TestCatalog_ReloadsEachCall(t *testing.T) {
	c, storage := newTestCatalog(t)
	ctx := context.Background()
	_, err := c.Counts(ctx)
	require.NoError(t, err)

	data, err := EncodeCollection([]Publisher{{ID: "px", Name: "External"}})
	require.NoError(t, err)
	require.NoError(t, storage.Write(ctx, PublishersCollection, data))

	publishers, err := c.ListPublishers(ctx, ListParams{})
	require.NoError(t, err)
	assert.Equal(t, []Publisher{{ID: "px", Name: "External"}}, publishers)
}

package main

import "strings"

// CollectionName identifies one persisted collection of the catalog.
type CollectionName string

const (
	BooksCollection      CollectionName = "books"
	AuthorsCollection    CollectionName = "authors"
	PublishersCollection CollectionName = "publishers"
)

// Collections lists every collection handled by the catalog.
var Collections = []CollectionName{AuthorsCollection, PublishersCollection, BooksCollection}

// Language is the enumerated language tag of a book (e.g. ENGLISH).
type Language string

const (
	LanguageEnglish  Language = "ENGLISH"
	LanguageSpanish  Language = "SPANISH"
	LanguageJapanese Language = "JAPANESE"
)

// Book represents a book entity. Copyright and Pages are optional
// and are kept as pointers so a missing value can be told apart from 0.
type Book struct {
	ID          string   `json:"id"`
	Title       string   `json:"title,omitempty"`
	Edition     string   `json:"edition,omitempty"`
	Copyright   *int     `json:"copyright,omitempty"`
	Language    Language `json:"language,omitempty"`
	Pages       *int     `json:"pages,omitempty"`
	AuthorID    string   `json:"authorId,omitempty"`
	PublisherID string   `json:"publisherId,omitempty"`
}

// Author represents an author entity.
type Author struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Country string `json:"country,omitempty"`
}

// Publisher represents a publisher entity.
type Publisher struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

func (b Book) Identifier() string      { return b.ID }
func (a Author) Identifier() string    { return a.ID }
func (p Publisher) Identifier() string { return p.ID }

func (b Book) WithID(id string) Book           { b.ID = id; return b }
func (a Author) WithID(id string) Author       { a.ID = id; return a }
func (p Publisher) WithID(id string) Publisher { p.ID = id; return p }

// normalize is the canonical form used for every id and filter comparison.
func normalize(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// sameID reports whether two identifiers designate the same record.
func sameID(a, b string) bool {
	return normalize(a) == normalize(b)
}

// IntPtr is a small helper to build optional numeric fields.
func IntPtr(v int) *int {
	return &v
}

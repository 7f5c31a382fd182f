package catalog

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/bookverse/backend/internal/csvdb"
)

// Book represents a catalog book.
//
// Author is a read-time convenience hydrated from the author store; only its
// id is persisted. When the referenced author no longer exists, Author is a
// stub holding just the id.
type Book struct {
	ID              string
	ISBN            string
	Title           string
	Author          *Author
	Publisher       string
	PublicationDate time.Time
	Genre           string
	PageCount       int
	Price           float64
	Stock           int
	Description     string
	Language        string
}

// RecordID implements [csvdb.Row].
func (b *Book) RecordID() string { return b.ID }

// SetRecordID implements [csvdb.Row].
func (b *Book) SetRecordID(id string) { b.ID = id }

// AuthorID returns the id of the referenced author, or "" when unset.
func (b *Book) AuthorID() string {
	if b.Author == nil {
		return ""
	}
	return b.Author.ID
}

// IsAvailable reports whether the book has stock left.
func (b *Book) IsAvailable() bool {
	return b.Stock > 0
}

// ReduceStock decreases stock by quantity. When quantity exceeds the current
// stock the book is left untouched and false is returned.
func (b *Book) ReduceStock(quantity int) bool {
	if quantity > b.Stock {
		return false
	}
	b.Stock -= quantity
	return true
}

// IncreaseStock increases stock by quantity.
func (b *Book) IncreaseStock(quantity int) {
	b.Stock += quantity
}

// Age returns the whole years since publication, or 0 when the publication
// date is unknown.
func (b *Book) Age(now time.Time) int {
	if b.PublicationDate.IsZero() {
		return 0
	}
	return now.Year() - b.PublicationDate.Year()
}

// StubBook returns a placeholder book carrying only the id.
func StubBook(id string) *Book {
	return &Book{ID: id}
}

// BookStore is the file-backed repository for books.
type BookStore struct {
	*csvdb.Store[*Book]
}

// NewBookStore creates the book repository under dir. Author references
// hydrate through authors.
func NewBookStore(dir string, authors *AuthorStore, log *slog.Logger) (*BookStore, error) {
	store, err := csvdb.NewStore(filepath.Join(dir, "books.csv"), bookCodec{authors: authors, log: log}, log)
	if err != nil {
		return nil, err
	}
	return &BookStore{Store: store}, nil
}

// FindByAuthor returns all books referencing the given author id.
func (s *BookStore) FindByAuthor(authorID string) ([]*Book, error) {
	return s.Find(func(b *Book) bool { return b.AuthorID() != "" && b.AuthorID() == authorID })
}

// FindByGenre returns all books of the given genre, case-insensitively.
func (s *BookStore) FindByGenre(genre string) ([]*Book, error) {
	return s.Find(func(b *Book) bool { return strings.EqualFold(b.Genre, genre) })
}

// FindAvailable returns all books with stock left.
func (s *BookStore) FindAvailable() ([]*Book, error) {
	return s.Find((*Book).IsAvailable)
}

// ReduceStock decreases the stored book's stock by quantity, reporting false
// without touching the record when the stock does not cover it. A missing
// book id yields an error matching [csvdb.ErrNotFound].
func (s *BookStore) ReduceStock(id string, quantity int) (bool, error) {
	book, ok, err := s.FindByID(id)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, fmt.Errorf("%w: book %s", csvdb.ErrNotFound, id)
	}
	if !book.ReduceStock(quantity) {
		return false, nil
	}
	if _, err := s.Save(book); err != nil {
		return false, err
	}
	return true, nil
}

// IncreaseStock increases the stored book's stock by quantity. A missing
// book id yields an error matching [csvdb.ErrNotFound].
func (s *BookStore) IncreaseStock(id string, quantity int) error {
	book, ok, err := s.FindByID(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: book %s", csvdb.ErrNotFound, id)
	}
	book.IncreaseStock(quantity)
	_, err = s.Save(book)
	return err
}

// SetStock overwrites the stored book's stock. A missing book id yields an
// error matching [csvdb.ErrNotFound].
func (s *BookStore) SetStock(id string, stock int) error {
	book, ok, err := s.FindByID(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: book %s", csvdb.ErrNotFound, id)
	}
	book.Stock = stock
	_, err = s.Save(book)
	return err
}

type bookCodec struct {
	authors *AuthorStore
	log     *slog.Logger
}

func (c bookCodec) Encode(b *Book) string {
	var r csvdb.Record
	r.Add(b.ID)
	r.Add(b.ISBN)
	r.Add(b.Title)
	r.Add(b.AuthorID())
	r.Add(b.Publisher)
	r.AddDate(b.PublicationDate)
	r.Add(b.Genre)
	r.AddInt(b.PageCount)
	r.AddFloat(b.Price)
	r.AddInt(b.Stock)
	r.Add(b.Description)
	r.Add(b.Language)
	return r.String()
}

func (c bookCodec) Decode(cols []string) (*Book, error) {
	f := csvdb.NewFields(cols, c.log)
	b := &Book{ID: f.Next()}
	if b.ID == "" {
		return nil, errMissingID
	}
	b.ISBN = f.Next()
	b.Title = f.Next()
	author, err := csvdb.Resolve(c.authors, f.Next(), StubAuthor)
	if err != nil {
		return nil, err
	}
	b.Author = author
	b.Publisher = f.Next()
	b.PublicationDate = f.NextDate("publicationDate")
	b.Genre = f.Next()
	b.PageCount = f.NextInt("pageCount")
	b.Price = f.NextFloat("price")
	b.Stock = f.NextInt("stock")
	b.Description = f.Next()
	b.Language = f.Next()
	return b, nil
}

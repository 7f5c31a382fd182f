// Package catalog persists the bookstore catalog: authors and books.
//
// Each entity type lives in its own delimited text file under the data
// directory. Books refer to authors by id; the reference is hydrated on
// load and written back as the id alone.
package catalog

import (
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/bookverse/backend/internal/csvdb"
)

// Author represents a catalog author.
type Author struct {
	ID          string
	Name        string
	LastName    string
	Nationality string
	BirthDate   time.Time
	// Biography is free text and routinely carries commas and quotes.
	Biography string
	Email     string
}

// RecordID implements [csvdb.Row].
func (a *Author) RecordID() string { return a.ID }

// SetRecordID implements [csvdb.Row].
func (a *Author) SetRecordID(id string) { a.ID = id }

// FullName returns the author's display name.
func (a *Author) FullName() string {
	return a.Name + " " + a.LastName
}

// StubAuthor returns a placeholder author carrying only the id, substituted
// when a book's author reference cannot be resolved.
func StubAuthor(id string) *Author {
	return &Author{ID: id}
}

// AuthorStore is the file-backed repository for authors.
type AuthorStore struct {
	*csvdb.Store[*Author]
}

// NewAuthorStore creates the author repository under dir.
func NewAuthorStore(dir string, log *slog.Logger) (*AuthorStore, error) {
	store, err := csvdb.NewStore(filepath.Join(dir, "authors.csv"), authorCodec{log: log}, log)
	if err != nil {
		return nil, err
	}
	return &AuthorStore{Store: store}, nil
}

type authorCodec struct {
	log *slog.Logger
}

func (c authorCodec) Encode(a *Author) string {
	var r csvdb.Record
	r.Add(a.ID)
	r.Add(a.Name)
	r.Add(a.LastName)
	r.Add(a.Nationality)
	r.AddDate(a.BirthDate)
	r.Add(a.Biography)
	r.Add(a.Email)
	return r.String()
}

func (c authorCodec) Decode(cols []string) (*Author, error) {
	f := csvdb.NewFields(cols, c.log)
	a := &Author{ID: f.Next()}
	if a.ID == "" {
		return nil, errMissingID
	}
	a.Name = f.Next()
	a.LastName = f.Next()
	a.Nationality = f.Next()
	a.BirthDate = f.NextDate("birthDate")
	a.Biography = f.Next()
	a.Email = f.Next()
	return a, nil
}

var errMissingID = errors.New("record has no id column")

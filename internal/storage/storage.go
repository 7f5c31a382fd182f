// Package storage wires the bookstore's entity stores over one data
// directory.
package storage

import (
	"log/slog"

	"github.com/bookverse/backend/internal/storage/catalog"
	"github.com/bookverse/backend/internal/storage/orders"
	"github.com/bookverse/backend/internal/storage/people"
)

// Storage bundles every entity store. Stores share the data directory and
// the logger; cross-entity references hydrate through the sibling stores.
type Storage struct {
	Authors   *catalog.AuthorStore
	Books     *catalog.BookStore
	Customers *people.CustomerStore
	Employees *people.EmployeeStore
	Orders    *orders.OrderStore
}

// New creates all stores under dataDir, creating the directory and the
// backing files when absent. A nil logger falls back to slog.Default.
func New(dataDir string, log *slog.Logger) (*Storage, error) {
	if log == nil {
		log = slog.Default()
	}
	authors, err := catalog.NewAuthorStore(dataDir, log)
	if err != nil {
		return nil, err
	}
	books, err := catalog.NewBookStore(dataDir, authors, log)
	if err != nil {
		return nil, err
	}
	customers, err := people.NewCustomerStore(dataDir, log)
	if err != nil {
		return nil, err
	}
	employees, err := people.NewEmployeeStore(dataDir, log)
	if err != nil {
		return nil, err
	}
	orderStore, err := orders.NewOrderStore(dataDir, customers, employees, books, log)
	if err != nil {
		return nil, err
	}
	return &Storage{
		Authors:   authors,
		Books:     books,
		Customers: customers,
		Employees: employees,
		Orders:    orderStore,
	}, nil
}

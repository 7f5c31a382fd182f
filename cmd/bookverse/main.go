// Package main is the bookverse data-directory inspector.
//
// It opens the delimited-text data files of a bookverse deployment and
// lists, counts or shows the stored entities:
//
//	bookverse [-data-dir DIR] authors|books|customers|employees|orders [id]
//	bookverse [-data-dir DIR] count
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/bookverse/backend/internal/storage"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	flag "github.com/spf13/pflag"
)

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "bookverse: %v\n", err)
		os.Exit(1)
	}
}

func mainImpl() error {
	dataDir := flag.String("data-dir", "./data", "Data directory")
	logLevel := flag.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flag.Parse()
	if flag.NArg() == 0 {
		return fmt.Errorf("usage: bookverse [flags] <authors|books|customers|employees|orders|count> [id]")
	}

	logger, err := newLogger(*logLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	db, err := storage.New(*dataDir, logger)
	if err != nil {
		return err
	}

	entity, id := flag.Arg(0), flag.Arg(1)
	switch entity {
	case "count":
		return printCounts(db)
	case "authors":
		return listAuthors(db, id)
	case "books":
		return listBooks(db, id)
	case "customers":
		return listCustomers(db, id)
	case "employees":
		return listEmployees(db, id)
	case "orders":
		return listOrders(db, id)
	default:
		return fmt.Errorf("unknown entity %q", entity)
	}
}

func newLogger(level string) (*slog.Logger, error) {
	var ll slog.Level
	if err := ll.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      ll,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})), nil
}

func printCounts(db *storage.Storage) error {
	type counter struct {
		name  string
		count func() (int, error)
	}
	counters := []counter{
		{"authors", db.Authors.Count},
		{"books", db.Books.Count},
		{"customers", db.Customers.Count},
		{"employees", db.Employees.Count},
		{"orders", db.Orders.Count},
	}
	for _, c := range counters {
		n, err := c.count()
		if err != nil {
			return err
		}
		fmt.Printf("%-10s %d\n", c.name, n)
	}
	return nil
}

func listAuthors(db *storage.Storage, id string) error {
	rows, err := db.Authors.FindAll()
	if err != nil {
		return err
	}
	for _, a := range rows {
		if id != "" && a.ID != id {
			continue
		}
		fmt.Printf("%s  %-25s %-15s %s\n", a.ID, a.FullName(), a.Nationality, a.Email)
	}
	return nil
}

func listBooks(db *storage.Storage, id string) error {
	rows, err := db.Books.FindAll()
	if err != nil {
		return err
	}
	for _, b := range rows {
		if id != "" && b.ID != id {
			continue
		}
		author := ""
		if b.Author != nil {
			author = b.Author.FullName()
		}
		fmt.Printf("%s  %-30s %-20s %-12s $%.2f stock=%d\n", b.ID, b.Title, author, b.Genre, b.Price, b.Stock)
	}
	return nil
}

func listCustomers(db *storage.Storage, id string) error {
	rows, err := db.Customers.FindAll()
	if err != nil {
		return err
	}
	for _, c := range rows {
		if id != "" && c.ID != id {
			continue
		}
		state := "inactive"
		if c.Active {
			state = "active"
		}
		fmt.Printf("%s  %-25s %-30s %-8s orders=%d\n", c.ID, c.FullName(), c.Email, state, c.TotalOrders())
	}
	return nil
}

func listEmployees(db *storage.Storage, id string) error {
	rows, err := db.Employees.FindAll()
	if err != nil {
		return err
	}
	for _, e := range rows {
		if id != "" && e.ID != id {
			continue
		}
		fmt.Printf("%s  %-25s %-40s salary=%.2f\n", e.ID, e.FullName(), e.Role(), e.Salary())
	}
	return nil
}

func listOrders(db *storage.Storage, id string) error {
	rows, err := db.Orders.FindAll()
	if err != nil {
		return err
	}
	for _, o := range rows {
		if id != "" && o.ID != id {
			continue
		}
		customer := o.CustomerID()
		if o.Customer != nil && o.Customer.Name != "" {
			customer = o.Customer.FullName()
		}
		fmt.Printf("%s  %-25s items=%d total=%.2f %-10s %s\n", o.ID, customer, o.TotalItemCount(), o.Total, o.Status, o.PaymentMethod.DisplayName())
	}
	return nil
}

// Package main seeds a bookverse data directory with a small, coherent
// sample data set: authors, books, customers, employees and orders whose
// cross-references all resolve. Useful for demos and manual testing of the
// inspector.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/bookverse/backend/internal/storage"
	"github.com/bookverse/backend/internal/storage/catalog"
	"github.com/bookverse/backend/internal/storage/orders"
	"github.com/bookverse/backend/internal/storage/people"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	flag "github.com/spf13/pflag"
)

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "bookverse-seed: %v\n", err)
		os.Exit(1)
	}
}

func mainImpl() error {
	dataDir := flag.String("data-dir", "./data", "Data directory to seed")
	flag.Parse()

	logger := slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:   slog.LevelInfo,
		NoColor: !isatty.IsTerminal(os.Stderr.Fd()),
	}))
	slog.SetDefault(logger)

	db, err := storage.New(*dataDir, logger)
	if err != nil {
		return err
	}
	if err := seed(db); err != nil {
		return err
	}
	logger.Info("seeded data directory", "dir", *dataDir)
	return nil
}

func seed(db *storage.Storage) error {
	date := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}

	marquez, err := db.Authors.Save(&catalog.Author{
		Name:        "Gabriel",
		LastName:    "Garcia Marquez",
		Nationality: "Colombian",
		BirthDate:   date("1927-03-06"),
		Biography:   `Nobel laureate, master of magical realism; author of "Cien años de soledad".`,
		Email:       "gabo@macondo.co",
	})
	if err != nil {
		return err
	}
	leguin, err := db.Authors.Save(&catalog.Author{
		Name:        "Ursula",
		LastName:    "K. Le Guin",
		Nationality: "American",
		BirthDate:   date("1929-10-21"),
		Biography:   "Essayist, novelist, and one of speculative fiction's sharpest minds.",
		Email:       "ursula@earthsea.org",
	})
	if err != nil {
		return err
	}

	solitude, err := db.Books.Save(&catalog.Book{
		ISBN:            "978-0060883287",
		Title:           "One Hundred Years of Solitude",
		Author:          marquez,
		Publisher:       "Harper",
		PublicationDate: date("1967-05-30"),
		Genre:           "Magical Realism",
		PageCount:       417,
		Price:           18.99,
		Stock:           12,
		Description:     "Buendia family chronicle, equal parts history, myth, and rain.",
		Language:        "es",
	})
	if err != nil {
		return err
	}
	wizard, err := db.Books.Save(&catalog.Book{
		ISBN:            "978-0547773742",
		Title:           "A Wizard of Earthsea",
		Author:          leguin,
		Publisher:       "HMH",
		PublicationDate: date("1968-11-01"),
		Genre:           "Fantasy",
		PageCount:       183,
		Price:           9.99,
		Stock:           25,
		Description:     "Ged learns the true cost of names, shadows, and pride.",
		Language:        "en",
	})
	if err != nil {
		return err
	}

	ana, err := db.Customers.Save(&people.Customer{
		Name:             "Ana",
		LastName:         "Martinez",
		Email:            "ana.martinez@example.com",
		Phone:            "3001112233",
		Address:          "Calle 12 #34-56, Manizales",
		RegistrationDate: date("2023-02-14"),
		Active:           true,
	})
	if err != nil {
		return err
	}

	if _, err = db.Employees.Save(&people.Employee{
		Name:       "Laura",
		LastName:   "Gomez",
		Email:      "laura.gomez@bookverse.co",
		Phone:      "3014445566",
		HireDate:   date("2021-08-01"),
		BaseSalary: 3200,
		Position:   "Store Administrator",
		Kind:       people.KindAdministrator,
		Admin: &people.AdminRole{
			AccessLevel: "FULL",
			Permissions: []string{"catalog.write", "orders.refund", "reports.read"},
			Department:  "Operations",
			AnnualBonus: 4800,
		},
	}); err != nil {
		return err
	}
	carlos, err := db.Employees.Save(&people.Employee{
		Name:       "Carlos",
		LastName:   "Rios",
		Email:      "carlos.rios@bookverse.co",
		Phone:      "3027778899",
		HireDate:   date("2022-03-15"),
		BaseSalary: 2100,
		Position:   "Sales Associate",
		Kind:       people.KindSalesperson,
		Sales: &people.SalesRole{
			CommissionPerSale: 12.5,
			SalesCompleted:    48,
			AssignedZone:      "Centro",
		},
	})
	if err != nil {
		return err
	}

	order := &orders.Order{
		Customer:        ana,
		Salesperson:     carlos,
		OrderDate:       time.Date(2024, 6, 3, 15, 42, 0, 0, time.UTC),
		PaymentMethod:   orders.PaymentCreditCard,
		Status:          "DELIVERED",
		ShippingAddress: "Calle 12 #34-56, Manizales",
	}
	order.AddItem(orders.Item{Book: solitude, Quantity: 1, UnitPrice: solitude.Price})
	order.AddItem(orders.Item{Book: wizard, Quantity: 2, UnitPrice: wizard.Price})
	order, err = db.Orders.Save(order)
	if err != nil {
		return err
	}

	// Record the order on the customer and take the sold copies out of stock.
	ana.AddOrder(order.ID)
	if _, err := db.Customers.Save(ana); err != nil {
		return err
	}
	if _, err := db.Books.ReduceStock(solitude.ID, 1); err != nil {
		return err
	}
	if _, err := db.Books.ReduceStock(wizard.ID, 2); err != nil {
		return err
	}

	notifier := people.NewLogNotifier(slog.Default())
	notifier.Notify(ana, fmt.Sprintf("Order %s is on its way.", order.ID))
	return nil
}

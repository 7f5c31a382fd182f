package orders

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bookverse/backend/internal/csvdb"
	"github.com/bookverse/backend/internal/storage/catalog"
	"github.com/bookverse/backend/internal/storage/people"
)

// OrderStore is the file-backed repository for orders.
type OrderStore struct {
	*csvdb.Store[*Order]
}

// NewOrderStore creates the order repository under dir. Customer,
// salesperson and line-item book references hydrate through the
// collaborating stores.
func NewOrderStore(dir string, customers *people.CustomerStore, employees *people.EmployeeStore, books *catalog.BookStore, log *slog.Logger) (*OrderStore, error) {
	if log == nil {
		log = slog.Default()
	}
	codec := orderCodec{customers: customers, employees: employees, books: books, log: log}
	store, err := csvdb.NewStore(filepath.Join(dir, "orders.csv"), codec, log)
	if err != nil {
		return nil, err
	}
	return &OrderStore{Store: store}, nil
}

// FindByCustomer returns all orders referencing the given customer id.
func (s *OrderStore) FindByCustomer(customerID string) ([]*Order, error) {
	return s.Find(func(o *Order) bool { return o.CustomerID() != "" && o.CustomerID() == customerID })
}

// FindBySalesperson returns all orders referencing the given salesperson id.
func (s *OrderStore) FindBySalesperson(salespersonID string) ([]*Order, error) {
	return s.Find(func(o *Order) bool { return o.SalespersonID() != "" && o.SalespersonID() == salespersonID })
}

// FindByStatus returns all orders with the given status, case-insensitively.
func (s *OrderStore) FindByStatus(status string) ([]*Order, error) {
	return s.Find(func(o *Order) bool { return o.Status != "" && strings.EqualFold(o.Status, status) })
}

// itemSep separates the sub-fields of one encoded line item.
const itemSep = ":"

type orderCodec struct {
	customers *people.CustomerStore
	employees *people.EmployeeStore
	books     *catalog.BookStore
	log       *slog.Logger
}

func (c orderCodec) Encode(o *Order) string {
	items := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, item.BookID()+itemSep+strconv.Itoa(item.Quantity)+itemSep+strconv.FormatFloat(item.UnitPrice, 'f', 2, 64))
	}
	var r csvdb.Record
	r.Add(o.ID)
	r.Add(o.CustomerID())
	r.Add(o.SalespersonID())
	r.AddDateTime(o.OrderDate)
	r.AddList(items)
	r.AddFloat(o.Subtotal)
	r.AddFloat(o.Taxes)
	r.AddFloat(o.Total)
	r.Add(string(o.PaymentMethod))
	r.Add(o.Status)
	r.Add(o.ShippingAddress)
	return r.String()
}

func (c orderCodec) Decode(cols []string) (*Order, error) {
	f := csvdb.NewFields(cols, c.log)
	o := &Order{ID: f.Next()}
	if o.ID == "" {
		return nil, errMissingID
	}

	customer, err := csvdb.Resolve(c.customers, f.Next(), people.StubCustomer)
	if err != nil {
		return nil, err
	}
	o.Customer = customer

	// A salesperson reference that resolves to the wrong employee variant is
	// treated like a miss: a stub salesperson carrying only the id.
	salesperson, err := csvdb.Resolve(c.employees, f.Next(), people.StubSalesperson)
	if err != nil {
		return nil, err
	}
	if salesperson != nil && salesperson.Kind != people.KindSalesperson {
		salesperson = people.StubSalesperson(salesperson.ID)
	}
	o.Salesperson = salesperson

	o.OrderDate = f.NextDateTime("orderDate")

	items, err := c.decodeItems(f.NextList())
	if err != nil {
		return nil, err
	}
	o.Items = items

	o.Subtotal = f.NextFloat("subtotal")
	o.Taxes = f.NextFloat("taxes")
	o.Total = f.NextFloat("total")

	if method := f.Next(); method != "" {
		parsed, err := ParsePaymentMethod(method)
		if err != nil {
			c.log.Warn("unparseable payment method column", "value", method)
		} else {
			o.PaymentMethod = parsed
		}
	}
	o.Status = f.Next()
	o.ShippingAddress = f.Next()
	return o, nil
}

// decodeItems rebuilds the line items from their bookID:qty:unitPrice
// sub-records. A malformed sub-record is skipped with a warning; only a
// failing book lookup aborts the record.
func (c orderCodec) decodeItems(encoded []string) ([]Item, error) {
	var items []Item
	for _, part := range encoded {
		sub := strings.Split(part, itemSep)
		if len(sub) < 3 {
			c.log.Warn("skipping malformed order item", "item", part)
			continue
		}
		quantity, err := strconv.Atoi(sub[1])
		if err != nil {
			c.log.Warn("skipping malformed order item", "item", part)
			continue
		}
		unitPrice, err := strconv.ParseFloat(sub[2], 64)
		if err != nil {
			c.log.Warn("skipping malformed order item", "item", part)
			continue
		}
		book, err := csvdb.Resolve(c.books, sub[0], catalog.StubBook)
		if err != nil {
			return nil, err
		}
		items = append(items, Item{Book: book, Quantity: quantity, UnitPrice: unitPrice})
	}
	return items, nil
}

var errMissingID = errors.New("record has no id column")

// Save persists the order after recomputing its derived totals, so a stored
// record never carries totals stale relative to its items.
func (s *OrderStore) Save(o *Order) (*Order, error) {
	o.recalculate()
	return s.Store.Save(o)
}

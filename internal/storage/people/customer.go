// Package people persists the bookstore's parties: customers and employees.
//
// Employee is a closed variant: every record is exactly an administrator or
// a salesperson, selected by an explicit discriminator column.
package people

import (
	"errors"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bookverse/backend/internal/csvdb"
)

// Customer represents a registered customer.
//
// OrderHistory holds order ids in the order they were placed. The slice is
// owned by the Customer; mutate it through AddOrder/RemoveOrder.
type Customer struct {
	ID               string
	Name             string
	LastName         string
	Email            string
	Phone            string
	Address          string
	RegistrationDate time.Time
	OrderHistory     []string
	Active           bool
}

// RecordID implements [csvdb.Row].
func (c *Customer) RecordID() string { return c.ID }

// SetRecordID implements [csvdb.Row].
func (c *Customer) SetRecordID(id string) { c.ID = id }

// FullName returns the customer's display name.
func (c *Customer) FullName() string {
	return c.Name + " " + c.LastName
}

// NotificationContact implements [Notifiable].
func (c *Customer) NotificationContact() string {
	return c.Email
}

// AddOrder appends an order id to the purchase history.
func (c *Customer) AddOrder(orderID string) {
	if orderID == "" {
		return
	}
	c.OrderHistory = append(c.OrderHistory, orderID)
}

// RemoveOrder removes the first occurrence of an order id from the purchase
// history, reporting whether it was present.
func (c *Customer) RemoveOrder(orderID string) bool {
	i := slices.Index(c.OrderHistory, orderID)
	if i < 0 {
		return false
	}
	c.OrderHistory = slices.Delete(c.OrderHistory, i, i+1)
	return true
}

// TotalOrders returns the number of orders in the purchase history.
func (c *Customer) TotalOrders() int {
	return len(c.OrderHistory)
}

// IsFrequent reports whether the customer has placed five or more orders.
func (c *Customer) IsFrequent() bool {
	return c.TotalOrders() >= 5
}

// StubCustomer returns a placeholder customer carrying only the id.
func StubCustomer(id string) *Customer {
	return &Customer{ID: id}
}

// CustomerStore is the file-backed repository for customers.
type CustomerStore struct {
	*csvdb.Store[*Customer]
}

// NewCustomerStore creates the customer repository under dir.
func NewCustomerStore(dir string, log *slog.Logger) (*CustomerStore, error) {
	store, err := csvdb.NewStore(filepath.Join(dir, "customers.csv"), customerCodec{log: log}, log)
	if err != nil {
		return nil, err
	}
	return &CustomerStore{Store: store}, nil
}

// FindActive returns all active customers.
func (s *CustomerStore) FindActive() ([]*Customer, error) {
	return s.Find(func(c *Customer) bool { return c.Active })
}

// FindByEmail returns all customers with the given email, case-insensitively.
func (s *CustomerStore) FindByEmail(email string) ([]*Customer, error) {
	return s.Find(func(c *Customer) bool { return c.Email != "" && strings.EqualFold(c.Email, email) })
}

type customerCodec struct {
	log *slog.Logger
}

func (cc customerCodec) Encode(c *Customer) string {
	var r csvdb.Record
	r.Add(c.ID)
	r.Add(c.Name)
	r.Add(c.LastName)
	r.Add(c.Email)
	r.Add(c.Phone)
	r.Add(c.Address)
	r.AddDate(c.RegistrationDate)
	r.AddList(c.OrderHistory)
	r.AddBool(c.Active)
	return r.String()
}

func (cc customerCodec) Decode(cols []string) (*Customer, error) {
	f := csvdb.NewFields(cols, cc.log)
	c := &Customer{ID: f.Next()}
	if c.ID == "" {
		return nil, errMissingID
	}
	c.Name = f.Next()
	c.LastName = f.Next()
	c.Email = f.Next()
	c.Phone = f.Next()
	c.Address = f.Next()
	c.RegistrationDate = f.NextDate("registrationDate")
	c.OrderHistory = f.NextList()
	c.Active = f.NextBool()
	return c, nil
}

var errMissingID = errors.New("record has no id column")

// Package orders persists customer orders and keeps their derived totals
// consistent.
//
// An order's subtotal, taxes and total are derived from its line items and
// recomputed together whenever the items change; they are never updated
// independently. References to the customer, the salesperson and each line
// item's book are persisted by id and hydrated on load.
package orders

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bookverse/backend/internal/storage/catalog"
	"github.com/bookverse/backend/internal/storage/people"
)

// TaxRate is the fixed tax applied to every order.
const TaxRate = 0.19

// Order represents a customer order.
//
// Customer, Salesperson and each Item's Book are hydrated references; only
// their ids are persisted. Unresolvable references hydrate as stubs holding
// just the id. Mutate Items through AddItem/RemoveItem/SetItems so the
// derived totals stay consistent.
type Order struct {
	ID              string
	Customer        *people.Customer
	Salesperson     *people.Employee
	OrderDate       time.Time
	Items           []Item
	Subtotal        float64
	Taxes           float64
	Total           float64
	PaymentMethod   PaymentMethod
	Status          string
	ShippingAddress string
}

// Item is one order line: a book reference, a quantity and the unit price
// the sale was made at.
type Item struct {
	Book      *catalog.Book
	Quantity  int
	UnitPrice float64
}

// BookID returns the id of the item's book, or "" when unset.
func (i Item) BookID() string {
	if i.Book == nil {
		return ""
	}
	return i.Book.ID
}

// Subtotal returns quantity times unit price.
func (i Item) Subtotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

// RecordID implements csvdb.Row.
func (o *Order) RecordID() string { return o.ID }

// SetRecordID implements csvdb.Row.
func (o *Order) SetRecordID(id string) { o.ID = id }

// CustomerID returns the id of the referenced customer, or "" when unset.
func (o *Order) CustomerID() string {
	if o.Customer == nil {
		return ""
	}
	return o.Customer.ID
}

// SalespersonID returns the id of the referenced salesperson, or "" when
// unset.
func (o *Order) SalespersonID() string {
	if o.Salesperson == nil {
		return ""
	}
	return o.Salesperson.ID
}

// AddItem appends a line item and recomputes the totals.
func (o *Order) AddItem(item Item) {
	o.Items = append(o.Items, item)
	o.recalculate()
}

// RemoveItem removes every line item referencing the given book id and
// recomputes the totals, reporting whether anything was removed.
func (o *Order) RemoveItem(bookID string) bool {
	kept := o.Items[:0]
	for _, item := range o.Items {
		if item.BookID() != bookID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(o.Items) {
		return false
	}
	o.Items = kept
	o.recalculate()
	return true
}

// SetItems replaces the line items and recomputes the totals.
func (o *Order) SetItems(items []Item) {
	o.Items = items
	o.recalculate()
}

// recalculate rederives subtotal, taxes and total from the line items. The
// three always change together.
func (o *Order) recalculate() {
	o.Subtotal = 0
	for _, item := range o.Items {
		o.Subtotal += item.Subtotal()
	}
	o.Taxes = o.Subtotal * TaxRate
	o.Total = o.Subtotal + o.Taxes
}

// TotalItemCount sums the quantities of all line items.
func (o *Order) TotalItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

// IsCompleted reports whether the order status is COMPLETED or DELIVERED,
// case-insensitively.
func (o *Order) IsCompleted() bool {
	return strings.EqualFold(o.Status, "COMPLETED") || strings.EqualFold(o.Status, "DELIVERED")
}

// ErrValidation marks a rejected purchase-history snapshot.
var ErrValidation = errors.New("validation failed")

// PurchaseHistory is an immutable projection of a completed order for a
// customer's purchase history.
type PurchaseHistory struct {
	OrderID       string
	CustomerID    string
	PurchaseDate  time.Time
	Total         float64
	PaymentMethod PaymentMethod
	Status        string
}

// PurchaseHistory projects the order into a history record. Construction is
// rejected with an error matching [ErrValidation] when the order id or
// customer id is blank, or the total is negative.
func (o *Order) PurchaseHistory() (PurchaseHistory, error) {
	if strings.TrimSpace(o.ID) == "" {
		return PurchaseHistory{}, errBlankOrderID
	}
	if strings.TrimSpace(o.CustomerID()) == "" {
		return PurchaseHistory{}, errBlankCustomerID
	}
	if o.Total < 0 {
		return PurchaseHistory{}, errNegativeTotal
	}
	return PurchaseHistory{
		OrderID:       o.ID,
		CustomerID:    o.CustomerID(),
		PurchaseDate:  o.OrderDate,
		Total:         o.Total,
		PaymentMethod: o.PaymentMethod,
		Status:        o.Status,
	}, nil
}

var (
	errBlankOrderID    = fmt.Errorf("%w: order id is blank", ErrValidation)
	errBlankCustomerID = fmt.Errorf("%w: customer id is blank", ErrValidation)
	errNegativeTotal   = fmt.Errorf("%w: total is negative", ErrValidation)
)

// Format renders the history record as a one-line summary.
func (h PurchaseHistory) Format() string {
	return fmt.Sprintf("Order: %s | Customer: %s | Date: %s | Total: $%.2f | Payment: %s | Status: %s",
		h.OrderID, h.CustomerID, h.PurchaseDate.Format(time.DateTime), h.Total, h.PaymentMethod.DisplayName(), h.Status)
}

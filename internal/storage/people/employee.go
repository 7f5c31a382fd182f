package people

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bookverse/backend/internal/csvdb"
)

// Kind discriminates the two employee variants.
type Kind string

// The closed set of employee variants. No other kind exists.
const (
	KindAdministrator Kind = "Administrator"
	KindSalesperson   Kind = "Salesperson"
)

// Employee represents a store employee: common fields plus exactly one
// variant payload selected by Kind. Admin is non-nil iff Kind is
// KindAdministrator; Sales is non-nil iff Kind is KindSalesperson.
type Employee struct {
	ID         string
	Name       string
	LastName   string
	Email      string
	Phone      string
	HireDate   time.Time
	BaseSalary float64
	Position   string

	Kind  Kind
	Admin *AdminRole
	Sales *SalesRole
}

// AdminRole is the administrator-specific payload.
type AdminRole struct {
	AccessLevel string
	// Permissions is set-like: AddPermission never duplicates an entry.
	Permissions []string
	Department  string
	AnnualBonus float64
}

// SalesRole is the salesperson-specific payload.
type SalesRole struct {
	CommissionPerSale float64
	SalesCompleted    int
	AssignedZone      string
}

// RecordID implements [csvdb.Row].
func (e *Employee) RecordID() string { return e.ID }

// SetRecordID implements [csvdb.Row].
func (e *Employee) SetRecordID(id string) { e.ID = id }

// FullName returns the employee's display name.
func (e *Employee) FullName() string {
	return e.Name + " " + e.LastName
}

// NotificationContact implements [Notifiable].
func (e *Employee) NotificationContact() string {
	return e.Email
}

// Salary computes the effective monthly salary, dispatching on the variant:
// administrators earn base plus the annual bonus prorated monthly,
// salespeople earn base plus commission for each completed sale.
func (e *Employee) Salary() float64 {
	switch e.Kind {
	case KindAdministrator:
		if e.Admin == nil {
			return e.BaseSalary
		}
		return e.BaseSalary + e.Admin.AnnualBonus/12
	case KindSalesperson:
		if e.Sales == nil {
			return e.BaseSalary
		}
		return e.BaseSalary + e.Sales.CommissionPerSale*float64(e.Sales.SalesCompleted)
	}
	return e.BaseSalary
}

// Role returns a human-readable description of the employee's role.
func (e *Employee) Role() string {
	switch e.Kind {
	case KindAdministrator:
		if e.Admin != nil {
			return fmt.Sprintf("Administrator - %s (Level: %s)", e.Admin.Department, e.Admin.AccessLevel)
		}
	case KindSalesperson:
		if e.Sales != nil {
			return "Salesperson - Zone: " + e.Sales.AssignedZone
		}
	}
	return string(e.Kind)
}

// AddPermission grants a permission, ignoring duplicates.
func (a *AdminRole) AddPermission(permission string) {
	if permission == "" || slices.Contains(a.Permissions, permission) {
		return
	}
	a.Permissions = append(a.Permissions, permission)
}

// RemovePermission revokes a permission, reporting whether it was held.
func (a *AdminRole) RemovePermission(permission string) bool {
	i := slices.Index(a.Permissions, permission)
	if i < 0 {
		return false
	}
	a.Permissions = slices.Delete(a.Permissions, i, i+1)
	return true
}

// HasPermission reports whether the permission is held.
func (a *AdminRole) HasPermission(permission string) bool {
	return slices.Contains(a.Permissions, permission)
}

// RegisterSale records one completed sale.
func (s *SalesRole) RegisterSale() {
	s.SalesCompleted++
}

// TotalCommission returns the commission earned over all completed sales.
func (s *SalesRole) TotalCommission() float64 {
	return s.CommissionPerSale * float64(s.SalesCompleted)
}

// StubSalesperson returns a placeholder salesperson carrying only the id,
// substituted when an order's salesperson reference cannot be resolved or
// resolves to the wrong variant.
func StubSalesperson(id string) *Employee {
	return &Employee{ID: id, Kind: KindSalesperson, Sales: &SalesRole{}}
}

// EmployeeStore is the file-backed repository for employees.
type EmployeeStore struct {
	*csvdb.Store[*Employee]
}

// NewEmployeeStore creates the employee repository under dir.
func NewEmployeeStore(dir string, log *slog.Logger) (*EmployeeStore, error) {
	store, err := csvdb.NewStore(filepath.Join(dir, "employees.csv"), employeeCodec{log: log}, log)
	if err != nil {
		return nil, err
	}
	return &EmployeeStore{Store: store}, nil
}

// FindByPosition returns all employees with the given position,
// case-insensitively.
func (s *EmployeeStore) FindByPosition(position string) ([]*Employee, error) {
	return s.Find(func(e *Employee) bool { return e.Position != "" && strings.EqualFold(e.Position, position) })
}

// FindByKind returns all employees of the given variant, matching the
// discriminator case-insensitively.
func (s *EmployeeStore) FindByKind(kind string) ([]*Employee, error) {
	return s.Find(func(e *Employee) bool { return strings.EqualFold(string(e.Kind), kind) })
}

type employeeCodec struct {
	log *slog.Logger
}

func (ec employeeCodec) Encode(e *Employee) string {
	var r csvdb.Record
	r.Add(e.ID)
	r.Add(e.Name)
	r.Add(e.LastName)
	r.Add(e.Email)
	r.Add(e.Phone)
	r.AddDate(e.HireDate)
	r.AddFloat(e.BaseSalary)
	r.Add(e.Position)
	r.Add(string(e.Kind))
	switch e.Kind {
	case KindAdministrator:
		admin := e.Admin
		if admin == nil {
			admin = &AdminRole{}
		}
		r.Add(admin.AccessLevel)
		r.AddList(admin.Permissions)
		r.Add(admin.Department)
		r.AddFloat(admin.AnnualBonus)
	case KindSalesperson:
		sales := e.Sales
		if sales == nil {
			sales = &SalesRole{}
		}
		r.AddFloat(sales.CommissionPerSale)
		r.AddInt(sales.SalesCompleted)
		r.Add(sales.AssignedZone)
	}
	return r.String()
}

func (ec employeeCodec) Decode(cols []string) (*Employee, error) {
	f := csvdb.NewFields(cols, ec.log)
	e := &Employee{ID: f.Next()}
	if e.ID == "" {
		return nil, errMissingID
	}
	e.Name = f.Next()
	e.LastName = f.Next()
	e.Email = f.Next()
	e.Phone = f.Next()
	e.HireDate = f.NextDate("hireDate")
	e.BaseSalary = f.NextFloat("baseSalary")
	e.Position = f.Next()
	kind := f.Next()
	switch {
	case strings.EqualFold(kind, string(KindAdministrator)):
		e.Kind = KindAdministrator
		e.Admin = &AdminRole{
			AccessLevel: f.Next(),
			Permissions: f.NextList(),
			Department:  f.Next(),
			AnnualBonus: f.NextFloat("annualBonus"),
		}
	case strings.EqualFold(kind, string(KindSalesperson)):
		e.Kind = KindSalesperson
		e.Sales = &SalesRole{
			CommissionPerSale: f.NextFloat("commissionPerSale"),
			SalesCompleted:    f.NextInt("salesCompleted"),
			AssignedZone:      f.Next(),
		}
	default:
		return nil, fmt.Errorf("unknown employee kind %q", kind)
	}
	return e, nil
}

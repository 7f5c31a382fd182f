package people

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// Compile-time checks that both parties can receive notifications.
var (
	_ Notifiable = (*Customer)(nil)
	_ Notifiable = (*Employee)(nil)
)

func TestEmployeeStore(t *testing.T) {
	t.Run("administrator round trip", func(t *testing.T) {
		store, _ := NewEmployeeStore(t.TempDir(), nil)
		want := &Employee{
			Name:       "Laura",
			LastName:   "Gomez",
			Email:      "laura.gomez@bookverse.co",
			Phone:      "3014445566",
			HireDate:   time.Date(2021, 8, 1, 0, 0, 0, 0, time.UTC),
			BaseSalary: 3200,
			Position:   "Store Administrator",
			Kind:       KindAdministrator,
			Admin: &AdminRole{
				AccessLevel: "FULL",
				Permissions: []string{"catalog.write", "orders.refund", "reports.read"},
				Department:  "Operations",
				AnnualBonus: 4800,
			},
		}
		if _, err := store.Save(want); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		got, ok, err := store.FindByID(want.ID)
		if err != nil || !ok {
			t.Fatalf("FindByID = %v, %v", ok, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("employee mismatch (-want +got):\n%s", diff)
		}
		if got.Sales != nil {
			t.Error("administrator carries a sales payload")
		}
	})

	t.Run("salesperson round trip", func(t *testing.T) {
		store, _ := NewEmployeeStore(t.TempDir(), nil)
		want := &Employee{
			Name:       "Carlos",
			LastName:   "Rios",
			HireDate:   time.Date(2022, 3, 15, 0, 0, 0, 0, time.UTC),
			BaseSalary: 2100,
			Position:   "Sales Associate",
			Kind:       KindSalesperson,
			Sales: &SalesRole{
				CommissionPerSale: 12.5,
				SalesCompleted:    48,
				AssignedZone:      "Centro",
			},
		}
		if _, err := store.Save(want); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		got, ok, err := store.FindByID(want.ID)
		if err != nil || !ok {
			t.Fatalf("FindByID = %v, %v", ok, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("employee mismatch (-want +got):\n%s", diff)
		}
		if got.Admin != nil {
			t.Error("salesperson carries an admin payload")
		}
	})

	t.Run("unknown discriminator drops the record", func(t *testing.T) {
		dir := t.TempDir()
		store, _ := NewEmployeeStore(dir, nil)
		store.Save(&Employee{Name: "ok", Kind: KindSalesperson, Sales: &SalesRole{}})

		path := filepath.Join(dir, "employees.csv")
		line := "bogus-id,X,Y,,,,0.00,,Intern,,\n"
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			t.Fatalf("OpenFile failed: %v", err)
		}
		f.WriteString(line)
		f.Close()

		rows, err := store.FindAll()
		if err != nil {
			t.Fatalf("FindAll failed: %v", err)
		}
		if len(rows) != 1 || rows[0].Name != "ok" {
			t.Errorf("FindAll = %+v, want the one valid record", rows)
		}
	})

	t.Run("FindByKind matches case-insensitively", func(t *testing.T) {
		store, _ := NewEmployeeStore(t.TempDir(), nil)
		store.Save(&Employee{Name: "a", Kind: KindAdministrator, Admin: &AdminRole{}})
		store.Save(&Employee{Name: "s", Kind: KindSalesperson, Sales: &SalesRole{}})

		got, err := store.FindByKind("salesperson")
		if err != nil {
			t.Fatalf("FindByKind failed: %v", err)
		}
		if len(got) != 1 || got[0].Name != "s" {
			t.Errorf("FindByKind = %+v, want s", got)
		}
	})

	t.Run("FindByPosition", func(t *testing.T) {
		store, _ := NewEmployeeStore(t.TempDir(), nil)
		store.Save(&Employee{Name: "a", Position: "Manager", Kind: KindAdministrator, Admin: &AdminRole{}})
		store.Save(&Employee{Name: "b", Kind: KindSalesperson, Sales: &SalesRole{}})

		got, err := store.FindByPosition("manager")
		if err != nil {
			t.Fatalf("FindByPosition failed: %v", err)
		}
		if len(got) != 1 || got[0].Name != "a" {
			t.Errorf("FindByPosition = %+v, want a", got)
		}
	})
}

func TestSalary(t *testing.T) {
	tests := []struct {
		name string
		e    Employee
		want float64
	}{
		{
			"administrator gets prorated bonus",
			Employee{BaseSalary: 3000, Kind: KindAdministrator, Admin: &AdminRole{AnnualBonus: 1200}},
			3100,
		},
		{
			"salesperson gets commission",
			Employee{BaseSalary: 2000, Kind: KindSalesperson, Sales: &SalesRole{CommissionPerSale: 10, SalesCompleted: 7}},
			2070,
		},
		{
			"stub salesperson falls back to base",
			*StubSalesperson("x"),
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.Salary(); got != tt.want {
				t.Errorf("Salary = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAdminPermissions(t *testing.T) {
	a := &AdminRole{}
	a.AddPermission("catalog.write")
	a.AddPermission("catalog.write") // dedupe
	a.AddPermission("")              // ignored
	a.AddPermission("orders.refund")
	if len(a.Permissions) != 2 {
		t.Fatalf("Permissions = %q, want 2 entries", a.Permissions)
	}
	if !a.HasPermission("orders.refund") {
		t.Error("HasPermission(orders.refund) = false")
	}
	if !a.RemovePermission("catalog.write") {
		t.Error("RemovePermission = false")
	}
	if a.HasPermission("catalog.write") {
		t.Error("permission still held after removal")
	}
	if a.RemovePermission("catalog.write") {
		t.Error("RemovePermission twice = true")
	}
}

func TestSalesRole(t *testing.T) {
	s := &SalesRole{CommissionPerSale: 12.5, SalesCompleted: 2}
	s.RegisterSale()
	if s.SalesCompleted != 3 {
		t.Errorf("SalesCompleted = %d, want 3", s.SalesCompleted)
	}
	if got := s.TotalCommission(); got != 37.5 {
		t.Errorf("TotalCommission = %v, want 37.5", got)
	}
}

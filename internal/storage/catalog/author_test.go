package catalog

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestAuthorStore(t *testing.T) {
	store, err := NewAuthorStore(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewAuthorStore failed: %v", err)
	}

	t.Run("round trip with hostile free text", func(t *testing.T) {
		want := &Author{
			Name:        "Gabriel",
			LastName:    "Garcia Marquez",
			Nationality: "Colombian",
			BirthDate:   time.Date(1927, 3, 6, 0, 0, 0, 0, time.UTC),
			Biography:   `Wrote "Cien años de soledad", lived in Mexico City, Paris, and Cartagena.`,
			Email:       "gabo@macondo.co",
		}
		if _, err := store.Save(want); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		got, ok, err := store.FindByID(want.ID)
		if err != nil || !ok {
			t.Fatalf("FindByID = %v, %v", ok, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("author mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("full name", func(t *testing.T) {
		a := &Author{Name: "Ursula", LastName: "K. Le Guin"}
		if got := a.FullName(); got != "Ursula K. Le Guin" {
			t.Errorf("FullName = %q", got)
		}
	})
}

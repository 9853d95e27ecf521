package store

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAddItem_StartsAtQuantityOne(t *testing.T) {
	t.Parallel()

	s := New()
	s.AddItem(LineItem{ID: "p1", Name: "Margherita", UnitPrice: 12})

	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Quantity != 1 {
		t.Errorf("expected quantity 1, got %d", items[0].Quantity)
	}
	if got := s.TotalPrice(); got != 12 {
		t.Errorf("expected total 12, got %v", got)
	}
}

func TestAddItem_DuplicateIncrementsQuantity(t *testing.T) {
	t.Parallel()

	s := New()
	s.AddItem(LineItem{ID: "p1", Name: "Margherita", UnitPrice: 12})
	s.AddItem(LineItem{ID: "p1", Name: "Margherita", UnitPrice: 12})

	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("duplicate add must not create a second line, got %d lines", len(items))
	}
	if items[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", items[0].Quantity)
	}
}

func TestQuantityAdjustments_MargheritaScenario(t *testing.T) {
	t.Parallel()

	s := New()
	s.AddItem(LineItem{ID: "p1", Name: "Margherita", UnitPrice: 12})

	s.IncreaseQuantity("p1")
	s.IncreaseQuantity("p1")
	if got := s.TotalPrice(); got != 36 {
		t.Errorf("expected total 36 at quantity 3, got %v", got)
	}

	s.DecreaseQuantity("p1")
	s.DecreaseQuantity("p1")
	s.DecreaseQuantity("p1")
	if got := s.Items(); len(got) != 0 {
		t.Errorf("decreasing to zero must remove the line, cart still has %v", got)
	}
	if got := s.TotalPrice(); got != 0 {
		t.Errorf("expected empty total, got %v", got)
	}
}

func TestRemoveItem_AbsentIsNoop(t *testing.T) {
	t.Parallel()

	s := New()
	s.AddItem(LineItem{ID: "p1", Name: "Margherita", UnitPrice: 12})
	s.RemoveItem("nope")

	if s.TotalQuantity() != 1 {
		t.Errorf("removing an absent id must not touch the cart")
	}
}

func TestAdjust_AbsentIsNoop(t *testing.T) {
	t.Parallel()

	s := New()
	s.IncreaseQuantity("ghost")
	s.DecreaseQuantity("ghost")

	if len(s.Items()) != 0 {
		t.Errorf("adjusting an absent id must not create a line")
	}
}

func TestClearCart_AllSelectorsEmpty(t *testing.T) {
	t.Parallel()

	s := New()
	s.AddItem(LineItem{ID: "p1", Name: "Margherita", UnitPrice: 12})
	s.AddItem(LineItem{ID: "p2", Name: "Capricciosa", UnitPrice: 14})
	s.ClearCart()

	if got := s.Items(); len(got) != 0 {
		t.Errorf("expected empty cart, got %v", got)
	}
	if s.TotalQuantity() != 0 {
		t.Errorf("expected zero quantity after clear")
	}
	if s.TotalPrice() != 0 {
		t.Errorf("expected zero price after clear")
	}
	if s.IsItemInCart("p1") {
		t.Errorf("p1 must not survive a clear")
	}
}

func TestItems_PreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	s := New()
	s.AddItem(LineItem{ID: "p2", Name: "Capricciosa", UnitPrice: 14})
	s.AddItem(LineItem{ID: "p1", Name: "Margherita", UnitPrice: 12})
	s.AddItem(LineItem{ID: "p3", Name: "Diavola", UnitPrice: 16})
	s.RemoveItem("p1")

	want := []LineItem{
		{ID: "p2", Name: "Capricciosa", Quantity: 1, UnitPrice: 14},
		{ID: "p3", Name: "Diavola", Quantity: 1, UnitPrice: 16},
	}
	if diff := cmp.Diff(want, s.Items()); diff != "" {
		t.Errorf("cart mismatch (-want +got):\n%s", diff)
	}
}

// TestCartInvariants_RandomizedSequences drives the cart through random
// add/remove/adjust sequences and checks, after every step, that no line
// has quantity <= 0 and that TotalPrice matches the sum of the lines.
func TestCartInvariants_RandomizedSequences(t *testing.T) {
	t.Parallel()

	catalog := []LineItem{
		{ID: "p1", Name: "Margherita", UnitPrice: 12},
		{ID: "p2", Name: "Capricciosa", UnitPrice: 14},
		{ID: "p3", Name: "Diavola", UnitPrice: 16},
		{ID: "p4", Name: "Funghi", UnitPrice: 13.5},
	}

	rng := rand.New(rand.NewSource(1))
	s := New()

	for step := 0; step < 5000; step++ {
		item := catalog[rng.Intn(len(catalog))]
		switch rng.Intn(5) {
		case 0:
			s.AddItem(item)
		case 1:
			s.RemoveItem(item.ID)
		case 2:
			s.IncreaseQuantity(item.ID)
		case 3:
			s.DecreaseQuantity(item.ID)
		case 4:
			if rng.Intn(50) == 0 {
				s.ClearCart()
			}
		}

		want := 0.0
		for _, li := range s.Items() {
			if li.Quantity <= 0 {
				t.Fatalf("step %d: line %q has quantity %d", step, li.ID, li.Quantity)
			}
			want += float64(li.Quantity) * li.UnitPrice
		}
		if got := s.TotalPrice(); math.Abs(got-want) > 1e-9 {
			t.Fatalf("step %d: TotalPrice=%v, sum of lines=%v", step, got, want)
		}
	}
}

func TestSetUserName(t *testing.T) {
	t.Parallel()

	s := New()
	if s.UserName() != "" {
		t.Errorf("new store must have an empty user name")
	}
	s.SetUserName("Ada")
	if got := s.UserName(); got != "Ada" {
		t.Errorf("expected Ada, got %q", got)
	}
}

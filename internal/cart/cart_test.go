package cart

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/condostore/pos-backend/internal/catalog"
	pkgerrors "github.com/condostore/pos-backend/pkg/errors"
)

func TestAddItemRefusesZeroStock(t *testing.T) {
	c := New()
	err := c.AddItem(catalog.Item{ID: "p-1", Name: "Soda", PriceCents: 500, Stock: 0})
	if !pkgerrors.IsCode(err, pkgerrors.CodeOutOfStock) {
		t.Fatalf("expected out-of-stock, got %v", err)
	}
	if !c.IsEmpty() {
		t.Fatal("rejected add must leave the cart empty")
	}
}

func TestAddItemCapsAtObservedStock(t *testing.T) {
	c := New()
	item := catalog.Item{ID: "p-1", Name: "Soda", PriceCents: 500, Stock: 2}

	for i := 0; i < 2; i++ {
		if err := c.AddItem(item); err != nil {
			t.Fatalf("add %d: %v", i+1, err)
		}
	}

	err := c.AddItem(item)
	if !pkgerrors.IsCode(err, pkgerrors.CodeStockLimit) {
		t.Fatalf("expected stock-limit, got %v", err)
	}
	if c.Quantity("p-1") != 2 {
		t.Fatalf("rejected add changed quantity: %d", c.Quantity("p-1"))
	}

	// The rejection is idempotent: asking again changes nothing either.
	err = c.AddItem(item)
	if !pkgerrors.IsCode(err, pkgerrors.CodeStockLimit) {
		t.Fatalf("expected stock-limit again, got %v", err)
	}
	if c.Quantity("p-1") != 2 || c.TotalCents() != 1000 {
		t.Fatalf("cart drifted after repeated rejection: qty=%d total=%d", c.Quantity("p-1"), c.TotalCents())
	}
}

func TestAddItemTracksLatestStockAndPrice(t *testing.T) {
	c := New()
	if err := c.AddItem(catalog.Item{ID: "p-1", Name: "Soda", PriceCents: 500, Stock: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}

	// A fresh snapshot raised the stock and changed the price; the next add
	// sees both.
	if err := c.AddItem(catalog.Item{ID: "p-1", Name: "Soda", PriceCents: 550, Stock: 3}); err != nil {
		t.Fatalf("add after restock: %v", err)
	}
	lines := c.Lines()
	if len(lines) != 1 || lines[0].Quantity != 2 || lines[0].UnitPriceCents != 550 {
		t.Fatalf("unexpected line: %+v", lines)
	}
	if c.TotalCents() != 1100 {
		t.Fatalf("total must use the current unit price: %d", c.TotalCents())
	}
}

func TestRemoveItemDeletesWholeLine(t *testing.T) {
	c := New()
	item := catalog.Item{ID: "p-1", Name: "Soda", PriceCents: 500, Stock: 5}
	for i := 0; i < 3; i++ {
		if err := c.AddItem(item); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	c.RemoveItem("p-1")
	if !c.IsEmpty() {
		t.Fatal("remove must delete the whole line, not decrement")
	}

	// Removing something absent is a no-op.
	c.RemoveItem("p-1")
	c.RemoveItem("ghost")
	if !c.IsEmpty() {
		t.Fatal("no-op remove mutated the cart")
	}
}

func TestLinesKeepInsertionOrder(t *testing.T) {
	c := New()
	ids := []string{"b", "a", "c"}
	for _, id := range ids {
		if err := c.AddItem(catalog.Item{ID: id, Name: id, PriceCents: 100, Stock: 9}); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}
	c.RemoveItem("a")
	if err := c.AddItem(catalog.Item{ID: "a", Name: "a", PriceCents: 100, Stock: 9}); err != nil {
		t.Fatalf("re-add: %v", err)
	}

	lines := c.Lines()
	got := []string{lines[0].ProductID, lines[1].ProductID, lines[2].ProductID}
	want := []string{"b", "c", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch: got %v want %v", got, want)
		}
	}
}

// TestRandomOpsMatchReferenceModel drives the cart with random adds and
// removes and checks quantities and the total against a naive map-based
// model after every step.
func TestRandomOpsMatchReferenceModel(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	items := make([]catalog.Item, 8)
	for i := range items {
		items[i] = catalog.Item{
			ID:         fmt.Sprintf("p-%d", i),
			Name:       fmt.Sprintf("Product %d", i),
			PriceCents: int64(rng.Intn(5000) + 1),
			Stock:      rng.Intn(6),
		}
	}

	c := New()
	ref := map[string]int{}

	for step := 0; step < 2000; step++ {
		item := items[rng.Intn(len(items))]
		if rng.Intn(4) == 0 {
			c.RemoveItem(item.ID)
			delete(ref, item.ID)
		} else {
			err := c.AddItem(item)
			switch {
			case item.Stock <= 0:
				if !pkgerrors.IsCode(err, pkgerrors.CodeOutOfStock) {
					t.Fatalf("step %d: expected out-of-stock, got %v", step, err)
				}
			case ref[item.ID]+1 > item.Stock:
				if !pkgerrors.IsCode(err, pkgerrors.CodeStockLimit) {
					t.Fatalf("step %d: expected stock-limit, got %v", step, err)
				}
			default:
				if err != nil {
					t.Fatalf("step %d: unexpected error %v", step, err)
				}
				ref[item.ID]++
			}
		}

		var wantTotal int64
		for id, qty := range ref {
			if got := c.Quantity(id); got != qty {
				t.Fatalf("step %d: quantity mismatch for %s: got %d want %d", step, id, got, qty)
			}
			wantTotal += items[idIndex(id)].PriceCents * int64(qty)
		}
		if c.Len() != len(ref) {
			t.Fatalf("step %d: line count mismatch: got %d want %d", step, c.Len(), len(ref))
		}
		if c.TotalCents() != wantTotal {
			t.Fatalf("step %d: total mismatch: got %d want %d", step, c.TotalCents(), wantTotal)
		}
	}
}

func idIndex(id string) int {
	var idx int
	fmt.Sscanf(id, "p-%d", &idx)
	return idx
}

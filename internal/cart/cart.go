package cart

import (
	"strings"

	"github.com/condostore/pos-backend/internal/catalog"
	pkgerrors "github.com/condostore/pos-backend/pkg/errors"
)

// Line is one product in the cart. Stock is the cap observed when the line
// was last touched; quantity never exceeds it.
type Line struct {
	ProductID      string
	Name           string
	UnitPriceCents int64
	Quantity       int
	Stock          int
}

// SubtotalCents is the line total. Never stored, always derived.
func (l Line) SubtotalCents() int64 {
	return l.UnitPriceCents * int64(l.Quantity)
}

// Cart is an insertion-ordered set of lines, one per product. It is not
// safe for concurrent use; the owning session serializes access.
type Cart struct {
	lines []Line
	index map[string]int
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{index: map[string]int{}}
}

// AddItem adds one unit of the product, capped by the item's observed stock.
// A rejected add leaves the cart exactly as it was.
func (c *Cart) AddItem(item catalog.Item) error {
	if strings.TrimSpace(item.ID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if item.Stock <= 0 {
		return pkgerrors.New(pkgerrors.CodeOutOfStock, "product is out of stock").
			WithDetails(map[string]any{"product_id": item.ID})
	}

	if idx, ok := c.index[item.ID]; ok {
		line := c.lines[idx]
		if line.Quantity+1 > item.Stock {
			return pkgerrors.New(pkgerrors.CodeStockLimit, "no more stock for this product").
				WithDetails(map[string]any{"product_id": item.ID, "stock": item.Stock})
		}
		line.Quantity++
		line.UnitPriceCents = item.PriceCents
		line.Stock = item.Stock
		c.lines[idx] = line
		return nil
	}

	c.index[item.ID] = len(c.lines)
	c.lines = append(c.lines, Line{
		ProductID:      item.ID,
		Name:           item.Name,
		UnitPriceCents: item.PriceCents,
		Quantity:       1,
		Stock:          item.Stock,
	})
	return nil
}

// RemoveItem deletes the whole line for the product. Removing a product that
// is not in the cart is a no-op.
func (c *Cart) RemoveItem(productID string) {
	idx, ok := c.index[productID]
	if !ok {
		return
	}
	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
	delete(c.index, productID)
	for i := idx; i < len(c.lines); i++ {
		c.index[c.lines[i].ProductID] = i
	}
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// TotalCents recomputes the cart total from the lines every time.
func (c *Cart) TotalCents() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.SubtotalCents()
	}
	return total
}

// Quantity reports the quantity for one product, zero if absent.
func (c *Cart) Quantity(productID string) int {
	if idx, ok := c.index[productID]; ok {
		return c.lines[idx].Quantity
	}
	return 0
}

// Len is the number of distinct products.
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Clear removes every line.
func (c *Cart) Clear() {
	c.lines = nil
	c.index = map[string]int{}
}

package cart

import (
	"deenha/internal/catalog"
)

// LineItem is one product in one size and color.
type LineItem struct {
	catalog.Product
	SelectedSize  string `json:"selectedSize"`
	SelectedColor string `json:"selectedColor"`
	Quantity      int    `json:"quantity"`
}

// Subtotal is price times quantity.
func (l LineItem) Subtotal() int {
	return l.Price * l.Quantity
}

func (l LineItem) sameAs(productID int, size, color string) bool {
	return l.ID == productID && l.SelectedSize == size && l.SelectedColor == color
}

// Event describes a cart change delivered to observers.
type Event struct {
	Kind  string
	Count int
	Total int
	Open  bool
}

const (
	EventAdded   = "added"
	EventRemoved = "removed"
	EventOpened  = "opened"
	EventClosed  = "closed"
)

// Cart aggregates line items. It is not safe for concurrent use; callers
// serialize access per session.
type Cart struct {
	lines     []LineItem
	open      bool
	observers []func(Event)
}

// New returns an empty, closed cart.
func New() *Cart {
	return &Cart{lines: []LineItem{}}
}

// OnChange registers fn to be called after every mutation.
func (c *Cart) OnChange(fn func(Event)) {
	c.observers = append(c.observers, fn)
}

// Add merges qty units into the matching line or appends a new one, then
// opens the cart. A non-positive qty counts as one.
func (c *Cart) Add(p catalog.Product, size, color string, qty int) {
	if qty <= 0 {
		qty = 1
	}
	merged := false
	for i := range c.lines {
		if c.lines[i].sameAs(p.ID, size, color) {
			c.lines[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		c.lines = append(c.lines, LineItem{
			Product:       p,
			SelectedSize:  size,
			SelectedColor: color,
			Quantity:      qty,
		})
	}
	c.open = true
	c.notify(EventAdded)
}

// Remove drops the line at index. An out of range index is ignored.
func (c *Cart) Remove(index int) {
	if index < 0 || index >= len(c.lines) {
		return
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	c.notify(EventRemoved)
}

// QuantityOf returns the units already held for a product variant.
func (c *Cart) QuantityOf(productID int, size, color string) int {
	for _, l := range c.lines {
		if l.sameAs(productID, size, color) {
			return l.Quantity
		}
	}
	return 0
}

// Total is the sum of line subtotals.
func (c *Cart) Total() int {
	total := 0
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

// Count is the sum of quantities.
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Lines returns a copy of the line items in insertion order.
func (c *Cart) Lines() []LineItem {
	out := make([]LineItem, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Open() {
	c.open = true
	c.notify(EventOpened)
}

func (c *Cart) Close() {
	c.open = false
	c.notify(EventClosed)
}

func (c *Cart) IsOpen() bool {
	return c.open
}

func (c *Cart) notify(kind string) {
	if len(c.observers) == 0 {
		return
	}
	ev := Event{Kind: kind, Count: c.Count(), Total: c.Total(), Open: c.open}
	for _, fn := range c.observers {
		fn(ev)
	}
}

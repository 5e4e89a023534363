package cart_test

import (
	"testing"

	"deenha/internal/cart"
	"deenha/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	scarf = catalog.Product{ID: 1, Name: "Scarf", Price: 100000, Category: catalog.Scarves}
	bergo = catalog.Product{ID: 3, Name: "Bergo", Price: 50000, Category: catalog.Bergo}
)

func TestAdd_MergesSameVariant(t *testing.T) {
	c := cart.New()

	c.Add(scarf, "M", "Black", 1)
	c.Add(scarf, "M", "Black", 2)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, 3, c.Count())
}

func TestAdd_DifferentVariantsAreSeparateLines(t *testing.T) {
	c := cart.New()

	c.Add(scarf, "M", "Black", 1)
	c.Add(scarf, "L", "Black", 1)
	c.Add(scarf, "M", "Cream", 1)

	assert.Len(t, c.Lines(), 3)
}

func TestAdd_NonPositiveQuantityCountsAsOne(t *testing.T) {
	c := cart.New()

	c.Add(scarf, "M", "Black", 0)
	c.Add(bergo, "S", "Black", -4)

	assert.Equal(t, 2, c.Count())
}

func TestTotal(t *testing.T) {
	c := cart.New()

	c.Add(scarf, "M", "Black", 2)
	c.Add(bergo, "S", "Black", 1)

	assert.Equal(t, 250000, c.Total())
	assert.Equal(t, 3, c.Count())
}

func TestRemove_PreservesOrder(t *testing.T) {
	c := cart.New()
	c.Add(scarf, "M", "Black", 1)
	c.Add(bergo, "S", "Black", 1)
	c.Add(scarf, "L", "Cream", 1)

	c.Remove(1)

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "M", lines[0].SelectedSize)
	assert.Equal(t, "L", lines[1].SelectedSize)
}

func TestRemove_OutOfRangeIsNoop(t *testing.T) {
	c := cart.New()
	c.Add(scarf, "M", "Black", 1)

	c.Remove(5)
	c.Remove(-1)

	assert.Len(t, c.Lines(), 1)
}

func TestOpenFlag(t *testing.T) {
	c := cart.New()
	assert.False(t, c.IsOpen())

	c.Add(scarf, "M", "Black", 1)
	assert.True(t, c.IsOpen())

	c.Close()
	assert.False(t, c.IsOpen())
	assert.Equal(t, 1, c.Count())

	c.Open()
	assert.True(t, c.IsOpen())
}

func TestLines_ReturnsCopy(t *testing.T) {
	c := cart.New()
	c.Add(scarf, "M", "Black", 1)

	lines := c.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, c.Count())
}

func TestOnChange(t *testing.T) {
	c := cart.New()
	var events []cart.Event
	c.OnChange(func(e cart.Event) { events = append(events, e) })

	c.Add(scarf, "M", "Black", 2)
	c.Remove(0)
	c.Remove(0)
	c.Close()

	require.Len(t, events, 3)
	assert.Equal(t, cart.Event{Kind: cart.EventAdded, Count: 2, Total: 200000, Open: true}, events[0])
	assert.Equal(t, cart.EventRemoved, events[1].Kind)
	assert.Equal(t, 0, events[1].Count)
	assert.Equal(t, cart.Event{Kind: cart.EventClosed}, events[2])
}

func TestQuantityOf(t *testing.T) {
	c := cart.New()
	c.Add(scarf, "M", "Black", 2)

	assert.Equal(t, 2, c.QuantityOf(1, "M", "Black"))
	assert.Equal(t, 0, c.QuantityOf(1, "L", "Black"))
}

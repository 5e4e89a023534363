package catalog_test

import (
	"testing"

	"deenha/internal/catalog"
	"deenha/internal/models"
	"deenha/internal/seed"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestCanPurchase_MissingStockIsUnrestricted(t *testing.T) {
	p := catalog.Product{ID: 1, Price: 189000}

	assert.False(t, p.StockKnown())
	assert.True(t, p.CanPurchase(1))
	assert.True(t, p.CanPurchase(10000))
	assert.False(t, p.CanPurchase(0))
}

func TestCanPurchase_ExplicitStockCapsQuantity(t *testing.T) {
	p := catalog.Product{ID: 12, Price: 679000, Stock: intPtr(20)}

	assert.True(t, p.StockKnown())
	assert.True(t, p.CanPurchase(20))
	assert.False(t, p.CanPurchase(21))

	soldOut := catalog.Product{ID: 13, Stock: intPtr(0)}
	assert.False(t, soldOut.CanPurchase(1))
}

func TestDiscounted(t *testing.T) {
	assert.True(t, catalog.Product{Price: 459000, OriginalPrice: intPtr(599000)}.Discounted())
	assert.False(t, catalog.Product{Price: 459000}.Discounted())
	assert.False(t, catalog.Product{Price: 459000, OriginalPrice: intPtr(400000)}.Discounted())
}

func TestRecordRoundTrip(t *testing.T) {
	for _, r := range seed.Products() {
		back := catalog.ToRecord(catalog.FromRecord(r))
		assert.Equal(t, r, back, "product %d changed across the boundary", r.ID)
	}
}

func TestFromRecord_DefaultsMissingSize(t *testing.T) {
	p := catalog.FromRecord(models.Product{ID: 1, Name: "Plain", Price: 1000, Category: "Scarves"})

	assert.NotNil(t, p.Size)
	assert.Empty(t, p.Size)
	assert.Nil(t, p.Stock)
	assert.Equal(t, catalog.Badge(""), p.Badge)

	back := catalog.ToRecord(p)
	assert.Equal(t, []string{}, back.Size)
}

func TestFromRecord_CopiesPointers(t *testing.T) {
	r := models.Product{ID: 1, Price: 1000, Stock: intPtr(5)}
	p := catalog.FromRecord(r)

	*r.Stock = 0

	assert.Equal(t, 5, *p.Stock)
}

func TestPostRoundTrip(t *testing.T) {
	for _, r := range seed.Posts() {
		assert.Equal(t, r, catalog.ToPostRecord(catalog.FromPostRecord(r)))
	}
}

func TestCatalogFind(t *testing.T) {
	c := catalog.Catalog{Products: fixture()}

	p, ok := c.Find(4)
	assert.True(t, ok)
	assert.Equal(t, "Zahra Elegant Dress", p.Name)

	_, ok = c.Find(404)
	assert.False(t, ok)
}

package catalog_test

import (
	"testing"

	"deenha/internal/catalog"
	"deenha/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() []catalog.Product {
	rows := seed.Products()
	products := make([]catalog.Product, 0, len(rows))
	for _, r := range rows {
		products = append(products, catalog.FromRecord(r))
	}
	return products
}

func ids(products []catalog.Product) []int {
	out := make([]int, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestApply_NoRestrictionKeepsEveryProduct(t *testing.T) {
	products := fixture()
	for _, key := range []catalog.SortKey{catalog.SortNewest, catalog.SortPriceLow, catalog.SortPriceHigh, catalog.SortBestseller} {
		result := catalog.Apply(products, catalog.DefaultCriteria(), key)
		assert.ElementsMatch(t, ids(products), ids(result), "sort %s dropped or duplicated products", key)
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	products := fixture()
	before := ids(products)

	catalog.Apply(products, catalog.DefaultCriteria(), catalog.SortPriceHigh)

	assert.Equal(t, before, ids(products))
}

func TestApply_CategoryFilter(t *testing.T) {
	criteria := catalog.DefaultCriteria()
	criteria.Categories = []catalog.Category{catalog.Bergo, catalog.PraySet}

	result := catalog.Apply(fixture(), criteria, catalog.SortNewest)

	require.Len(t, result, 5)
	for _, p := range result {
		assert.Contains(t, criteria.Categories, p.Category)
	}
}

func TestApply_SizeMatchesAnyOf(t *testing.T) {
	criteria := catalog.DefaultCriteria()
	criteria.Sizes = []string{"XL", "110x110"}

	result := catalog.Apply(fixture(), criteria, catalog.SortPriceLow)

	assert.Equal(t, []int{6, 1, 4, 8, 12}, ids(result))
}

func TestApply_ColorFilter(t *testing.T) {
	criteria := catalog.DefaultCriteria()
	criteria.Colors = []string{"Black"}

	result := catalog.Apply(fixture(), criteria, catalog.SortPriceLow)

	assert.Equal(t, []int{3, 12}, ids(result))
}

func TestApply_PriceRangeIsInclusive(t *testing.T) {
	criteria := catalog.DefaultCriteria()
	criteria.PriceRange = [2]int{159000, 189000}

	result := catalog.Apply(fixture(), criteria, catalog.SortPriceLow)
	assert.Equal(t, []int{6, 10, 1}, ids(result))

	criteria.PriceRange = [2]int{189000, 189000}
	result = catalog.Apply(fixture(), criteria, catalog.SortPriceLow)
	assert.Equal(t, []int{1}, ids(result))
}

func TestApply_DimensionsAreConjunctive(t *testing.T) {
	criteria := catalog.DefaultCriteria()
	criteria.Categories = []catalog.Category{catalog.Dresses}
	criteria.Sizes = []string{"M"}
	criteria.Colors = []string{"Black"}

	result := catalog.Apply(fixture(), criteria, catalog.SortNewest)

	assert.Equal(t, []int{12}, ids(result))
}

func TestApply_PriceLowIsReverseOfPriceHigh(t *testing.T) {
	products := fixture()

	low := ids(catalog.Apply(products, catalog.DefaultCriteria(), catalog.SortPriceLow))
	high := ids(catalog.Apply(products, catalog.DefaultCriteria(), catalog.SortPriceHigh))

	require.Len(t, high, len(low))
	for i := range low {
		assert.Equal(t, low[i], high[len(high)-1-i])
	}
}

func TestApply_BestsellerDescendingBySoldCount(t *testing.T) {
	products := fixture()
	products = append(products, catalog.Product{ID: 99, Name: "Unsold", Price: 1000, Category: catalog.Scarves})

	result := catalog.Apply(products, catalog.DefaultCriteria(), catalog.SortBestseller)

	for i := 1; i < len(result); i++ {
		assert.GreaterOrEqual(t, result[i-1].Sold(), result[i].Sold())
	}
	assert.Equal(t, 99, result[len(result)-1].ID)
	assert.Equal(t, 5, result[0].ID)
}

func TestApply_NewestMovesNewArrivalsFirstOnly(t *testing.T) {
	result := catalog.Apply(fixture(), catalog.DefaultCriteria(), catalog.SortNewest)

	assert.Equal(t, []int{1, 7, 11, 2, 3, 4, 5, 6, 8, 9, 10, 12}, ids(result))
}

func TestApply_StableOnTies(t *testing.T) {
	products := []catalog.Product{
		{ID: 1, Price: 100, Category: catalog.Scarves},
		{ID: 2, Price: 100, Category: catalog.Scarves},
		{ID: 3, Price: 50, Category: catalog.Scarves},
		{ID: 4, Price: 100, Category: catalog.Scarves},
	}

	assert.Equal(t, []int{3, 1, 2, 4}, ids(catalog.Apply(products, catalog.DefaultCriteria(), catalog.SortPriceLow)))
	assert.Equal(t, []int{1, 2, 4, 3}, ids(catalog.Apply(products, catalog.DefaultCriteria(), catalog.SortPriceHigh)))
}

func TestApply_EmptyCatalog(t *testing.T) {
	result := catalog.Apply(nil, catalog.DefaultCriteria(), catalog.SortNewest)

	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestScarvesSortedByPriceHigh(t *testing.T) {
	criteria := catalog.DefaultCriteria()
	criteria.Categories = []catalog.Category{catalog.Scarves}

	result := catalog.Apply(fixture(), criteria, catalog.SortPriceHigh)

	require.Len(t, result, 4)
	assert.Equal(t, 259000, result[0].Price)
}

func TestNewView_Statuses(t *testing.T) {
	c := catalog.Catalog{Products: fixture()}

	v := catalog.NewView(catalog.Catalog{}, false, catalog.DefaultCriteria(), catalog.SortNewest)
	assert.Equal(t, catalog.StatusNotLoaded, v.Status)

	criteria := catalog.DefaultCriteria()
	criteria.Colors = []string{"Chartreuse"}
	v = catalog.NewView(c, true, criteria, catalog.SortNewest)
	assert.Equal(t, catalog.StatusNoMatches, v.Status)
	assert.Empty(t, v.Products)
	assert.Equal(t, 1, v.ActiveFilters)

	v = catalog.NewView(c, true, catalog.DefaultCriteria(), catalog.SortNewest)
	assert.Equal(t, catalog.StatusMatches, v.Status)
	assert.Len(t, v.Products, 12)
}

func TestActiveFilterCount(t *testing.T) {
	assert.Equal(t, 0, catalog.ActiveFilterCount(catalog.DefaultCriteria()))

	c := catalog.Criteria{
		Categories: []catalog.Category{catalog.Scarves, catalog.Bergo},
		Sizes:      []string{"M"},
		PriceRange: [2]int{0, 500000},
	}
	assert.Equal(t, 4, catalog.ActiveFilterCount(c))
}

func TestRelated(t *testing.T) {
	products := fixture()

	related := catalog.Related(products, products[0], 4)
	assert.Equal(t, []int{2, 6, 10}, ids(related))

	related = catalog.Related(products, products[0], 2)
	assert.Equal(t, []int{2, 6}, ids(related))
}

func TestCategoryCounts(t *testing.T) {
	counts := catalog.CategoryCounts(fixture())

	assert.Equal(t, []catalog.CategoryCount{
		{Name: catalog.Scarves, Count: 4},
		{Name: catalog.Dresses, Count: 3},
		{Name: catalog.Bergo, Count: 3},
		{Name: catalog.PraySet, Count: 2},
	}, counts)
}

func TestParseSortKey(t *testing.T) {
	key, err := catalog.ParseSortKey("")
	assert.NoError(t, err)
	assert.Equal(t, catalog.SortNewest, key)

	key, err = catalog.ParseSortKey("price-high")
	assert.NoError(t, err)
	assert.Equal(t, catalog.SortPriceHigh, key)

	_, err = catalog.ParseSortKey("cheapest")
	assert.Error(t, err)
}

package catalog

import (
	"fmt"
	"sort"
)

// DefaultMaxPrice is the upper bound of the unrestricted price range.
const DefaultMaxPrice = 1000000

// SortKey selects the ordering of a filtered view.
type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortPriceLow   SortKey = "price-low"
	SortPriceHigh  SortKey = "price-high"
	SortBestseller SortKey = "bestseller"
)

// ParseSortKey accepts the wire form of a sort key. An empty string means newest.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case "":
		return SortNewest, nil
	case SortNewest, SortPriceLow, SortPriceHigh, SortBestseller:
		return SortKey(s), nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// Criteria restricts a view. An empty Categories, Sizes or Colors slice puts
// no restriction on that dimension. PriceRange bounds are inclusive.
type Criteria struct {
	Categories []Category `json:"categories"`
	Sizes      []string   `json:"sizes"`
	Colors     []string   `json:"colors"`
	PriceRange [2]int     `json:"priceRange"`
}

// DefaultCriteria matches every product priced within the default range.
func DefaultCriteria() Criteria {
	return Criteria{PriceRange: [2]int{0, DefaultMaxPrice}}
}

// ActiveFilterCount counts selected values plus one for a narrowed price range.
func ActiveFilterCount(c Criteria) int {
	n := len(c.Categories) + len(c.Sizes) + len(c.Colors)
	if c.PriceRange[0] > 0 || c.PriceRange[1] < DefaultMaxPrice {
		n++
	}
	return n
}

// Matches reports whether p passes every dimension of c.
func (c Criteria) Matches(p Product) bool {
	if len(c.Categories) > 0 && !containsCategory(c.Categories, p.Category) {
		return false
	}
	if len(c.Sizes) > 0 && !anySize(p.Size, c.Sizes) {
		return false
	}
	if len(c.Colors) > 0 && !containsString(c.Colors, p.Color) {
		return false
	}
	return p.Price >= c.PriceRange[0] && p.Price <= c.PriceRange[1]
}

// Apply filters products by c and orders the survivors by key. The sort is
// stable and the input slice is left untouched.
func Apply(products []Product, c Criteria, key SortKey) []Product {
	result := make([]Product, 0, len(products))
	for _, p := range products {
		if c.Matches(p) {
			result = append(result, p)
		}
	}

	switch key {
	case SortPriceLow:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price < result[j].Price })
	case SortPriceHigh:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price > result[j].Price })
	case SortBestseller:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Sold() > result[j].Sold() })
	default:
		// Only moves new arrivals ahead; everything else keeps its order.
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Badge == BadgeNew && result[j].Badge != BadgeNew
		})
	}
	return result
}

// ViewStatus tells an empty view apart from a catalog that never loaded.
type ViewStatus string

const (
	StatusNotLoaded ViewStatus = "not_loaded"
	StatusNoMatches ViewStatus = "no_matches"
	StatusMatches   ViewStatus = "matches"
)

// View is a filtered, sorted slice of a catalog.
type View struct {
	Status        ViewStatus `json:"status"`
	Products      []Product  `json:"products"`
	ActiveFilters int        `json:"activeFilters"`
}

// NewView derives a view from a snapshot. loaded is false until the first
// successful load.
func NewView(c Catalog, loaded bool, criteria Criteria, key SortKey) View {
	products := Apply(c.Products, criteria, key)
	status := StatusMatches
	switch {
	case !loaded:
		status = StatusNotLoaded
	case len(products) == 0:
		status = StatusNoMatches
	}
	return View{
		Status:        status,
		Products:      products,
		ActiveFilters: ActiveFilterCount(criteria),
	}
}

// Related returns up to limit products sharing p's category, excluding p.
func Related(products []Product, p Product, limit int) []Product {
	related := make([]Product, 0, limit)
	for _, other := range products {
		if len(related) == limit {
			break
		}
		if other.Category == p.Category && other.ID != p.ID {
			related = append(related, other)
		}
	}
	return related
}

// CategoryCount is the number of products in a category.
type CategoryCount struct {
	Name  Category `json:"name"`
	Count int      `json:"count"`
}

// CategoryCounts counts products per category in display order.
func CategoryCounts(products []Product) []CategoryCount {
	counts := make(map[Category]int, len(Categories))
	for _, p := range products {
		counts[p.Category]++
	}
	out := make([]CategoryCount, 0, len(Categories))
	for _, c := range Categories {
		out = append(out, CategoryCount{Name: c, Count: counts[c]})
	}
	return out
}

func containsCategory(set []Category, c Category) bool {
	for _, v := range set {
		if v == c {
			return true
		}
	}
	return false
}

func containsString(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func anySize(sizes, wanted []string) bool {
	for _, s := range sizes {
		if containsString(wanted, s) {
			return true
		}
	}
	return false
}

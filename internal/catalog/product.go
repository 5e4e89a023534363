package catalog

import "time"

// Category is one of the fixed product categories.
type Category string

const (
	Scarves Category = "Scarves"
	Dresses Category = "Dresses"
	Bergo   Category = "Bergo"
	PraySet Category = "Pray Set"
)

// Categories lists every category in display order.
var Categories = []Category{Scarves, Dresses, Bergo, PraySet}

// Badge tags a product on its card.
type Badge string

const (
	BadgeNew        Badge = "new"
	BadgeBestseller Badge = "bestseller"
	BadgeSale       Badge = "sale"
)

// Product is the storefront view of a catalog entry. It is never mutated
// after a load; a refresh replaces the whole snapshot.
type Product struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Price         int      `json:"price"`
	OriginalPrice *int     `json:"originalPrice,omitempty"`
	Image         string   `json:"image"`
	Category      Category `json:"category"`
	Size          []string `json:"size"`
	Color         string   `json:"color"`
	ColorHex      string   `json:"colorHex"`
	Badge         Badge    `json:"badge,omitempty"`
	SoldCount     *int     `json:"soldCount,omitempty"`
	Stock         *int     `json:"stock,omitempty"`
}

// Sold returns the sold count, treating a missing value as zero.
func (p Product) Sold() int {
	if p.SoldCount == nil {
		return 0
	}
	return *p.SoldCount
}

// Discounted reports whether the product carries a higher original price.
func (p Product) Discounted() bool {
	return p.OriginalPrice != nil && *p.OriginalPrice > p.Price
}

// StockKnown reports whether the product carries an explicit stock number.
func (p Product) StockKnown() bool {
	return p.Stock != nil
}

// CanPurchase reports whether qty units may be bought. Products without a
// stock number are unrestricted; an explicit stock caps the quantity.
func (p Product) CanPurchase(qty int) bool {
	if qty <= 0 {
		return false
	}
	if p.Stock == nil {
		return true
	}
	return *p.Stock >= qty
}

// HasSize reports whether size is one of the product's offered sizes.
func (p Product) HasSize(size string) bool {
	for _, s := range p.Size {
		if s == size {
			return true
		}
	}
	return false
}

// Post is a feed entry.
type Post struct {
	ID       int    `json:"id"`
	ImageURL string `json:"imageUrl"`
	PostURL  string `json:"postUrl"`
	VideoURL string `json:"videoUrl,omitempty"`
	IsVideo  bool   `json:"isVideo"`
}

// Catalog is one loaded snapshot of products and feed posts.
type Catalog struct {
	Products []Product `json:"products"`
	Posts    []Post    `json:"posts"`
	LoadedAt time.Time `json:"loadedAt"`
}

// Empty reports whether the snapshot holds no products.
func (c Catalog) Empty() bool {
	return len(c.Products) == 0
}

// Find returns the product with the given id.
func (c Catalog) Find(id int) (Product, bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

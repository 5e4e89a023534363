package catalog

import "deenha/internal/models"

// FromRecord translates a data source row into the storefront model.
// A missing size list becomes an empty one.
func FromRecord(r models.Product) Product {
	size := r.Size
	if size == nil {
		size = []string{}
	}
	return Product{
		ID:            r.ID,
		Name:          r.Name,
		Price:         r.Price,
		OriginalPrice: copyInt(r.OriginalPrice),
		Image:         r.Image,
		Category:      Category(r.Category),
		Size:          append([]string{}, size...),
		Color:         r.Color,
		ColorHex:      r.ColorHex,
		Badge:         Badge(r.Badge),
		SoldCount:     copyInt(r.SoldCount),
		Stock:         copyInt(r.Stock),
	}
}

// ToRecord translates a storefront product back into a data source row.
func ToRecord(p Product) models.Product {
	return models.Product{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		OriginalPrice: copyInt(p.OriginalPrice),
		Image:         p.Image,
		Category:      string(p.Category),
		Size:          append([]string{}, p.Size...),
		Color:         p.Color,
		ColorHex:      p.ColorHex,
		Badge:         string(p.Badge),
		SoldCount:     copyInt(p.SoldCount),
		Stock:         copyInt(p.Stock),
	}
}

// FromPostRecord translates a feed row into the storefront model.
func FromPostRecord(r models.InstagramPost) Post {
	return Post{
		ID:       r.ID,
		ImageURL: r.ImageURL,
		PostURL:  r.PostURL,
		VideoURL: r.VideoURL,
		IsVideo:  r.IsVideo,
	}
}

// ToPostRecord translates a feed post back into a data source row.
func ToPostRecord(p Post) models.InstagramPost {
	return models.InstagramPost{
		ID:       p.ID,
		ImageURL: p.ImageURL,
		PostURL:  p.PostURL,
		VideoURL: p.VideoURL,
		IsVideo:  p.IsVideo,
	}
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

package models

import "time"

// Product is a catalog row as stored by the data source. Field names on the
// wire are snake_case; the storefront works with catalog.Product instead.
type Product struct {
	ID            int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string    `json:"name" validate:"required,min=3,max=100"`
	Price         int       `json:"price" validate:"required,gt=0"`
	OriginalPrice *int      `json:"original_price,omitempty" validate:"omitempty,gtfield=Price"`
	Image         string    `json:"image" validate:"omitempty,max=500"`
	Category      string    `json:"category" validate:"required,oneof='Scarves' 'Dresses' 'Bergo' 'Pray Set'"`
	Size          []string  `json:"size" gorm:"serializer:json;type:text"`
	Color         string    `json:"color" validate:"required,max=50"`
	ColorHex      string    `json:"color_hex" validate:"omitempty,max=20"`
	Badge         string    `json:"badge,omitempty" validate:"omitempty,oneof=new bestseller sale"`
	SoldCount     *int      `json:"sold_count,omitempty" validate:"omitempty,gte=0"`
	Stock         *int      `json:"stock,omitempty" validate:"omitempty,gte=0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

package models

import "time"

// InstagramPost is a feed entry shown on the storefront home page.
type InstagramPost struct {
	ID        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	ImageURL  string    `json:"image_url" validate:"required"`
	PostURL   string    `json:"post_url" validate:"required,url"`
	VideoURL  string    `json:"video_url,omitempty"`
	IsVideo   bool      `json:"is_video"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName keeps the table name used by the hosted data source.
func (InstagramPost) TableName() string {
	return "instagram_posts"
}

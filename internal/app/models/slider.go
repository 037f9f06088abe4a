package models

// Slider is a promotional banner shown on the storefront.
type Slider struct {
	ID       int64  `json:"id" db:"id"`
	Title    string `json:"title" db:"title"`
	ImageURL string `json:"imageUrl" db:"image_url"`
	LinkURL  string `json:"linkUrl" db:"link_url"`
	Position int    `json:"position" db:"position"`
}

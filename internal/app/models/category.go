package models

// Category is a top-level catalog grouping.
type Category struct {
	ID    int64  `json:"id" db:"id"`
	Title string `json:"title" db:"title"`

	// Aggregates computed at query time
	SubCategoriesCount int64 `json:"subcategoriesCount" db:"subcategories_count"`
	TopicsCount        int64 `json:"topicsCount" db:"topics_count"`
}

// SubCategory belongs to a category and groups topics.
type SubCategory struct {
	ID         int64  `json:"id" db:"id"`
	CategoryID int64  `json:"categoryId" db:"category_id"`
	Title      string `json:"title" db:"title"`
}

// Topic is the leaf of the category tree; courses hang off topics.
type Topic struct {
	ID            int64  `json:"id" db:"id"`
	SubCategoryID int64  `json:"subcategoryId" db:"subcategory_id"`
	Title         string `json:"title" db:"title"`
}

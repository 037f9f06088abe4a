package models

import "time"

// Course represents a purchasable catalog item.
type Course struct {
	ID          int64     `json:"id" db:"id"`
	TopicID     int64     `json:"topicId" db:"topic_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"` // Nullable
	Price       float64   `json:"price" db:"price"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Aggregates computed at query time
	EnrollStudentsCount int64    `json:"enrollStudentsCount" db:"enroll_students_count"`
	RatingsAvg          *float64 `json:"ratingsAvg,omitempty" db:"ratings_avg"` // Nil until first rating
	ReviewsCount        int64    `json:"reviewsCount" db:"reviews_count"`

	// Relations (populated when needed)
	Topic *Topic `json:"topic,omitempty"`
}

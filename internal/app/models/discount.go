package models

import "time"

// Discount is a time-bounded percentage promotion.
type Discount struct {
	ID       int64     `json:"id" db:"id"`
	Title    string    `json:"title" db:"title"`
	Percent  int       `json:"percent" db:"percent"`
	StartsAt time.Time `json:"startsAt" db:"starts_at"`
	EndsAt   time.Time `json:"endsAt" db:"ends_at"`

	// Aggregates computed at query time
	EnrollStudentsCount int64 `json:"enrollStudentsCount" db:"enroll_students_count"`
}

// DiscountItem binds a discount to a single course.
type DiscountItem struct {
	ID         int64 `json:"id" db:"id"`
	DiscountID int64 `json:"discountId" db:"discount_id"`
	CourseID   int64 `json:"courseId" db:"course_id"`
}

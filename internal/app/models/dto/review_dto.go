package dto

// CreateReviewRequest posts a review on a course
type CreateReviewRequest struct {
	CourseID int64  `json:"courseId" binding:"required"`
	Body     string `json:"body" binding:"required"`
}

// CreateRatingRequest scores a course 1..5
type CreateRatingRequest struct {
	CourseID int64 `json:"courseId" binding:"required"`
	Rating   int   `json:"rating" binding:"required,min=1,max=5"`
}

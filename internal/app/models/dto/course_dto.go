package dto

// UpdateCourseRequest updates mutable course fields
type UpdateCourseRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price" binding:"min=0"`
}

// CourseFilter captures the supported course list query parameters
type CourseFilter struct {
	TopicID  int64
	MinPrice *float64
	MaxPrice *float64
	Search   string // Title substring, case-insensitive
}

package models

import "time"

// Review is a free-text comment a student leaves on a course.
type Review struct {
	ID        int64     `json:"id" db:"id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Student *Student `json:"student,omitempty"`
}

// Rating is a 1..5 score; one per (course, student) pair.
type Rating struct {
	ID        int64 `json:"id" db:"id"`
	CourseID  int64 `json:"courseId" db:"course_id"`
	StudentID int64 `json:"studentId" db:"student_id"`
	Rating    int   `json:"rating" db:"rating"`
}

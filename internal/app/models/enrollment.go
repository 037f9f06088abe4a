package models

import "time"

// Enrollment is one checkout event grouping one or more course purchases
// by a single student. It owns nothing beyond an id and a timestamp; the
// actual (student, course) bindings live in its lines.
type Enrollment struct {
	ID        int64     `json:"id" db:"id" example:"7"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Lines created in the same transaction as the enrollment itself.
	// An enrollment is never visible with zero lines.
	Lines []EnrollmentLine `json:"enrollStudents"`
}

// EnrollmentLine binds (enrollment, student, course). Every line of one
// enrollment references the same student: the authenticated requester.
type EnrollmentLine struct {
	ID           int64 `json:"id" db:"id"`
	EnrollmentID int64 `json:"enrollmentId" db:"enrollment_id"`
	StudentID    int64 `json:"studentId" db:"student_id"`
	CourseID     int64 `json:"courseId" db:"course_id"`

	// Relations (populated when needed)
	Course *Course `json:"course,omitempty"`
}

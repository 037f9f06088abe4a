package dto

// CreateEnrollmentRequest is the checkout payload. The field name matches the
// public wire contract: a list of course ids the requester wants to enroll in.
type CreateEnrollmentRequest struct {
	EnrollStudents []int64 `json:"enroll_students"`
}

// EnrollmentLineResponse is one (student, course) binding of an enrollment
type EnrollmentLineResponse struct {
	ID        int64 `json:"id"`
	StudentID int64 `json:"studentId"`
	CourseID  int64 `json:"courseId"`
}

// EnrollmentResponse is the serialized checkout result
type EnrollmentResponse struct {
	ID             int64                    `json:"id"`
	EnrollStudents []EnrollmentLineResponse `json:"enroll_students"`
}

// EnrolledCourseResponse is one row of a student's purchase history
type EnrolledCourseResponse struct {
	EnrollmentID int64   `json:"enrollmentId"`
	CourseID     int64   `json:"courseId"`
	CourseTitle  string  `json:"courseTitle"`
	Price        float64 `json:"price"`
}

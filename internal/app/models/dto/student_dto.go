package dto

// UpdateStudentRequest updates the authenticated user's student profile
type UpdateStudentRequest struct {
	Phone     string  `json:"phone" example:"+95911222333"`
	BirthDate *string `json:"birthDate,omitempty" example:"2001-05-14"` // YYYY-MM-DD
}

// StudentResponse is the serialized student profile
type StudentResponse struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"userId"`
	Email     string  `json:"email"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     string  `json:"phone"`
	BirthDate *string `json:"birthDate,omitempty"`
}

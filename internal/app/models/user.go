package models

import "time"

// User defines an account based on the 'users' table
type User struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	Email        string    `json:"email" db:"email" example:"student@example.com"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"firstName" db:"first_name" example:"Aye"`
	LastName     string    `json:"lastName" db:"last_name" example:"Chan"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Student *Student `json:"student,omitempty"` // At most one student profile per user
}

// FullName returns the display name used in outbound mail
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

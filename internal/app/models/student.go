package models

import "time"

// Student defines the student profile bound 1:1 to a user account
type Student struct {
	ID        int64      `json:"id" db:"id" example:"42"`
	UserID    int64      `json:"userId" db:"user_id" example:"5"`
	Phone     string     `json:"phone" db:"phone" example:"+95911222333"`
	BirthDate *time.Time `json:"birthDate,omitempty" db:"birth_date"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	User *User `json:"user,omitempty"`
}

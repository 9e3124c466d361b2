package models

import "time"

// Author defines the author model based on the 'authors' table
type Author struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	Name        string     `json:"name" db:"name" example:"Ursula K. Le Guin"`
	Email       string     `json:"email" db:"email" example:"ursula@example.com"`
	BirthDate   *time.Time `json:"birthDate,omitempty" db:"birth_date"`
	Nationality *string    `json:"nationality,omitempty" db:"nationality" example:"American"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

package models

import "time"

// Book defines the book model based on the 'books' table.
// Quantity is the number of copies currently on the shelf and is
// never allowed to drop below zero.
type Book struct {
	ID              int64     `json:"id" db:"id" example:"1"`
	AuthorID        int64     `json:"authorId" db:"author_id" example:"1"`
	CategoryID      int64     `json:"categoryId" db:"category_id" example:"1"`
	Title           string    `json:"title" db:"title" example:"The Dispossessed"`
	PublicationDate time.Time `json:"publicationDate" db:"publication_date"`
	Quantity        int       `json:"quantity" db:"quantity" example:"3"`
	ImageURL        *string   `json:"imageUrl,omitempty" db:"image_url"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Author   *Author   `json:"author,omitempty"`
	Category *Category `json:"category,omitempty"`
}

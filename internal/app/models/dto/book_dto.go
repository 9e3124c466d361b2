package dto

// CreateBookRequest represents a book creation request.
// PublicationDate uses the YYYY-MM-DD layout. Quantity defaults to 1
// when omitted.
type CreateBookRequest struct {
	AuthorID        int64   `json:"authorId" binding:"required,min=1"`
	CategoryID      int64   `json:"categoryId" binding:"required,min=1"`
	Title           string  `json:"title" binding:"required,max=50"`
	PublicationDate string  `json:"publicationDate" binding:"required"`
	Quantity        *int    `json:"quantity,omitempty" binding:"omitempty,min=0"`
	ImageURL        *string `json:"imageUrl,omitempty"`
}

// UpdateBookRequest represents a book update request
type UpdateBookRequest struct {
	AuthorID        int64   `json:"authorId" binding:"required,min=1"`
	CategoryID      int64   `json:"categoryId" binding:"required,min=1"`
	Title           string  `json:"title" binding:"required,max=50"`
	PublicationDate string  `json:"publicationDate" binding:"required"`
	Quantity        *int    `json:"quantity,omitempty" binding:"omitempty,min=0"`
	ImageURL        *string `json:"imageUrl,omitempty"`
}

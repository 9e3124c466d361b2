package dto

// CreateAuthorRequest represents an author creation request.
// BirthDate uses the YYYY-MM-DD layout.
type CreateAuthorRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Email       string  `json:"email" binding:"required,email"`
	BirthDate   *string `json:"birthDate,omitempty"`
	Nationality *string `json:"nationality,omitempty" binding:"omitempty,max=50"`
}

// UpdateAuthorRequest represents an author update request
type UpdateAuthorRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Email       string  `json:"email" binding:"required,email"`
	BirthDate   *string `json:"birthDate,omitempty"`
	Nationality *string `json:"nationality,omitempty" binding:"omitempty,max=50"`
}

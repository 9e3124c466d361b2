package dto

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,max=25"`
	Description *string `json:"description,omitempty"`
}

// UpdateCategoryRequest represents a category update request
type UpdateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,max=25"`
	Description *string `json:"description,omitempty"`
}

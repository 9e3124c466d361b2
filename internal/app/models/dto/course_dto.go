package dto

// CreateCourseRequest represents a course creation request
type CreateCourseRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"required"`
	Year        int    `json:"year" binding:"required,min=1,max=4"`
}

// UpdateCourseRequest represents a course update request
type UpdateCourseRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"required"`
	Year        int    `json:"year" binding:"required,min=1,max=4"`
}

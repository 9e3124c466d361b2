package dto

// UpdateStudentRequest represents a student profile update. All fields
// are optional; only provided fields are changed.
type UpdateStudentRequest struct {
	Username    *string `json:"username,omitempty" binding:"omitempty,min=3,max=30"`
	Email       *string `json:"email,omitempty" binding:"omitempty,email"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	CourseID    *int64  `json:"courseId,omitempty" binding:"omitempty,min=1"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	ID               int64      `json:"id" db:"id" example:"1"`
	Username         string     `json:"username" db:"username" example:"jdoe"`
	Email            string     `json:"email" db:"email" example:"jdoe@example.com"`
	Password         string     `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	CourseID         *int64     `json:"courseId,omitempty" db:"course_id"`
	EnrollmentNumber string     `json:"enrollmentNumber" db:"enrollment_number" example:"ENR2024001"`
	PhoneNumber      string     `json:"phoneNumber" db:"phone_number" example:"+905551234567"`
	IsActive         bool       `json:"isActive" db:"is_active" example:"true"`
	IsStaff          bool       `json:"isStaff" db:"is_staff" example:"false"`
	IsSuperuser      bool       `json:"isSuperuser" db:"is_superuser" example:"false"`
	LastLoginAt      *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Course *Course `json:"course,omitempty"`
}

// Role derives the effective role from the superuser flag
func (s *Student) Role() RoleType {
	if s.IsSuperuser {
		return RoleAdmin
	}
	return RoleStudent
}

package models

// RoleType defines the role of an authenticated account
type RoleType string

const (
	RoleStudent RoleType = "STUDENT" // default role for registered students
	RoleAdmin   RoleType = "ADMIN"   // elevated role allowed to mutate reference data
)

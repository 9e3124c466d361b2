// Package auth holds the access control gate: a single predicate that
// every protected route consults before its handler runs.
package auth

import "github.com/okandemir/librarium/internal/app/models"

// Action classifies what a request wants to do
type Action string

const (
	// ActionRead covers listing and fetching reference data
	ActionRead Action = "read"
	// ActionWrite covers creating, updating and deleting reference data
	ActionWrite Action = "write"
	// ActionLend covers issuing and returning books
	ActionLend Action = "lend"
)

// Caller describes the requester as established by the JWT middleware.
// A zero Caller is an anonymous request.
type Caller struct {
	StudentID     int64
	Username      string
	Role          models.RoleType
	Authenticated bool
}

// IsAdmin reports whether the caller carries the admin role
func (c Caller) IsAdmin() bool {
	return c.Authenticated && c.Role == models.RoleAdmin
}

// Policy decides whether a caller may perform an action. Reads and
// lending require authentication; writes require the admin role.
type Policy struct{}

// NewPolicy creates the default access policy
func NewPolicy() *Policy {
	return &Policy{}
}

// Allows is the single authorization predicate
func (p *Policy) Allows(action Action, caller Caller) bool {
	switch action {
	case ActionRead, ActionLend:
		return caller.Authenticated
	case ActionWrite:
		return caller.IsAdmin()
	default:
		return false
	}
}

// CanAccessStudent reports whether the caller may view or change the
// given student record: the student themselves or an admin.
func (p *Policy) CanAccessStudent(caller Caller, studentID int64) bool {
	if !caller.Authenticated {
		return false
	}
	return caller.IsAdmin() || caller.StudentID == studentID
}

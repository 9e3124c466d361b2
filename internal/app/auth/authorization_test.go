package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/okandemir/librarium/internal/app/models"
)

func TestPolicy_Allows(t *testing.T) {
	anonymous := Caller{}
	student := Caller{StudentID: 7, Username: "jdoe", Role: models.RoleStudent, Authenticated: true}
	admin := Caller{StudentID: 1, Username: "admin", Role: models.RoleAdmin, Authenticated: true}

	tests := []struct {
		name   string
		action Action
		caller Caller
		want   bool
	}{
		{"anonymous_cannot_read", ActionRead, anonymous, false},
		{"anonymous_cannot_write", ActionWrite, anonymous, false},
		{"anonymous_cannot_lend", ActionLend, anonymous, false},
		{"student_can_read", ActionRead, student, true},
		{"student_cannot_write", ActionWrite, student, false},
		{"student_can_lend", ActionLend, student, true},
		{"admin_can_read", ActionRead, admin, true},
		{"admin_can_write", ActionWrite, admin, true},
		{"admin_can_lend", ActionLend, admin, true},
		{"unknown_action_denied", Action("export"), admin, false},
	}

	policy := NewPolicy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Allows(tt.action, tt.caller))
		})
	}
}

func TestPolicy_CanAccessStudent(t *testing.T) {
	policy := NewPolicy()

	student := Caller{StudentID: 7, Role: models.RoleStudent, Authenticated: true}
	admin := Caller{StudentID: 1, Role: models.RoleAdmin, Authenticated: true}

	assert.True(t, policy.CanAccessStudent(student, 7), "students may access their own record")
	assert.False(t, policy.CanAccessStudent(student, 8), "students may not access other records")
	assert.True(t, policy.CanAccessStudent(admin, 8), "admins may access any record")
	assert.False(t, policy.CanAccessStudent(Caller{}, 7), "anonymous callers are denied")
}

func TestCaller_IsAdmin(t *testing.T) {
	assert.False(t, Caller{Role: models.RoleAdmin}.IsAdmin(), "role without authentication does not count")
	assert.False(t, Caller{StudentID: 7, Role: models.RoleStudent, Authenticated: true}.IsAdmin())
	assert.True(t, Caller{StudentID: 1, Role: models.RoleAdmin, Authenticated: true}.IsAdmin())
}

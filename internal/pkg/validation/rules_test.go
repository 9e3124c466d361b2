package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailPattern(t *testing.T) {
	valid := []string{
		"student@university.edu",
		"jane.doe+books@example.com",
		"a_b-c@sub.domain.org",
	}
	invalid := []string{
		"",
		"no-at-sign.com",
		"spaces in@example.com",
		"UPPER@example.com",
		"user@example",
	}

	for _, email := range valid {
		assert.True(t, CompiledPatterns.Email.MatchString(email), "expected valid: %s", email)
	}
	for _, email := range invalid {
		assert.False(t, CompiledPatterns.Email.MatchString(email), "expected invalid: %s", email)
	}
}

func TestEnrollmentPattern(t *testing.T) {
	valid := []string{"LIB2024", "ENG202400123", "CSE123456789012"}
	invalid := []string{"", "lib2024", "LI2024", "LIBR2024", "LIB123", "LIB1234567890123"}

	for _, number := range valid {
		assert.True(t, CompiledPatterns.Enrollment.MatchString(number), "expected valid: %s", number)
	}
	for _, number := range invalid {
		assert.False(t, CompiledPatterns.Enrollment.MatchString(number), "expected invalid: %s", number)
	}
}

func TestPhonePattern(t *testing.T) {
	valid := []string{"5551234567", "+905551234567", "1234567"}
	invalid := []string{"", "123456", "phone", "+", "555 123 4567", "1234567890123456"}

	for _, phone := range valid {
		assert.True(t, CompiledPatterns.Phone.MatchString(phone), "expected valid: %s", phone)
	}
	for _, phone := range invalid {
		assert.False(t, CompiledPatterns.Phone.MatchString(phone), "expected invalid: %s", phone)
	}
}

func TestUsernamePattern(t *testing.T) {
	valid := []string{"jane.doe", "reader_42", "abc"}
	invalid := []string{"", "ab", "has space", "dash-user", "way.too.long.username.over.thirty.chars"}

	for _, username := range valid {
		assert.True(t, CompiledPatterns.Username.MatchString(username), "expected valid: %s", username)
	}
	for _, username := range invalid {
		assert.False(t, CompiledPatterns.Username.MatchString(username), "expected invalid: %s", username)
	}
}

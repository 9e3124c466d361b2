package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// EmailPattern validates email addresses
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// EnrollmentPattern validates enrollment numbers: 3 uppercase letters followed by 4-12 digits
	EnrollmentPattern = `^[A-Z]{3}\d{4,12}$`

	// PhonePattern validates phone numbers: optional leading +, 7-15 digits
	PhonePattern = `^\+?\d{7,15}$`

	// UsernamePattern validates usernames: letters, digits, dots, underscores, 3-30 chars
	UsernamePattern = `^[a-zA-Z0-9._]{3,30}$`

	// PasswordMinLength is the minimum accepted password length
	PasswordMinLength = 8
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email      *regexp.Regexp
	Enrollment *regexp.Regexp
	Phone      *regexp.Regexp
	Username   *regexp.Regexp
}{
	Email:      regexp.MustCompile(EmailPattern),
	Enrollment: regexp.MustCompile(EnrollmentPattern),
	Phone:      regexp.MustCompile(PhonePattern),
	Username:   regexp.MustCompile(UsernamePattern),
}

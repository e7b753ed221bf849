package utils

import "strings"

const (
	minNameLength     = 3
	minPasswordLength = 6
)

// ValidateName validates a user name
func ValidateName(name string) bool {
	return len(name) >= minNameLength
}

// ValidateEmail validates an email address. Only the presence of "@" is
// required; anything stricter rejects addresses that mail servers accept.
func ValidateEmail(email string) bool {
	return strings.Contains(email, "@")
}

// ValidatePassword validates a password against the registration policy
func ValidatePassword(password string) bool {
	return len(password) >= minPasswordLength
}

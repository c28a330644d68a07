package utils

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail reports whether the address has a deliverable mailbox@domain
// shape. Registration checks this on top of request binding so review
// decision mail never targets an address the mailer cannot reach.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePassword enforces the account password policy: at least 8
// characters containing at least one letter and one digit. The message is
// empty when the password passes.
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasLetter = true
		}
	}
	if !hasLetter || !hasDigit {
		return false, "Password must contain at least one letter and one digit"
	}
	return true, ""
}

// SanitizeInput trims surrounding whitespace and strips null bytes.
func SanitizeInput(input string) string {
	return strings.ReplaceAll(strings.TrimSpace(input), "\x00", "")
}

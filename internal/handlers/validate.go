package handlers

import "unicode"

const (
	minUsernameLen = 3
	minPasswordLen = 8
)

// ValidateRegistration checks registration input and returns field-level
// errors, empty when the input is acceptable. Usernames are alphabetic with a
// minimum length; passwords need length plus one character from each class.
func ValidateRegistration(username, password string) map[string]string {
	fields := make(map[string]string)

	if len(username) < minUsernameLen {
		fields["username"] = "must be at least 3 characters"
	} else if !isAlphabetic(username) {
		fields["username"] = "must contain only letters"
	}

	if msg := checkPasswordStrength(password); msg != "" {
		fields["password"] = msg
	}

	return fields
}

func isAlphabetic(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func checkPasswordStrength(password string) string {
	if len(password) < minPasswordLen {
		return "must be at least 8 characters"
	}

	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}

	switch {
	case !upper:
		return "must contain an uppercase letter"
	case !lower:
		return "must contain a lowercase letter"
	case !digit:
		return "must contain a digit"
	case !symbol:
		return "must contain a symbol"
	}
	return ""
}

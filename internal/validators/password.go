package validators

import (
	"unicode"
	"unicode/utf8"
)

// MinPasswordLength is the minimum number of characters in a password.
const MinPasswordLength = 8

// PasswordMessagePrefix is prepended to a failed rule's reason to build the
// message shown to the user, e.g. "Password must contain a digit, ".
const PasswordMessagePrefix = "Password must "

// Reasons returned by EvaluatePassword.
const (
	ReasonTooShort     = "be at least 8 characters long, "
	ReasonNoDigit      = "contain a digit, "
	ReasonNoUppercase  = "contain an uppercase letter, "
	ReasonNoLowercase  = "contain a lowercase letter, "
	ReasonNoSpecial    = "contain a special character."
	ReasonPasswordGood = "Password is strong."
)

// EvaluatePassword checks password against the strength rules in order and
// reports the first one it violates:
//
//  1. at least MinPasswordLength characters
//  2. an ASCII digit
//  3. an ASCII uppercase letter
//  4. an ASCII lowercase letter
//  5. a character that is neither a letter, a digit nor an underscore
//
// On success it returns true and ReasonPasswordGood.
func EvaluatePassword(password string) (bool, string) {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return false, ReasonTooShort
	}

	var digit, upper, lower, special bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		}
		if !isWordRune(r) {
			special = true
		}
	}

	switch {
	case !digit:
		return false, ReasonNoDigit
	case !upper:
		return false, ReasonNoUppercase
	case !lower:
		return false, ReasonNoLowercase
	case !special:
		return false, ReasonNoSpecial
	}

	return true, ReasonPasswordGood
}

// PasswordMessage returns the user-facing message for a failed reason.
func PasswordMessage(reason string) string {
	return PasswordMessagePrefix + reason
}

// isWordRune matches the \w class: Unicode letters, numbers and underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

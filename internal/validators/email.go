package validators

import (
	"net/mail"
	"strings"
)

// maxEmailLength follows the SMTP path length limit.
const maxEmailLength = 254

// ValidateEmail reports ErrInvalidEmail unless email is a bare address of
// the form local@domain.tld. Display names, comments and angle brackets are
// rejected.
func ValidateEmail(email string) error {
	if email == "" || len(email) > maxEmailLength || strings.TrimSpace(email) != email {
		return ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return ErrInvalidEmail
	}

	at := strings.LastIndexByte(email, '@')
	local, domain := email[:at], email[at+1:]
	if local == "" || strings.ContainsAny(local, `"`) {
		return ErrInvalidEmail
	}

	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return ErrInvalidEmail
	}
	for _, label := range labels {
		if label == "" || strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return ErrInvalidEmail
		}
	}

	return nil
}

// NormalizeEmail trims surrounding whitespace and lower-cases email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

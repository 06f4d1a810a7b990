package mailer

import "errors"

var (
	// ErrSendFailed is returned when a message could not be handed to the
	// mail server.
	ErrSendFailed = errors.New("failed to send email")

	// ErrNoRecipients is returned for messages without recipients.
	ErrNoRecipients = errors.New("message has no recipients")
)

package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

const (
	SubjectConfirmation  = "Pet Life - Please confirm your email"
	SubjectPasswordReset = "Pet Life - Password reset request"
)

// Message is a single HTML email.
type Message struct {
	Subject    string
	Recipients []string
	HTML       string
}

var (
	confirmationTemplate = template.Must(template.New("confirmation").Parse(`<p>Welcome! Thanks for signing up.</p>
<p>Please follow this link to activate your account:</p>
<p><a href="{{ .Link }}">{{ .Link }}</a></p>
<p>The link is valid for one hour.</p>
<p>Cheers!</p>`))

	passwordResetTemplate = template.Must(template.New("password_reset").Parse(`<p>We received a request to reset your password.</p>
<p>Follow this link to choose a new one:</p>
<p><a href="{{ .Link }}">{{ .Link }}</a></p>
<p>The link is valid for one hour. If you did not ask for a reset, ignore this email.</p>`))
)

type linkData struct {
	Link string
}

// NewConfirmationMessage builds the email carrying the confirmation link.
func NewConfirmationMessage(recipient, link string) (Message, error) {
	return render(confirmationTemplate, SubjectConfirmation, recipient, link)
}

// NewPasswordResetMessage builds the email carrying the password-reset link.
func NewPasswordResetMessage(recipient, link string) (Message, error) {
	return render(passwordResetTemplate, SubjectPasswordReset, recipient, link)
}

func render(tmpl *template.Template, subject, recipient, link string) (Message, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, linkData{Link: link}); err != nil {
		return Message{}, fmt.Errorf("error rendering %s email: %w", tmpl.Name(), err)
	}

	return Message{
		Subject:    subject,
		Recipients: []string{recipient},
		HTML:       buf.String(),
	}, nil
}

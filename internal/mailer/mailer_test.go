package mailer

import (
	"bytes"
	"context"
	"net"
	"testing"

	"github.com/MKhiriev/go-pet-life/internal/config"
	"github.com/MKhiriev/go-pet-life/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfirmationMessage(t *testing.T) {
	msg, err := NewConfirmationMessage("bob@example.com", "http://localhost:8080/api/auth/confirm/abc")
	require.NoError(t, err)

	assert.Equal(t, SubjectConfirmation, msg.Subject)
	assert.Equal(t, []string{"bob@example.com"}, msg.Recipients)
	assert.Contains(t, msg.HTML, `href="http://localhost:8080/api/auth/confirm/abc"`)
}

func TestNewPasswordResetMessage_EscapesLink(t *testing.T) {
	msg, err := NewPasswordResetMessage("bob@example.com", `http://x/reset?t=<script>`)
	require.NoError(t, err)

	assert.Equal(t, SubjectPasswordReset, msg.Subject)
	assert.NotContains(t, msg.HTML, "<script>")
}

func TestNewSender_FallsBackToLog(t *testing.T) {
	sender, err := NewSender(config.Mail{}, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &LogSender{}, sender)

	sender, err = NewSender(config.Mail{Host: "smtp.example.com", Port: 587, From: "no-reply@example.com"}, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, &SMTPSender{}, sender)
}

func TestLogSender_Send(t *testing.T) {
	var buf bytes.Buffer
	sender := NewLogSender(logger.NewLogger("test", logger.WithOutput(&buf)))

	err := sender.Send(context.Background(), Message{Subject: "hi", Recipients: []string{"a@example.com"}, HTML: "<p>link</p>"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "a@example.com")
	assert.Contains(t, buf.String(), "hi")

	assert.ErrorIs(t, sender.Send(context.Background(), Message{Subject: "hi"}), ErrNoRecipients)
}

func TestSMTPSender_Send_Unreachable(t *testing.T) {
	// reserve a port and release it so nothing listens there
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	sender, err := NewSMTPSender(config.Mail{Host: "127.0.0.1", Port: port, From: "no-reply@example.com"}, logger.Nop())
	require.NoError(t, err)

	err = sender.Send(context.Background(), Message{Subject: "hi", Recipients: []string{"a@example.com"}, HTML: "x"})
	assert.ErrorIs(t, err, ErrSendFailed)
}

func TestSMTPSender_Send_InvalidAddresses(t *testing.T) {
	sender, err := NewSMTPSender(config.Mail{Host: "127.0.0.1", Port: 25, From: "not an address"}, logger.Nop())
	require.NoError(t, err)

	err = sender.Send(context.Background(), Message{Recipients: []string{"a@example.com"}})
	assert.ErrorIs(t, err, ErrSendFailed)

	err = sender.Send(context.Background(), Message{})
	assert.ErrorIs(t, err, ErrNoRecipients)
}

func TestNewSMTPSender_NoHost(t *testing.T) {
	_, err := NewSMTPSender(config.Mail{Port: 587}, logger.Nop())
	assert.Error(t, err)
}

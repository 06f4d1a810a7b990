// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:generate mockgen -source=interfaces.go -destination=../mock/mailer_sender_mock.go -package=mock

// Package mailer delivers transactional email: confirmation links and
// password-reset links.
package mailer

import "context"

// Sender delivers a single message.
type Sender interface {
	// Send delivers msg to every recipient. Delivery failures are reported
	// as ErrSendFailed.
	Send(ctx context.Context, msg Message) error
}

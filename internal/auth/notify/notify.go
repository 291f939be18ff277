// Package notify is the boundary to whatever delivers password-reset email.
// The auth core only ever sees this interface; delivery mechanics belong to
// the surrounding application.
package notify

import "context"

// Notifier delivers a password-reset link to an account holder.
type Notifier interface {
	// SendPasswordReset sends the reset link to the given address. A non-nil
	// error means the link must be treated as undelivered.
	SendPasswordReset(ctx context.Context, toAddress, recipientName, resetLink string) error
}

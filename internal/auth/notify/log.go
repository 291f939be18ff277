package notify

import (
	"context"
	"log/slog"

	"github.com/tokoku/storeapi/pkg/slogx"
)

// LogNotifier writes the reset link to the log instead of sending mail.
// Dev and test wiring only; a production deployment plugs in the mailer of
// the surrounding application.
type LogNotifier struct{}

func (LogNotifier) SendPasswordReset(ctx context.Context, toAddress, recipientName, resetLink string) error {
	slogx.FromContext(ctx).Info("password reset link issued",
		slog.String("to", toAddress),
		slog.String("name", recipientName),
		slog.String("link", resetLink),
	)
	return nil
}

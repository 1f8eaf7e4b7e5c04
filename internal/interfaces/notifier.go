package interfaces

import "context"

type Notifier interface {
	Send(ctx context.Context, recipients []string, subject, textBody, htmlBody string) error
}

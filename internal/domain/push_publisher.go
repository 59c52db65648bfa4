package domain

import "context"

// PushPublisher is the fire-and-forget sink for push/email delivery. Errors
// are reported to the caller but must never roll back a loan decision.
type PushPublisher interface {
	Publish(ctx context.Context, notification Notification) error
}

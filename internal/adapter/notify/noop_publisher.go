package notify

import (
	"context"

	"github.com/inekruz/MoneyNote/internal/domain"
)

// NoopPublisher stands in when no Redis address is configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) Publish(_ context.Context, _ domain.Notification) error {
	return nil
}

package events

import (
	"context"
)

// Publisher is the broker-facing half of event publishing. Handlers depend on
// this interface so they can run without a broker in tests.
type Publisher interface {
	Publish(ctx context.Context, exchange string, event *Event, headers Headers) error
	Close() error
}

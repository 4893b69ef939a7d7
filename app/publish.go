package app

import (
	"context"

	"resale/pkg/events"

	"go.uber.org/zap"
)

// publishEvent emits an integration event on a best-effort basis. State
// transitions never fail because the broker is down.
func publishEvent(ctx context.Context, publisher events.Publisher, exchange, name string, payload interface{}) {
	if publisher == nil {
		return
	}

	headers := events.Headers{
		TraceID:       events.NewTraceID(),
		CorrelationID: events.NewCorrelationID(),
		Service:       "resale",
	}

	event := events.NewEvent(name, events.EventVersionV1, payload, headers)

	if err := publisher.Publish(ctx, exchange, event, headers); err != nil {
		zap.L().Error("Failed to publish event",
			zap.String("event", name),
			zap.String("exchange", exchange),
			zap.Error(err),
		)
	}
}

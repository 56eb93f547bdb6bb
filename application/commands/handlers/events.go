package handlers

import (
	"context"

	"rollouthq/application/ports"
	"rollouthq/domain/events"

	"go.uber.org/zap"
)

// publishEvents ships events after the write has succeeded. A failed
// publish is logged and never fails the command.
func publishEvents(ctx context.Context, publisher ports.EventPublisher, logger *zap.Logger, evts []events.DomainEvent) {
	if publisher == nil || len(evts) == 0 {
		return
	}
	if err := publisher.Publish(ctx, evts); err != nil {
		logger.Error("Failed to publish domain events",
			zap.Int("count", len(evts)),
			zap.Error(err),
		)
	}
}

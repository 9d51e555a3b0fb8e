package services

import (
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/aim/pkg/infrastructure/events"
)

// auditTrail appends domain events to an event store. The zero value drops them.
type auditTrail struct {
	store  events.EventStore
	clock  Clock
	logger *zap.Logger
}

// publish records an event stamped with the current clock reading
func (a auditTrail) publish(eventType, streamID string, data interface{}) {
	if a.store == nil {
		return
	}
	a.publishAt(eventType, streamID, data, a.clock.Now())
}

// publishAt records an event; append failures are logged and never fail the operation
func (a auditTrail) publishAt(eventType, streamID string, data interface{}, at time.Time) {
	if a.store == nil {
		return
	}
	if err := a.store.AppendEvent(streamID, events.NewEvent(eventType, streamID, data, at)); err != nil && a.logger != nil {
		a.logger.Warn("event append failed",
			zap.String("type", eventType),
			zap.String("stream_id", streamID),
			zap.Error(err),
		)
	}
}

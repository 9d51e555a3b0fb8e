package events

import (
	"go.uber.org/zap"

	"github.com/vsinha/aim/pkg/infrastructure/logging"
)

// ShortageLogger warns about every shortage a verification identifies, one
// entry per short component
type ShortageLogger struct {
	logger *zap.Logger
}

func NewShortageLogger(logger *zap.Logger) *ShortageLogger {
	return &ShortageLogger{logger: logging.OrNop(logger).Named("shortages")}
}

// Register subscribes the logger to shortage events on store
func (l *ShortageLogger) Register(store EventStore) error {
	return store.Subscribe([]string{ShortageIdentifiedEvent}, l)
}

func (l *ShortageLogger) CanHandle(eventType string) bool {
	return eventType == ShortageIdentifiedEvent
}

func (l *ShortageLogger) Handle(event Event) error {
	var shortage ShortageIdentified
	switch data := event.Data().(type) {
	case ShortageIdentified:
		shortage = data
	case *ShortageIdentified:
		shortage = *data
	default:
		l.logger.Debug("ignoring shortage event without payload", zap.String("stream_id", event.StreamID()))
		return nil
	}

	for _, s := range shortage.Shortfalls {
		l.logger.Warn("component short",
			zap.String("revision_id", string(shortage.RevisionID)),
			zap.String("mode", shortage.Mode),
			zap.String("component_id", string(s.ComponentID)),
			zap.Int64("required", int64(s.Required)),
			zap.Int64("available", int64(s.Available)),
		)
	}
	return nil
}

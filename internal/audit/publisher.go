package audit

import (
	"context"
	"log/slog"

	"campus/pkg/requestcontext"
)

// Publisher hands events to the worker through a buffered channel. Emit never
// blocks a request: when the buffer is full the event is dropped and logged.
type Publisher struct {
	events chan Event
	logger *slog.Logger
}

func NewPublisher(buffer int, logger *slog.Logger) *Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{events: make(chan Event, buffer), logger: logger}
}

// Emit stamps the event with the request time and request ID from ctx when
// they are not already set, then enqueues it.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	select {
	case p.events <- event:
	default:
		p.logger.WarnContext(ctx, "audit buffer full, dropping event",
			"action", event.Action,
			"entity_id", event.EntityID,
		)
	}
}

// Events is the channel the worker drains.
func (p *Publisher) Events() <-chan Event {
	return p.events
}

package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/contract"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/domain/event"
)

// EventFanout broadcasts published message events to every subscriber
// currently registered with the broker.
//
// It provides best-effort fan-out with no guarantees regarding delivery,
// ordering, durability, or retries. EventFanout is not a message broker.
//
// EventFanout is safe for concurrent use by multiple goroutines.
type EventFanout struct {
	log         *slog.Logger
	broker      contract.IBroker
	events      chan event.DomainEvent
	sinkTimeout time.Duration
}

func NewEventFanout(log *slog.Logger, broker contract.IBroker,
	events chan event.DomainEvent, sinkTimeout time.Duration) *EventFanout {
	return &EventFanout{log: log, broker: broker, events: events, sinkTimeout: sinkTimeout}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt := <-w.events:
			w.Fanout(ctx, evt)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping fanout")
			return nil
		}
	}
}

// Fanout delivers one event to each active sink.
// Each sink gets its own delivery timeout so one stuck subscriber
// cannot hold back the rest.
func (w *EventFanout) Fanout(ctx context.Context, evt event.DomainEvent) {
	for _, sink := range w.broker.Sinks() {
		sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
		if err := sink.Consume(sinkCtx, evt); err != nil {
			w.log.Debug("Sink dropped event", "error", err)
		}
		cancel()
	}
}

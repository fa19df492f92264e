package sink

import (
	"context"

	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/domain/event"
)

// ChannelSink bridges the fanout worker and one subscriber connection.
type ChannelSink struct {
	Events chan event.DomainEvent
}

func NewChannelSink(bufferSize int) *ChannelSink {
	return &ChannelSink{Events: make(chan event.DomainEvent, bufferSize)}
}

// Consume is called by fanout.
// Redirects the event through the subscriber's channel; the
// subscription handler takes it from there. A full channel drops the
// event rather than blocking the fanout loop.
func (s *ChannelSink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case s.Events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

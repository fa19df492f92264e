package sink

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/domain"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/domain/event"
)

func TestTimeline_Deduplicates_By_Identity(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()

	message := domain.Message{ID: uuid.New(), Sender: "Alice", Content: "hi"}

	// The same record arriving via poll and push is kept once
	timeline.Replace([]domain.Message{message})
	req.NoError(timeline.Consume(context.Background(), event.MessagePosted{Message: message}))

	req.Len(timeline.Messages(), 1)
}

func TestTimeline_Replace_Overwrites_View_State(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()

	timeline.Append(domain.Message{ID: uuid.New(), Sender: "Alice", Content: "stale"})

	snapshot := []domain.Message{
		{ID: uuid.New(), Sender: "Bob", Content: "fresh one"},
		{ID: uuid.New(), Sender: "Clara", Content: "fresh two"},
	}
	timeline.Replace(snapshot)

	req.Equal(snapshot, timeline.Messages())
}

func TestChannelSink_Drops_When_Full(t *testing.T) {
	req := require.New(t)
	channelSink := NewChannelSink(1)
	evt := event.MessagePosted{Message: domain.Message{ID: uuid.New(), CreatedAt: time.Now()}}

	// First event fits the buffer, second is dropped without blocking
	req.NoError(channelSink.Consume(context.Background(), evt))
	req.NoError(channelSink.Consume(context.Background(), evt))
	req.Len(channelSink.Events, 1)
}

func TestChannelSink_Honors_Canceled_Context(t *testing.T) {
	req := require.New(t)
	channelSink := NewChannelSink(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	evt := event.MessagePosted{Message: domain.Message{ID: uuid.New()}}
	err := channelSink.Consume(ctx, evt)
	req.ErrorIs(err, context.Canceled)
}

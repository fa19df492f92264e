package sink

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/domain"
	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/domain/event"
)

// Timeline holds a simple local timeline merged from two sources: a
// full snapshot (polling) and pushed records (subscription). Records
// are deduplicated by identity; no ordering guarantee exists between
// the two sources.
type Timeline struct {
	mu       sync.Mutex
	messages []domain.Message
	seen     map[uuid.UUID]struct{}
}

func NewTimeline() *Timeline {
	return &Timeline{seen: make(map[uuid.UUID]struct{})}
}

// Consume appends a pushed record unless its id is already present.
func (t *Timeline) Consume(_ context.Context, e event.DomainEvent) error {
	evt, ok := e.(event.MessagePosted)
	if !ok {
		return nil
	}
	t.Append(evt.Message)
	return nil
}

func (t *Timeline) Append(message domain.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, dup := t.seen[message.ID]; dup {
		return
	}
	t.seen[message.ID] = struct{}{}
	t.messages = append(t.messages, message)
}

// Replace overwrites the timeline with a polled snapshot.
func (t *Timeline) Replace(messages []domain.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append([]domain.Message(nil), messages...)
	t.seen = make(map[uuid.UUID]struct{}, len(messages))
	for _, m := range messages {
		t.seen[m.ID] = struct{}{}
	}
}

// Messages returns a copy of the current view state.
func (t *Timeline) Messages() []domain.Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]domain.Message(nil), t.messages...)
}

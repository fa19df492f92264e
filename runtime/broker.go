// Package runtime handles event propagation from the mutation path to
// every live subscriber. It orchestrates delivery without containing
// business logic or domain rules.
package runtime

import (
	"sync"

	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/contract"
)

// Broker is the registry behind the single broadcast topic.
// There is exactly one topic: every subscriber sees every event
// published after it subscribed. No replay of history.
type Broker struct {
	mu       sync.RWMutex
	sessions map[string]contract.EventSink // subscriber id -> sink
}

func NewBroker() *Broker {
	return &Broker{sessions: make(map[string]contract.EventSink)}
}

// Subscribe registers a subscriber's sink under its id.
// Re-subscribing with the same id replaces the previous sink.
func (b *Broker) Subscribe(subscriberID string, sink contract.EventSink) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sessions[subscriberID] = sink
}

// Unsubscribe removes a subscriber so its sink is never invoked again.
// Unknown ids are a no-op; disconnect paths may race with each other.
func (b *Broker) Unsubscribe(subscriberID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.sessions, subscriberID)
}

// Sinks returns a snapshot of the active sinks.
// The snapshot keeps fan-out outside the lock.
func (b *Broker) Sinks() []contract.EventSink {
	b.mu.RLock()
	defer b.mu.RUnlock()
	sinks := make([]contract.EventSink, 0, len(b.sessions))
	for _, sink := range b.sessions {
		sinks = append(sinks, sink)
	}
	return sinks
}

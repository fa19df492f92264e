package contract

import (
	"context"
	"reflect"

	"github.com/Yashwant123457/File-Sharing-App-Chat-Bot/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker
// lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// IBroker is the single-topic broadcast registry.
// Every registered sink receives every event published after it subscribed.
type IBroker interface {
	Subscribe(subscriberID string, sink EventSink)
	Unsubscribe(subscriberID string)
	Sinks() []EventSink
}

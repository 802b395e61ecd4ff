// Package eventbus provides an in-process pub/sub bus for sync events.
// The engine notifies its own listeners synchronously; the bus is the
// asynchronous side. The websocket hub, the autosaver and the event log
// consume from it without holding up the syncing goroutine.
package eventbus

import (
	"context"
	"log"
	"sync"

	"github.com/ctrlstudio/modelsync/internal/model"
)

// Handler processes a sync event. Implementations must be safe for
// concurrent calls from different goroutines.
type Handler interface {
	HandleEvent(ctx context.Context, evt model.SyncEvent) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, evt model.SyncEvent) error

func (f HandlerFunc) HandleEvent(ctx context.Context, evt model.SyncEvent) error {
	return f(ctx, evt)
}

// Bus is a simple in-process event bus. Events are published to a buffered
// channel and dispatched to all subscribers from a single consumer
// goroutine. This serialises downstream processing, which keeps the
// autosaver's SQLite writes free of concurrent-write issues.
type Bus struct {
	mu          sync.RWMutex
	subscribers []namedHandler
	events      chan model.SyncEvent
	done        chan struct{}
}

type namedHandler struct {
	name    string
	handler Handler
}

// New creates a new Bus with the given channel buffer size.
func New(bufSize int) *Bus {
	if bufSize < 1 {
		bufSize = 256
	}
	return &Bus{
		events: make(chan model.SyncEvent, bufSize),
		done:   make(chan struct{}),
	}
}

// Subscribe registers a named handler. Must be called before Start.
func (b *Bus) Subscribe(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, namedHandler{name: name, handler: h})
}

// Publish sends an event to the bus. Non-blocking: if the buffer is full
// the event is dropped and a warning is logged.
func (b *Bus) Publish(ctx context.Context, evt model.SyncEvent) {
	select {
	case b.events <- evt:
	default:
		log.Printf("eventbus: buffer full, dropping event %s (%s)", evt.Type, evt.ID)
	}
}

// Start begins the consumer goroutine. It processes events until the
// context is cancelled.
func (b *Bus) Start(ctx context.Context) {
	go func() {
		defer close(b.done)
		for {
			select {
			case evt := <-b.events:
				b.dispatch(ctx, evt)
			case <-ctx.Done():
				// Drain remaining events before exiting.
				for {
					select {
					case evt := <-b.events:
						b.dispatch(ctx, evt)
					default:
						return
					}
				}
			}
		}
	}()
}

// Stop waits for the consumer goroutine to finish. Call after cancelling
// the Start context.
func (b *Bus) Stop() {
	<-b.done
}

func (b *Bus) dispatch(ctx context.Context, evt model.SyncEvent) {
	b.mu.RLock()
	subs := b.subscribers
	b.mu.RUnlock()

	for _, s := range subs {
		if err := s.handler.HandleEvent(ctx, evt); err != nil {
			log.Printf("eventbus: %s handler error for %s: %v", s.name, evt.Type, err)
		}
	}
}

package availability

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// DefaultBuffer is the per-subscriber queue length used when none is configured.
const DefaultBuffer = 8

// Subscription is one rider socket's view of the registry.
type Subscription struct {
	id       uuid.UUID
	messages chan Message
}

func (s *Subscription) ID() uuid.UUID {
	return s.id
}

// Messages is closed when the subscriber is unregistered or dropped.
func (s *Subscription) Messages() <-chan Message {
	return s.messages
}

// discardQueued empties the queue without waiting. A closed queue stays closed.
func (s *Subscription) discardQueued() {
	for {
		select {
		case _, ok := <-s.messages:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

// Registry tracks connected rider sockets. It is safe for concurrent use.
type Registry struct {
	mu          sync.Mutex
	buffer      int
	subscribers map[uuid.UUID]chan Message
	logger      *slog.Logger
}

// NewRegistry creates an empty registry. buffer below 1 falls back to DefaultBuffer.
func NewRegistry(buffer int, logger *slog.Logger) *Registry {
	if buffer < 1 {
		buffer = DefaultBuffer
	}
	return &Registry{
		buffer:      buffer,
		subscribers: make(map[uuid.UUID]chan Message),
		logger:      logger.With("component", "availability_registry"),
	}
}

func (r *Registry) Register() *Subscription {
	sub := &Subscription{
		id:       uuid.New(),
		messages: make(chan Message, r.buffer),
	}

	r.mu.Lock()
	r.subscribers[sub.id] = sub.messages
	r.mu.Unlock()

	return sub
}

// Unregister removes the subscriber and closes its channel. Unknown ids are ignored.
func (r *Registry) Unregister(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ch, ok := r.subscribers[id]; ok {
		delete(r.subscribers, id)
		close(ch)
	}
}

// Broadcast queues msg for every subscriber without blocking. Subscribers with
// a full queue are dropped.
func (r *Registry) Broadcast(ctx context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, ch := range r.subscribers {
		select {
		case ch <- msg:
		default:
			delete(r.subscribers, id)
			close(ch)
			r.logger.WarnContext(ctx, "Dropped slow subscriber", "subscriber_id", id)
		}
	}
	return nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subscribers)
}

// Close unregisters every subscriber.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, ch := range r.subscribers {
		delete(r.subscribers, id)
		close(ch)
	}
}

package availability

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DefaultTimeout bounds one recompute-and-broadcast round.
const DefaultTimeout = 5 * time.Second

// Notifier recomputes the available-order count and broadcasts it. It
// implements ports.OrderChangeListener.
//
// Count-and-broadcast rounds never overlap, so broadcasts leave in the order
// their counts were taken. Changes reported while a round runs collapse into
// one more round started after it.
type Notifier struct {
	counter     Counter
	broadcaster Broadcaster
	timeout     time.Duration
	logger      *slog.Logger

	round sync.Mutex

	mu       sync.Mutex
	pending  bool
	running  bool
	inflight sync.WaitGroup
}

// NewNotifier creates a notifier. timeout of zero or less uses DefaultTimeout.
func NewNotifier(counter Counter, broadcaster Broadcaster, timeout time.Duration, logger *slog.Logger) *Notifier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Notifier{
		counter:     counter,
		broadcaster: broadcaster,
		timeout:     timeout,
		logger:      logger.With("component", "availability_notifier"),
	}
}

// OrdersChanged schedules a refresh and returns at once. The refresh outlives
// ctx's cancellation but keeps its values.
func (n *Notifier) OrdersChanged(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.pending = true
	if n.running {
		return
	}
	n.running = true
	n.inflight.Add(1)
	go n.work(context.WithoutCancel(ctx))
}

// work runs rounds until no change is pending.
func (n *Notifier) work(detached context.Context) {
	defer n.inflight.Done()

	for n.takePending() {
		ctx, cancel := context.WithTimeout(detached, n.timeout)
		if err := n.Refresh(ctx); err != nil {
			n.logger.ErrorContext(ctx, "Availability broadcast failed", "error", err)
		}
		cancel()
	}
}

func (n *Notifier) takePending() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.pending {
		n.running = false
		return false
	}
	n.pending = false
	return true
}

// Refresh counts and broadcasts synchronously.
func (n *Notifier) Refresh(ctx context.Context) error {
	n.round.Lock()
	defer n.round.Unlock()

	msg, err := n.CurrentMessage(ctx)
	if err != nil {
		return err
	}
	if err := n.broadcaster.Broadcast(ctx, msg); err != nil {
		return fmt.Errorf("broadcast order count: %w", err)
	}
	return nil
}

// Snapshot returns the live count for a new subscriber and discards what sub
// has queued so far. Everything broadcast to sub afterwards is newer than the
// returned message.
func (n *Notifier) Snapshot(ctx context.Context, sub *Subscription) (Message, error) {
	n.round.Lock()
	defer n.round.Unlock()

	msg, err := n.CurrentMessage(ctx)
	if err != nil {
		return Message{}, err
	}
	sub.discardQueued()
	return msg, nil
}

// CurrentMessage builds the message for the live count without broadcasting it.
func (n *Notifier) CurrentMessage(ctx context.Context) (Message, error) {
	count, err := n.counter.CountAvailable(ctx)
	if err != nil {
		return Message{}, fmt.Errorf("count available orders: %w", err)
	}
	return NewCountMessage(count), nil
}

// Wait blocks until every scheduled refresh has finished.
func (n *Notifier) Wait() {
	n.inflight.Wait()
}

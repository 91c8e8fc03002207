package availability

import (
	"context"
	"fmt"
)

// MessageType tags count updates on the rider socket.
const MessageType = "order_count_update"

// Message is the payload pushed to rider sockets.
type Message struct {
	Type    string `json:"type"`
	Count   int64  `json:"count"`
	Message string `json:"message"`
}

func NewCountMessage(count int64) Message {
	return Message{
		Type:    MessageType,
		Count:   count,
		Message: fmt.Sprintf("%d orders available for pickup", count),
	}
}

// Broadcaster delivers a message to every connected rider.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg Message) error
}

// Counter returns the number of unassigned orders in a claimable status.
type Counter interface {
	CountAvailable(ctx context.Context) (int64, error)
}

// CounterFunc adapts a function to Counter.
type CounterFunc func(ctx context.Context) (int64, error)

func (f CounterFunc) CountAvailable(ctx context.Context) (int64, error) {
	return f(ctx)
}

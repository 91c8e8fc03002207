// Package redisrelay shares availability counts between service instances
// through a Redis pub/sub channel.
//
// Every instance's notifier publishes to the channel and every instance runs
// the relay loop, which hands received messages to the local registry. An
// instance therefore delivers its own updates through Redis too, so all
// instances observe one order of updates.
package redisrelay

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"marketplace/internal/core/application/availability"

	"github.com/redis/go-redis/v9"
)

const DefaultChannel = "marketplace:orders:available"

// Relay is an availability.Broadcaster backed by Redis.
type Relay struct {
	client  *redis.Client
	channel string
	local   availability.Broadcaster
	logger  *slog.Logger
}

func NewRelay(client *redis.Client, channel string, local availability.Broadcaster, logger *slog.Logger) *Relay {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Relay{
		client:  client,
		channel: channel,
		local:   local,
		logger:  logger.With("component", "redis_relay", "channel", channel),
	}
}

// Broadcast publishes msg for every instance, this one included.
func (r *Relay) Broadcast(ctx context.Context, msg availability.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", r.channel, err)
	}
	return nil
}

// Run forwards channel messages to the local broadcaster until ctx is done.
// When ready is not nil it receives the subscription result before any
// message is forwarded.
func (r *Relay) Run(ctx context.Context, ready chan<- error) error {
	pubsub := r.client.Subscribe(ctx, r.channel)
	defer pubsub.Close()

	// Receive blocks until Redis confirms the subscription.
	_, err := pubsub.Receive(ctx)
	if ready != nil {
		ready <- err
	}
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", r.channel, err)
	}
	r.logger.InfoContext(ctx, "Redis relay subscribed")

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			r.logger.InfoContext(context.WithoutCancel(ctx), "Redis relay stopped")
			return nil
		case m, ok := <-messages:
			if !ok {
				return nil
			}
			r.forward(ctx, m.Payload)
		}
	}
}

func (r *Relay) forward(ctx context.Context, payload string) {
	var msg availability.Message
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		r.logger.WarnContext(ctx, "Discarding malformed relay message", "error", err)
		return
	}
	if msg.Type != availability.MessageType {
		r.logger.WarnContext(ctx, "Discarding unknown relay message", "type", msg.Type)
		return
	}
	if err := r.local.Broadcast(ctx, msg); err != nil {
		r.logger.ErrorContext(ctx, "Local broadcast failed", "error", err)
	}
}

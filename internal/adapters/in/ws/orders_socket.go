// Package ws serves the rider availability socket.
package ws

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"marketplace/internal/core/application/availability"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// DefaultWriteTimeout bounds every frame written to a rider.
const DefaultWriteTimeout = 10 * time.Second

// CountSource yields the message sent right after a rider connects and drops
// the updates sub queued before it.
type CountSource interface {
	Snapshot(ctx context.Context, sub *availability.Subscription) (availability.Message, error)
}

// OrdersSocket upgrades rider requests and streams count updates from the
// registry. Authentication and the rider role check happen in the route's
// middleware.
type OrdersSocket struct {
	registry     *availability.Registry
	source       CountSource
	writeTimeout time.Duration
	upgrader     websocket.Upgrader
	logger       *slog.Logger
}

func NewOrdersSocket(
	registry *availability.Registry,
	source CountSource,
	writeTimeout time.Duration,
	logger *slog.Logger,
) *OrdersSocket {
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}
	return &OrdersSocket{
		registry:     registry,
		source:       source,
		writeTimeout: writeTimeout,
		upgrader: websocket.Upgrader{
			// Rider apps are native clients and send no browser origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "orders_socket"),
	}
}

// Serve handles GET /ws/riders/orders.
func (s *OrdersSocket) Serve(c echo.Context) error {
	ctx := c.Request().Context()

	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already answered the request.
		s.logger.WarnContext(ctx, "Websocket upgrade failed", "error", err)
		return nil
	}
	defer conn.Close()

	sub := s.registry.Register()
	defer s.registry.Unregister(sub.ID())

	initial, err := s.source.Snapshot(ctx, sub)
	if err != nil {
		s.logger.ErrorContext(ctx, "Initial order count failed", "error", err)
		s.writeClose(conn, websocket.CloseInternalServerErr, "count unavailable")
		return nil
	}
	if err := s.write(conn, initial); err != nil {
		return nil
	}

	gone := make(chan struct{})
	go s.readUntilClosed(conn, gone)

	for {
		select {
		case msg, ok := <-sub.Messages():
			if !ok {
				s.writeClose(conn, websocket.CloseTryAgainLater, "subscriber dropped")
				return nil
			}
			if err := s.write(conn, msg); err != nil {
				s.logger.InfoContext(ctx, "Dropping rider socket", "subscriber_id", sub.ID(), "error", err)
				return nil
			}
		case <-gone:
			return nil
		}
	}
}

// readUntilClosed drains client frames so control messages are processed and
// signals when the peer goes away.
func (s *OrdersSocket) readUntilClosed(conn *websocket.Conn, gone chan<- struct{}) {
	defer close(gone)
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

func (s *OrdersSocket) write(conn *websocket.Conn, msg availability.Message) error {
	if err := conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}

func (s *OrdersSocket) writeClose(conn *websocket.Conn, code int, text string) {
	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, text),
		time.Now().Add(s.writeTimeout),
	)
}

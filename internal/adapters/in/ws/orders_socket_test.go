package ws_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"marketplace/internal/adapters/in/ws"
	"marketplace/internal/core/application/availability"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	count int64
	err   error
}

func (s staticSource) Snapshot(context.Context, *availability.Subscription) (availability.Message, error) {
	if s.err != nil {
		return availability.Message{}, s.err
	}
	return availability.NewCountMessage(s.count), nil
}

func startSocket(t *testing.T, registry *availability.Registry, source ws.CountSource) string {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	socket := ws.NewOrdersSocket(registry, source, time.Second, logger)

	e := echo.New()
	e.GET("/ws/riders/orders", socket.Serve)
	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	return "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/riders/orders"
}

func readMessage(t *testing.T, conn *websocket.Conn) availability.Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg availability.Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestOrdersSocket_SendsInitialCountThenUpdates(t *testing.T) {
	ctx := t.Context()
	registry := availability.NewRegistry(4, slog.New(slog.NewTextHandler(io.Discard, nil)))
	url := startSocket(t, registry, staticSource{count: 3})

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	require.NoError(t, err)
	defer conn.Close()

	initial := readMessage(t, conn)
	assert.Equal(t, availability.NewCountMessage(3), initial)

	require.Eventually(t, func() bool { return registry.Len() == 1 }, time.Second, 10*time.Millisecond)
	require.NoError(t, registry.Broadcast(ctx, availability.NewCountMessage(2)))

	update := readMessage(t, conn)
	assert.Equal(t, "order_count_update", update.Type)
	assert.Equal(t, int64(2), update.Count)
	assert.Equal(t, "2 orders available for pickup", update.Message)
}

func TestOrdersSocket_UnregistersWhenClientLeaves(t *testing.T) {
	ctx := t.Context()
	registry := availability.NewRegistry(4, slog.New(slog.NewTextHandler(io.Discard, nil)))
	url := startSocket(t, registry, staticSource{count: 0})

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	require.NoError(t, err)
	readMessage(t, conn)
	require.Eventually(t, func() bool { return registry.Len() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")))
	conn.Close()

	assert.Eventually(t, func() bool { return registry.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestOrdersSocket_DroppedSubscriberIsDisconnected(t *testing.T) {
	ctx := t.Context()
	registry := availability.NewRegistry(1, slog.New(slog.NewTextHandler(io.Discard, nil)))
	url := startSocket(t, registry, staticSource{count: 1})

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	require.NoError(t, err)
	defer conn.Close()
	readMessage(t, conn)
	require.Eventually(t, func() bool { return registry.Len() == 1 }, time.Second, 10*time.Millisecond)

	registry.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	var closeErr *websocket.CloseError
	require.True(t, errors.As(err, &closeErr), "got %v", err)
	assert.Equal(t, websocket.CloseTryAgainLater, closeErr.Code)
}

func TestOrdersSocket_ClosesWhenCountUnavailable(t *testing.T) {
	ctx := t.Context()
	registry := availability.NewRegistry(1, slog.New(slog.NewTextHandler(io.Discard, nil)))
	url := startSocket(t, registry, staticSource{err: errors.New("db down")})

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseInternalServerErr), "got %v", err)
	assert.Eventually(t, func() bool { return registry.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestOrdersSocket_UpdatesQueuedBeforeInitialCountAreSkipped(t *testing.T) {
	ctx := t.Context()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := availability.NewRegistry(4, logger)

	// An update counted before the rider joined lands in its queue while the
	// initial count is being taken.
	counter := availability.CounterFunc(func(ctx context.Context) (int64, error) {
		if err := registry.Broadcast(ctx, availability.NewCountMessage(9)); err != nil {
			return 0, err
		}
		return 3, nil
	})
	notifier := availability.NewNotifier(counter, registry, time.Second, logger)
	url := startSocket(t, registry, notifier)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, int64(3), readMessage(t, conn).Count)

	require.NoError(t, registry.Broadcast(ctx, availability.NewCountMessage(2)))
	assert.Equal(t, int64(2), readMessage(t, conn).Count)
}

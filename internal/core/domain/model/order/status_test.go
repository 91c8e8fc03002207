package order_test

import (
	"encoding/json"
	"testing"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []order.Status {
	return []order.Status{
		order.Pending, order.Accepted, order.Preparing, order.Assigned, order.Ready,
		order.OnTheWay, order.Arrived, order.Delivered, order.Cancelled,
	}
}

func TestStatus_Names(t *testing.T) {
	expected := []string{"pending", "accepted", "preparing", "assigned", "ready", "otw", "arrived", "delivered", "cancelled"}
	for i, s := range allStatuses() {
		assert.Equal(t, expected[i], s.String())
		parsed, err := order.ParseStatus(expected[i])
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	assert.Equal(t, "unknown", order.Unknown.String())
	require.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
	_, err := order.ParseStatus("shipped")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_TerminalStatesHaveNoEdges(t *testing.T) {
	for _, terminal := range []order.Status{order.Delivered, order.Cancelled} {
		assert.True(t, terminal.IsTerminal())
		for _, target := range allStatuses() {
			assert.False(t, terminal.CanMoveTo(target), "%s -> %s", terminal, target)
		}
	}
}

func TestStatus_EveryNonTerminalStateCanBeCancelledByRestaurant(t *testing.T) {
	for _, s := range allStatuses() {
		if s.IsTerminal() {
			continue
		}
		assert.True(t, s.RestaurantCanMoveTo(order.Cancelled), s.String())
		assert.False(t, s.RiderCanMoveTo(order.Cancelled), s.String())
	}
}

func TestStatus_Edges(t *testing.T) {
	legal := map[order.Status][]order.Status{
		order.Pending:   {order.Accepted, order.Preparing, order.Assigned, order.Cancelled},
		order.Accepted:  {order.Preparing, order.Assigned, order.Cancelled},
		order.Preparing: {order.Ready, order.Assigned, order.Cancelled},
		order.Ready:     {order.Assigned, order.OnTheWay, order.Arrived, order.Delivered, order.Cancelled},
		order.Assigned:  {order.OnTheWay, order.Arrived, order.Delivered, order.Cancelled},
		order.OnTheWay:  {order.Arrived, order.Delivered, order.Cancelled},
		order.Arrived:   {order.Delivered, order.Cancelled},
	}

	for from, targets := range legal {
		for _, to := range allStatuses() {
			want := false
			for _, l := range targets {
				if l == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanMoveTo(to), "%s -> %s", from, to)
		}
	}
}

func TestStatus_Claimable(t *testing.T) {
	claimable := map[order.Status]bool{order.Pending: true, order.Accepted: true, order.Preparing: true, order.Ready: true}
	for _, s := range allStatuses() {
		assert.Equal(t, claimable[s], s.IsClaimable(), s.String())
	}
	assert.Len(t, order.ClaimableStatuses(), 4)
}

func TestStatus_JSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		Status order.Status `json:"status"`
	}{order.OnTheWay})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"otw"}`, string(raw))

	var decoded struct {
		Status order.Status `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"status":"ready"}`), &decoded))
	assert.Equal(t, order.Ready, decoded.Status)
	require.Error(t, json.Unmarshal([]byte(`{"status":"lost"}`), &decoded))
}

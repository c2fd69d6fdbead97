package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrder_Cancel(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	cases := []struct {
		name   string
		status Status
		want   bool
	}{
		{"pending is cancellable", StatusPending, true},
		{"pending_payment is cancellable", StatusPendingPayment, true},
		{"ready is cancellable", StatusReady, true},
		{"completed is not cancellable", StatusCompleted, false},
		{"already cancelled is not cancellable again", StatusCancelled, false},
		{"expired is not cancellable", StatusExpired, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			order := &Order{Status: tc.status}
			got := order.Cancel(now)

			assert.Equal(t, tc.want, got)
			if tc.want {
				assert.Equal(t, StatusCancelled, order.Status)
				assert.NotNil(t, order.CancelledAt)
			} else {
				assert.Equal(t, tc.status, order.Status)
				assert.Nil(t, order.CancelledAt)
			}
		})
	}
}

// TestOrder_Cancel_Idempotent mirrors C6's re-check-under-transaction
// requirement: cancelling an already-cancelled order a second time must be
// a no-op, not a second transition.
func TestOrder_Cancel_Idempotent(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	order := &Order{Status: StatusPending}

	assert.True(t, order.Cancel(now))
	firstCancelledAt := order.CancelledAt

	later := now.Add(time.Minute)
	assert.False(t, order.Cancel(later))
	assert.Equal(t, firstCancelledAt, order.CancelledAt)
}

func TestOrder_Expire(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	cases := []struct {
		name      string
		status    Status
		expiresAt *time.Time
		want      bool
	}{
		{"pending_payment past deadline expires", StatusPendingPayment, &past, true},
		{"ready past deadline expires", StatusReady, &past, true},
		{"pending_payment before deadline does not expire", StatusPendingPayment, &future, false},
		{"no deadline set does not expire", StatusPendingPayment, nil, false},
		{"pending is not in the expiry-eligible set", StatusPending, &past, false},
		{"completed is not in the expiry-eligible set", StatusCompleted, &past, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			order := &Order{Status: tc.status, ExpiresAt: tc.expiresAt}
			got := order.Expire(now)

			assert.Equal(t, tc.want, got)
			if tc.want {
				assert.Equal(t, StatusExpired, order.Status)
				assert.NotNil(t, order.CancelledAt)
			} else {
				assert.Equal(t, tc.status, order.Status)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	status, ok := ParseStatus("ready")
	assert.True(t, ok)
	assert.Equal(t, StatusReady, status)

	_, ok = ParseStatus("not-a-status")
	assert.False(t, ok)
}

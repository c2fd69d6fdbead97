package domain

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending        Status = "pending"
	StatusPendingPayment Status = "pending_payment"
	StatusReady          Status = "ready"
	StatusCompleted      Status = "completed"
	StatusCancelled      Status = "cancelled"
	StatusExpired        Status = "expired"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusPendingPayment, StatusReady, StatusCompleted, StatusCancelled, StatusExpired:
		return Status(s), true
	default:
		return "", false
	}
}

// Order is the aggregate root for the Orders domain (spec.md §3).
type Order struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	UserID        uuid.UUID  `db:"user_id" json:"userId"`
	Product       string     `db:"product" json:"product"`
	Quantity      int        `db:"quantity" json:"quantity"`
	Price         float64    `db:"price" json:"price"`
	Status        Status     `db:"status" json:"status"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	ExpiresAt     *time.Time `db:"expires_at" json:"expiresAt,omitempty"`
	CancelledAt   *time.Time `db:"cancelled_at" json:"cancelledAt,omitempty"`
}

// eligibleForCancellation lists the statuses the reaction handler (C6) may
// cancel; the expiry scanner (C7) uses eligibleForExpiry. Re-checked inside the
// transaction each time so replayed events stay idempotent (spec.md §4.6).
func (o *Order) eligibleForCancellation() bool {
	switch o.Status {
	case StatusPending, StatusPendingPayment, StatusReady:
		return true
	default:
		return false
	}
}

// Cancel transitions the order to Cancelled if it is still in an eligible
// state, returning false when a concurrent writer already moved it on.
func (o *Order) Cancel(now time.Time) bool {
	if !o.eligibleForCancellation() {
		return false
	}

	o.Status = StatusCancelled
	o.CancelledAt = &now

	return true
}

// eligibleForExpiry is the narrower subset the scanner (C7) considers:
// orders that are past a payment deadline rather than simply pending.
func (o *Order) eligibleForExpiry() bool {
	switch o.Status {
	case StatusPendingPayment, StatusReady:
		return true
	default:
		return false
	}
}

func (o *Order) Expire(now time.Time) bool {
	if !o.eligibleForExpiry() {
		return false
	}
	if o.ExpiresAt == nil || o.ExpiresAt.After(now) {
		return false
	}

	o.Status = StatusExpired
	o.CancelledAt = &now

	return true
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// User is the aggregate root for the Users domain (spec.md §3). The
// contact address (Email) is unique across all Users.
type User struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Status    Status    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusActive, StatusInactive:
		return Status(s), true
	default:
		return "", false
	}
}

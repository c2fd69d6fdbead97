package repos

import "github.com/google/uuid"

var (
	// UserNamespace is the UUID V5 namespace for user entities.
	UserNamespace = uuid.MustParse("c1d2e3f4-5a6b-5c7d-8e9f-0a1b2c3d4e5f")

	// OrderNamespace is the UUID V5 namespace for order entities.
	OrderNamespace = uuid.MustParse("d2e3f4a5-6b7c-5d8e-9f0a-1b2c3d4e5f6a")

	// OutboxNamespace is the UUID V5 namespace for outbox events.
	OutboxNamespace = uuid.MustParse("b9c6f6d1-8e4a-5f2b-c9d5-9fadab2c4d5f")
)

package reaction

import (
	"context"
	"testing"

	sharedDomain "github.com/architeacher/svc-web-analyzer/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// TestService_HandleUserStatusChanged_IgnoresNonInactiveEvents covers the
// early-return branch of spec.md §4.6: only newStatus=Inactive triggers the
// cancellation sweep, so every other status change must be a no-op that
// never reaches BeginTx (which requires a real *sqlx.DB connection and so
// is not exercised in this suite).
func TestService_HandleUserStatusChanged_IgnoresNonInactiveEvents(t *testing.T) {
	t.Parallel()

	cases := []string{"active", "", "pending", "INACTIVE"}

	for _, status := range cases {
		t.Run(status, func(t *testing.T) {
			t.Parallel()

			svc := NewService(nil, nil)

			event := sharedDomain.UserStatusChangedPayload{
				EventID:   uuid.New(),
				UserID:    uuid.New(),
				NewStatus: status,
			}

			err := svc.HandleUserStatusChanged(context.Background(), event)
			assert.NoError(t, err)
		})
	}
}

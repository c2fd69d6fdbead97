package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/architeacher/svc-web-analyzer/internal/orders/domain"
	"github.com/architeacher/svc-web-analyzer/internal/shared/apperr"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository implements orders.Repository. BeginTx is never exercised:
// it returns a concrete *sqlx.Tx, which cannot be faked without a real
// database connection, so tests only cover the paths that return before a
// transaction begins.
type fakeRepository struct {
	byID    *domain.Order
	byIDErr error
}

func (f *fakeRepository) BeginTx(context.Context) (*sqlx.Tx, error) {
	panic("not exercised: BeginTx requires a real *sqlx.DB connection")
}

func (f *fakeRepository) FindByID(context.Context, uuid.UUID) (*domain.Order, error) {
	return f.byID, f.byIDErr
}

func (f *fakeRepository) CreateInTx(context.Context, *sqlx.Tx, *domain.Order) error {
	panic("not exercised")
}

func (f *fakeRepository) UpdateInTx(context.Context, *sqlx.Tx, *domain.Order) error {
	panic("not exercised")
}

func (f *fakeRepository) FindByUserAndStatusesInTx(context.Context, *sqlx.Tx, uuid.UUID, []domain.Status) ([]*domain.Order, error) {
	panic("not exercised")
}

func (f *fakeRepository) FindExpirableInTx(context.Context, *sqlx.Tx, time.Time, int) ([]*domain.Order, error) {
	panic("not exercised")
}

type fakePeerProbe struct {
	err error
}

func (f *fakePeerProbe) CheckUserActive(context.Context, uuid.UUID) error {
	return f.err
}

func TestService_CreateOrder_ValidationErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   CreateOrderInput
	}{
		{"empty product", CreateOrderInput{UserID: uuid.New(), Product: "", Quantity: 1, Price: 9.99}},
		{"zero quantity", CreateOrderInput{UserID: uuid.New(), Product: "widget", Quantity: 0, Price: 9.99}},
		{"negative price", CreateOrderInput{UserID: uuid.New(), Product: "widget", Quantity: 1, Price: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := NewService(&fakeRepository{}, nil, nil, time.Hour)
			_, err := svc.CreateOrder(context.Background(), tc.in)

			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

// TestService_CreateOrder_PeerProbeRejectionStopsBeforeTx covers the
// synchronous user-active check (spec.md §4.4): a rejected probe must
// short-circuit before BeginTx is ever called.
func TestService_CreateOrder_PeerProbeRejectionStopsBeforeTx(t *testing.T) {
	t.Parallel()

	probeErr := apperr.NewValidationError("user is not active")
	svc := NewService(&fakeRepository{}, nil, &fakePeerProbe{err: probeErr}, time.Hour)

	in := CreateOrderInput{UserID: uuid.New(), Product: "widget", Quantity: 1, Price: 9.99}
	_, err := svc.CreateOrder(context.Background(), in)

	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestService_UpdateOrderStatus_UnknownStatus(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeRepository{}, nil, nil, time.Hour)

	err := svc.UpdateOrderStatus(context.Background(), UpdateOrderStatusInput{OrderID: uuid.New(), Status: "not-a-status"})

	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestService_UpdateOrderStatus_NotFoundPropagates(t *testing.T) {
	t.Parallel()

	notFound := apperr.NewNotFoundError("order not found")
	svc := NewService(&fakeRepository{byIDErr: notFound}, nil, nil, time.Hour)

	err := svc.UpdateOrderStatus(context.Background(), UpdateOrderStatusInput{OrderID: uuid.New(), Status: "ready"})

	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

// TestService_UpdateOrderStatus_NoopWhenUnchanged covers S7: requesting the
// status an order already has must be a no-op, never reaching BeginTx.
func TestService_UpdateOrderStatus_NoopWhenUnchanged(t *testing.T) {
	t.Parallel()

	order := &domain.Order{ID: uuid.New(), Status: domain.StatusReady}
	svc := NewService(&fakeRepository{byID: order}, nil, nil, time.Hour)

	err := svc.UpdateOrderStatus(context.Background(), UpdateOrderStatusInput{OrderID: order.ID, Status: "ready"})

	assert.NoError(t, err)
}

func TestService_UpdateOrderStatus_LookupFailurePropagates(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeRepository{byIDErr: errors.New("connection refused")}, nil, nil, time.Hour)

	err := svc.UpdateOrderStatus(context.Background(), UpdateOrderStatusInput{OrderID: uuid.New(), Status: "ready"})

	require.Error(t, err)
}

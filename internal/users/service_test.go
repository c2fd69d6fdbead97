package users

import (
	"context"
	"errors"
	"testing"

	"github.com/architeacher/svc-web-analyzer/internal/shared/apperr"
	"github.com/architeacher/svc-web-analyzer/internal/users/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository implements users.Repository. BeginTx is never exercised
// here: it returns a concrete *sqlx.Tx, which cannot be faked without a
// real database connection, so tests only cover the paths that return
// before a transaction begins.
type fakeRepository struct {
	byEmail    *domain.User
	byEmailErr error

	byID    *domain.User
	byIDErr error
}

func (f *fakeRepository) BeginTx(context.Context) (*sqlx.Tx, error) {
	panic("not exercised: BeginTx requires a real *sqlx.DB connection")
}

func (f *fakeRepository) FindByEmail(context.Context, string) (*domain.User, error) {
	return f.byEmail, f.byEmailErr
}

func (f *fakeRepository) FindByID(context.Context, uuid.UUID) (*domain.User, error) {
	return f.byID, f.byIDErr
}

func (f *fakeRepository) CreateInTx(context.Context, *sqlx.Tx, *domain.User) error {
	panic("not exercised")
}

func (f *fakeRepository) UpdateStatusInTx(context.Context, *sqlx.Tx, uuid.UUID, domain.Status) error {
	panic("not exercised")
}

func TestService_CreateUser_ValidationErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   CreateUserInput
	}{
		{"empty name", CreateUserInput{Name: "   ", Email: "a@example.com"}},
		{"invalid email", CreateUserInput{Name: "Ada", Email: "not-an-email"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := NewService(&fakeRepository{}, nil)
			_, err := svc.CreateUser(context.Background(), tc.in)

			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

// TestService_CreateUser_DuplicateEmailConflict covers S5: creating a user
// with an email already on file must fail without reaching BeginTx.
func TestService_CreateUser_DuplicateEmailConflict(t *testing.T) {
	t.Parallel()

	existing := &domain.User{ID: uuid.New(), Email: "ada@example.com"}
	svc := NewService(&fakeRepository{byEmail: existing}, nil)

	_, err := svc.CreateUser(context.Background(), CreateUserInput{Name: "Ada", Email: "ada@example.com"})

	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestService_CreateUser_LookupFailurePropagates(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeRepository{byEmailErr: errors.New("connection refused")}, nil)

	_, err := svc.CreateUser(context.Background(), CreateUserInput{Name: "Ada", Email: "ada@example.com"})

	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}

func TestService_ChangeUserStatus_UnknownStatus(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeRepository{}, nil)

	err := svc.ChangeUserStatus(context.Background(), ChangeUserStatusInput{UserID: uuid.New(), Status: "not-a-status"})

	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestService_ChangeUserStatus_NotFoundPropagates(t *testing.T) {
	t.Parallel()

	notFound := apperr.NewNotFoundError("user not found")
	svc := NewService(&fakeRepository{byIDErr: notFound}, nil)

	err := svc.ChangeUserStatus(context.Background(), ChangeUserStatusInput{UserID: uuid.New(), Status: "active"})

	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

// TestService_ChangeUserStatus_NoopWhenUnchanged covers S7: requesting the
// status a user already has must be a no-op, never reaching BeginTx.
func TestService_ChangeUserStatus_NoopWhenUnchanged(t *testing.T) {
	t.Parallel()

	user := &domain.User{ID: uuid.New(), Status: domain.StatusActive}
	svc := NewService(&fakeRepository{byID: user}, nil)

	err := svc.ChangeUserStatus(context.Background(), ChangeUserStatusInput{UserID: user.ID, Status: "active"})

	assert.NoError(t, err)
}

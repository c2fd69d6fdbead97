package users

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/architeacher/svc-web-analyzer/internal/adapters/repos"
	sharedDomain "github.com/architeacher/svc-web-analyzer/internal/domain"
	"github.com/architeacher/svc-web-analyzer/internal/outbox"
	apperr "github.com/architeacher/svc-web-analyzer/internal/shared/apperr"
	"github.com/architeacher/svc-web-analyzer/internal/users/domain"
	"github.com/google/uuid"
)

type (
	CreateUserInput struct {
		Name  string
		Email string
	}

	ChangeUserStatusInput struct {
		UserID uuid.UUID
		Status string
		Reason string
	}

	// Service implements C4's Create-User and Change-User-Status, each
	// inside a single transaction that commits the domain row and the
	// matching outbox row together (spec.md §4.4 atomicity rule).
	Service struct {
		users  Repository
		outbox outbox.Repository
	}
)

func NewService(users Repository, outboxRepo outbox.Repository) *Service {
	return &Service{users: users, outbox: outboxRepo}
}

func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.NewValidationError("name must not be empty")
	}

	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, apperr.NewValidationError("email is not a valid address")
	}

	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, apperr.NewInternalError("failed to check existing email", err)
	}
	if existing != nil {
		return nil, apperr.NewConflictError("email already registered")
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:        uuid.NewSHA1(repos.UserNamespace, []byte(in.Email)),
		Name:      name,
		Email:     in.Email,
		Status:    domain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	txCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), txWatchdogTimeout)
	defer cancel()

	tx, err := s.users.BeginTx(txCtx)
	if err != nil {
		return nil, apperr.NewInternalError("failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.users.CreateInTx(txCtx, tx, user); err != nil {
		return nil, apperr.NewInternalError("failed to create user", err)
	}

	event := &sharedDomain.OutboxEvent{
		AggregateID:   user.ID,
		AggregateType: sharedDomain.AggregateTypeUser,
		EventType:     sharedDomain.EventUserCreated,
		MaxRetries:    defaultMaxRetries,
		Status:        sharedDomain.OutboxStatusPending,
		Payload: map[string]any{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
		CreatedAt: now,
	}

	if err := s.outbox.SaveInTx(txCtx, tx, event); err != nil {
		return nil, apperr.NewInternalError("failed to append outbox event", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperr.NewInternalError("failed to commit transaction", err)
	}

	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *Service) ChangeUserStatus(ctx context.Context, in ChangeUserStatusInput) error {
	newStatus, ok := domain.ParseStatus(in.Status)
	if !ok {
		return apperr.NewValidationError("unknown status: " + in.Status)
	}

	user, err := s.users.FindByID(ctx, in.UserID)
	if err != nil {
		return err
	}

	if user.Status == newStatus {
		return nil
	}

	oldStatus := user.Status
	now := time.Now().UTC()

	txCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), txWatchdogTimeout)
	defer cancel()

	tx, err := s.users.BeginTx(txCtx)
	if err != nil {
		return apperr.NewInternalError("failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.users.UpdateStatusInTx(txCtx, tx, user.ID, newStatus); err != nil {
		return err
	}

	event := &sharedDomain.OutboxEvent{
		AggregateID:   user.ID,
		AggregateType: sharedDomain.AggregateTypeUser,
		EventType:     sharedDomain.EventUserStatusChanged,
		MaxRetries:    defaultMaxRetries,
		Status:        sharedDomain.OutboxStatusPending,
		Payload: sharedDomain.UserStatusChangedPayload{
			EventID:    uuid.NewSHA1(repos.UserNamespace, []byte(user.ID.String()+string(newStatus)+now.String())),
			OccurredAt: now,
			UserID:     user.ID,
			Email:      user.Email,
			OldStatus:  string(oldStatus),
			NewStatus:  string(newStatus),
			Reason:     in.Reason,
		},
		CreatedAt: now,
	}

	if err := s.outbox.SaveInTx(txCtx, tx, event); err != nil {
		return apperr.NewInternalError("failed to append outbox event", err)
	}

	if err := tx.Commit(); err != nil {
		return apperr.NewInternalError("failed to commit transaction", err)
	}

	return nil
}

const defaultMaxRetries = 5

// txWatchdogTimeout bounds the domain-write+outbox transaction independently
// of the inbound request context, so a client disconnect can't abort a
// transaction mid-commit (spec.md §5, §9).
const txWatchdogTimeout = 15 * time.Second


package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/architeacher/svc-web-analyzer/internal/config"
	"github.com/architeacher/svc-web-analyzer/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository is a minimal in-memory stand-in for outbox.Repository.
// SaveInTx is intentionally left unimplemented (nil receiver panic) since
// the drainer never calls it; only the claim/mark methods processOne
// exercises are wired.
type fakeRepository struct {
	Repository

	claimed      *domain.OutboxEvent
	claimErr     error
	markFailedErr, markDeadLetteredErr, markPublishedErr error

	markedFailedID, markedDeadLetteredID, markedPublishedID string
	markedFailedErrDetails                                  string
	markedNextRetryAt                                       time.Time
}

func (f *fakeRepository) ClaimForProcessing(_ context.Context, eventID, _ string, _ time.Duration) (*domain.OutboxEvent, error) {
	if f.claimErr != nil {
		return nil, f.claimErr
	}

	return f.claimed, nil
}

func (f *fakeRepository) MarkFailed(_ context.Context, eventID, errorDetails string, nextRetryAt time.Time) error {
	f.markedFailedID = eventID
	f.markedFailedErrDetails = errorDetails
	f.markedNextRetryAt = nextRetryAt

	return f.markFailedErr
}

func (f *fakeRepository) MarkDeadLettered(_ context.Context, eventID, _ string) error {
	f.markedDeadLetteredID = eventID

	return f.markDeadLetteredErr
}

func (f *fakeRepository) MarkPublished(_ context.Context, eventID string) error {
	f.markedPublishedID = eventID

	return f.markPublishedErr
}

type fakeEventBus struct {
	published    bool
	deadLettered bool
	err          error
}

func (f *fakeEventBus) Publish(_ context.Context, _ *domain.OutboxEvent) (bool, bool, error) {
	return f.published, f.deadLettered, f.err
}

type fixedBackoff struct{ d time.Duration }

func (f fixedBackoff) Backoff(int) time.Duration { return f.d }

func testOutboxCfg() config.OutboxConfig {
	return config.OutboxConfig{BatchSize: 50, LockDuration: 30 * time.Second, MaxRetries: 5}
}

func TestDrainer_ProcessOne_ClaimFailureIsSkipped(t *testing.T) {
	t.Parallel()

	repo := &fakeRepository{claimErr: errors.New("already locked")}
	bus := &fakeEventBus{}
	d := NewDrainer(repo, bus, fixedBackoff{time.Second}, testOutboxCfg(), testLogger())

	event := &domain.OutboxEvent{ID: uuid.New()}
	d.processOne(context.Background(), event)

	assert.Empty(t, repo.markedPublishedID)
	assert.Empty(t, repo.markedFailedID)
	assert.Empty(t, repo.markedDeadLetteredID)
}

func TestDrainer_ProcessOne_PublishFailureMarksFailedWithBackoff(t *testing.T) {
	t.Parallel()

	claimed := &domain.OutboxEvent{ID: uuid.New(), RetryCount: 1}
	repo := &fakeRepository{claimed: claimed}
	bus := &fakeEventBus{err: errors.New("broker unreachable")}
	d := NewDrainer(repo, bus, fixedBackoff{5 * time.Second}, testOutboxCfg(), testLogger())

	before := time.Now()
	d.processOne(context.Background(), claimed)

	require.Equal(t, claimed.ID.String(), repo.markedFailedID)
	assert.Equal(t, "broker unreachable", repo.markedFailedErrDetails)
	assert.True(t, repo.markedNextRetryAt.After(before))
	assert.Empty(t, repo.markedPublishedID)
	assert.Empty(t, repo.markedDeadLetteredID)
}

func TestDrainer_ProcessOne_DeadLetteredMarksDeadLettered(t *testing.T) {
	t.Parallel()

	claimed := &domain.OutboxEvent{ID: uuid.New(), RetryCount: 5, MaxRetries: 5}
	repo := &fakeRepository{claimed: claimed}
	bus := &fakeEventBus{deadLettered: true}
	d := NewDrainer(repo, bus, fixedBackoff{time.Second}, testOutboxCfg(), testLogger())

	d.processOne(context.Background(), claimed)

	assert.Equal(t, claimed.ID.String(), repo.markedDeadLetteredID)
	assert.Empty(t, repo.markedPublishedID)
	assert.Empty(t, repo.markedFailedID)
}

func TestDrainer_ProcessOne_PublishedMarksPublished(t *testing.T) {
	t.Parallel()

	claimed := &domain.OutboxEvent{ID: uuid.New()}
	repo := &fakeRepository{claimed: claimed}
	bus := &fakeEventBus{published: true}
	d := NewDrainer(repo, bus, fixedBackoff{time.Second}, testOutboxCfg(), testLogger())

	d.processOne(context.Background(), claimed)

	assert.Equal(t, claimed.ID.String(), repo.markedPublishedID)
	assert.Empty(t, repo.markedFailedID)
	assert.Empty(t, repo.markedDeadLetteredID)
}

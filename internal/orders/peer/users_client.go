// Package peer implements the synchronous Orders→Users validation probe
// used by Create-Order (spec.md §4.4), wrapping a resty HTTP client in a
// gobreaker circuit breaker the same way the teacher wraps its own
// outbound HTTP calls (internal/adapters/web_fetcher.go).
package peer

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	apperr "github.com/architeacher/svc-web-analyzer/internal/shared/apperr"
	"github.com/architeacher/svc-web-analyzer/internal/config"
	"github.com/architeacher/svc-web-analyzer/internal/infrastructure"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
)

type userStatusResponse struct {
	Status string `json:"status"`
}

// UsersClient implements orders.PeerUserProbe.
type UsersClient struct {
	client  *resty.Client
	breaker *gobreaker.CircuitBreaker
	logger  infrastructure.Logger
}

func NewUsersClient(cfg config.PeerServiceConfig, cbCfg config.CircuitBreakerConfig, logger infrastructure.Logger) *UsersClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(cfg.RetryWaitTime)

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "users-service-probe",
		MaxRequests: cbCfg.MaxRequests,
		Interval:    cbCfg.Interval,
		Timeout:     cbCfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info().Str("name", name).Str("from", from.String()).Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})

	return &UsersClient{client: client, breaker: breaker, logger: logger}
}

// CheckUserActive implements the Create-Order owner check (spec.md §4.4):
// 200+Active → nil; 404 → BadRequest/InvalidUser; 5xx/network → Transient
// (mapped to 503 at the HTTP boundary); context cancellation → Cancelled.
func (c *UsersClient) CheckUserActive(ctx context.Context, userID uuid.UUID) error {
	if ctx.Err() != nil {
		return apperr.NewCancelledError(ctx.Err())
	}

	result, err := c.breaker.Execute(func() (any, error) {
		resp, err := c.client.R().
			SetContext(ctx).
			SetResult(&userStatusResponse{}).
			Get("/api/users/" + userID.String())
		if err != nil {
			return nil, err
		}

		return resp, nil
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return apperr.NewTransientError("users service circuit breaker open", err)
		}
		if errors.Is(err, context.Canceled) {
			return apperr.NewCancelledError(err)
		}

		return apperr.NewTransientError("users service unreachable", err)
	}

	resp := result.(*resty.Response)

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return apperr.NewValidationError("user does not exist")
	case resp.StatusCode() >= http.StatusInternalServerError:
		return apperr.NewTransientError(fmt.Sprintf("users service returned %d", resp.StatusCode()), nil)
	case resp.StatusCode() != http.StatusOK:
		return apperr.NewTransientError(fmt.Sprintf("users service returned unexpected status %d", resp.StatusCode()), nil)
	}

	body := resp.Result().(*userStatusResponse)
	if body.Status != "active" {
		return apperr.NewValidationError("user is not active")
	}

	return nil
}

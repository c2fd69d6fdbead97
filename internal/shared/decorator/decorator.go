// Package decorator provides the generic command/query handler shape used by
// every usecases package, plus the logging/metrics/tracing decorators that
// wrap a concrete handler without it knowing about any of the three.
package decorator

import (
	"context"
	"time"

	"github.com/architeacher/svc-web-analyzer/internal/infrastructure"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	CommandHandler[C, R any] interface {
		Handle(ctx context.Context, cmd C) (R, error)
	}

	QueryHandler[Q, R any] interface {
		Execute(ctx context.Context, query Q) (R, error)
	}

	// MetricsClient is the minimal counter sink the decorators report
	// through. Concrete implementations live in internal/infrastructure.
	MetricsClient interface {
		Inc(metricName string, value int)
	}
)

// ApplyCommandDecorators wraps a CommandHandler with logging, tracing, and
// metrics, innermost-first: metrics sees the handler's own result, tracing
// wraps metrics, logging wraps tracing.
func ApplyCommandDecorators[C, R any](
	handler CommandHandler[C, R],
	logger infrastructure.Logger,
	tracerProvider otelTrace.TracerProvider,
	metricsClient MetricsClient,
) CommandHandler[C, R] {
	return commandLoggingDecorator[C, R]{
		base: commandTracingDecorator[C, R]{
			base:   commandMetricsDecorator[C, R]{base: handler, client: metricsClient},
			tracer: tracerProvider.Tracer("usecases"),
		},
		logger: logger,
	}
}

// ApplyQueryDecorators is the query-side equivalent of ApplyCommandDecorators.
func ApplyQueryDecorators[Q, R any](
	handler QueryHandler[Q, R],
	logger infrastructure.Logger,
	tracerProvider otelTrace.TracerProvider,
	metricsClient MetricsClient,
) QueryHandler[Q, R] {
	return queryLoggingDecorator[Q, R]{
		base: queryTracingDecorator[Q, R]{
			base:   queryMetricsDecorator[Q, R]{base: handler, client: metricsClient},
			tracer: tracerProvider.Tracer("usecases"),
		},
		logger: logger,
	}
}

type commandLoggingDecorator[C, R any] struct {
	base   CommandHandler[C, R]
	logger infrastructure.Logger
}

func (d commandLoggingDecorator[C, R]) Handle(ctx context.Context, cmd C) (result R, err error) {
	handlerName := generateActionName(cmd)

	start := time.Now()
	defer func() {
		event := d.logger.Debug()
		if err != nil {
			event = d.logger.Error().Err(err)
		}
		event.Str("command", handlerName).Str("took", time.Since(start).String()).Msg("command executed")
	}()

	return d.base.Handle(ctx, cmd)
}

type queryLoggingDecorator[Q, R any] struct {
	base   QueryHandler[Q, R]
	logger infrastructure.Logger
}

func (d queryLoggingDecorator[Q, R]) Execute(ctx context.Context, query Q) (result R, err error) {
	handlerName := generateActionName(query)

	start := time.Now()
	defer func() {
		event := d.logger.Debug()
		if err != nil {
			event = d.logger.Error().Err(err)
		}
		event.Str("query", handlerName).Str("took", time.Since(start).String()).Msg("query executed")
	}()

	return d.base.Execute(ctx, query)
}

type commandTracingDecorator[C, R any] struct {
	base   CommandHandler[C, R]
	tracer otelTrace.Tracer
}

func (d commandTracingDecorator[C, R]) Handle(ctx context.Context, cmd C) (R, error) {
	ctx, span := d.tracer.Start(ctx, generateActionName(cmd))
	defer span.End()

	result, err := d.base.Handle(ctx, cmd)
	if err != nil {
		span.RecordError(err)
	}

	return result, err
}

type queryTracingDecorator[Q, R any] struct {
	base   QueryHandler[Q, R]
	tracer otelTrace.Tracer
}

func (d queryTracingDecorator[Q, R]) Execute(ctx context.Context, query Q) (R, error) {
	ctx, span := d.tracer.Start(ctx, generateActionName(query))
	defer span.End()

	result, err := d.base.Execute(ctx, query)
	if err != nil {
		span.RecordError(err)
	}

	return result, err
}

type commandMetricsDecorator[C, R any] struct {
	base   CommandHandler[C, R]
	client MetricsClient
}

func (d commandMetricsDecorator[C, R]) Handle(ctx context.Context, cmd C) (R, error) {
	result, err := d.base.Handle(ctx, cmd)

	name := generateActionName(cmd)
	if err != nil {
		d.client.Inc(name+".failure", 1)
	} else {
		d.client.Inc(name+".success", 1)
	}

	return result, err
}

type queryMetricsDecorator[Q, R any] struct {
	base   QueryHandler[Q, R]
	client MetricsClient
}

func (d queryMetricsDecorator[Q, R]) Execute(ctx context.Context, query Q) (R, error) {
	result, err := d.base.Execute(ctx, query)

	name := generateActionName(query)
	if err != nil {
		d.client.Inc(name+".failure", 1)
	} else {
		d.client.Inc(name+".success", 1)
	}

	return result, err
}

func generateActionName(handler any) string {
	return typeName(handler)
}

func typeName(v any) string {
	t := derefType(v)
	return t
}

package infrastructure

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/architeacher/svc-web-analyzer/internal/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const metricsNamespace = "outbox_platform"

type (
	// Metrics is the counter/timer surface both services report through.
	Metrics interface {
		RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration)
		RecordOutboxEvent(ctx context.Context, success bool, eventType string)
		RecordConsumedEvent(ctx context.Context, success bool, eventType string)
		RecordScanCycle(ctx context.Context, transitioned int)
		Handler() http.Handler
		Shutdown(ctx context.Context) error
	}

	OTELMetrics struct {
		meterProvider *sdkmetric.MeterProvider
		meter         metric.Meter
		logger        Logger

		httpRequestTotal    metric.Int64Counter
		httpRequestDuration metric.Float64Histogram
		outboxProcessedTotal metric.Int64Counter
		outboxErrorTotal     metric.Int64Counter
		consumedTotal        metric.Int64Counter
		consumedErrorTotal   metric.Int64Counter
		scanTransitionsTotal metric.Int64Counter
	}
)

func NewMetrics(ctx context.Context, cfg config.ServiceConfig, logger Logger) (Metrics, error) {
	if !cfg.Telemetry.Metrics.Enabled {
		logger.Info().Msg("metrics disabled, using NoOp implementation")

		return &NoOpMetrics{}, nil
	}

	return NewOTELMetrics(ctx, cfg, logger)
}

func NewOTELMetrics(ctx context.Context, cfg config.ServiceConfig, logger Logger) (*OTELMetrics, error) {
	endpoint := fmt.Sprintf("%s:%s", cfg.Telemetry.OtelGRPCHost, cfg.Telemetry.OtelGRPCPort)

	conn, err := grpc.NewClient(
		endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection to OTEL collector: %w", err)
	}

	exporter, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metric exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.AppConfig.ServiceName),
			semconv.ServiceVersionKey.String(cfg.AppConfig.ServiceVersion),
			semconv.ServiceInstanceIDKey.String(cfg.AppConfig.CommitSHA),
			semconv.DeploymentEnvironmentKey.String(cfg.AppConfig.Env),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(
		metricsNamespace,
		metric.WithInstrumentationVersion(cfg.AppConfig.ServiceVersion),
	)

	provider := &OTELMetrics{
		meterProvider: meterProvider,
		meter:         meter,
		logger:        logger,
	}

	if err := provider.initializeMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	logger.Info().Str("otel_endpoint", endpoint).Msg("OTEL metrics provider initialized successfully")

	return provider, nil
}

func (om *OTELMetrics) initializeMetrics() error {
	var err error

	if om.httpRequestTotal, err = om.meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	); err != nil {
		return fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	if om.httpRequestDuration, err = om.meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	if om.outboxProcessedTotal, err = om.meter.Int64Counter(
		"outbox_published_total",
		metric.WithDescription("Total number of outbox rows successfully published"),
		metric.WithUnit("{event}"),
	); err != nil {
		return fmt.Errorf("failed to create outbox_published_total counter: %w", err)
	}

	if om.outboxErrorTotal, err = om.meter.Int64Counter(
		"outbox_publish_errors_total",
		metric.WithDescription("Total number of outbox publish failures (retry or dead-letter)"),
		metric.WithUnit("{error}"),
	); err != nil {
		return fmt.Errorf("failed to create outbox_publish_errors_total counter: %w", err)
	}

	if om.consumedTotal, err = om.meter.Int64Counter(
		"events_consumed_total",
		metric.WithDescription("Total number of bus records handled successfully by the cross-service consumer"),
		metric.WithUnit("{event}"),
	); err != nil {
		return fmt.Errorf("failed to create events_consumed_total counter: %w", err)
	}

	if om.consumedErrorTotal, err = om.meter.Int64Counter(
		"events_consume_errors_total",
		metric.WithDescription("Total number of bus records whose handler failed"),
		metric.WithUnit("{error}"),
	); err != nil {
		return fmt.Errorf("failed to create events_consume_errors_total counter: %w", err)
	}

	if om.scanTransitionsTotal, err = om.meter.Int64Counter(
		"expiry_scan_transitions_total",
		metric.WithDescription("Total number of orders transitioned to Expired by the expiry scanner"),
		metric.WithUnit("{order}"),
	); err != nil {
		return fmt.Errorf("failed to create expiry_scan_transitions_total counter: %w", err)
	}

	return nil
}

func (om *OTELMetrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	attrs := metric.WithAttributes(HTTPMethodAttr(method), HTTPPathAttr(path), HTTPStatusCodeAttr(statusCode))

	om.httpRequestTotal.Add(ctx, 1, attrs)
	om.httpRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

func (om *OTELMetrics) RecordOutboxEvent(ctx context.Context, success bool, eventType string) {
	if success {
		om.outboxProcessedTotal.Add(ctx, 1, metric.WithAttributes(EventTypeAttr(eventType)))
		return
	}

	om.outboxErrorTotal.Add(ctx, 1, metric.WithAttributes(EventTypeAttr(eventType)))
}

func (om *OTELMetrics) RecordConsumedEvent(ctx context.Context, success bool, eventType string) {
	if success {
		om.consumedTotal.Add(ctx, 1, metric.WithAttributes(EventTypeAttr(eventType)))
		return
	}

	om.consumedErrorTotal.Add(ctx, 1, metric.WithAttributes(EventTypeAttr(eventType)))
}

func (om *OTELMetrics) RecordScanCycle(ctx context.Context, transitioned int) {
	om.scanTransitionsTotal.Add(ctx, int64(transitioned))
}

func (om *OTELMetrics) Handler() http.Handler {
	return promhttp.Handler()
}

func (om *OTELMetrics) Shutdown(ctx context.Context) error {
	if err := om.meterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown meter provider: %w", err)
	}

	return nil
}

package transcription

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/tmm22/speechkit/logger"
)

const instrumentationName = "github.com/tmm22/speechkit/transcription"

// Middleware transforms a Provider by wrapping it with cross-cutting
// behavior (logging, tracing, metrics).
type Middleware func(Provider) Provider

// Chain composes middlewares; the first is outermost.
//
// Chain(a, b)(p) is equivalent to a(b(p)).
func Chain(middlewares ...Middleware) Middleware {
	return func(inner Provider) Provider {
		for i := len(middlewares) - 1; i >= 0; i-- {
			inner = middlewares[i](inner)
		}
		return inner
	}
}

// WithLogging returns a Middleware that logs each Transcribe call with
// provider, model, duration, and outcome.
func WithLogging(log *logger.Logger) Middleware {
	return func(inner Provider) Provider {
		return &loggingProvider{inner: inner, log: log}
	}
}

type loggingProvider struct {
	inner Provider
	log   *logger.Logger
}

func (l *loggingProvider) Name() string                         { return l.inner.Name() }
func (l *loggingProvider) IsAvailable(ctx context.Context) bool { return l.inner.IsAvailable(ctx) }

func (l *loggingProvider) Transcribe(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Transcribe(ctx, req)

	fields := logger.Fields(
		logger.FieldProvider, l.inner.Name(),
		logger.FieldModel, req.Model.Name,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	)
	if err != nil {
		fields[logger.FieldError] = err.Error()
		l.log.Error("transcribe failed", fields)
	} else {
		l.log.Debug("transcribe ok", fields)
	}
	return resp, err
}

// WithTracing returns a Middleware that creates an OpenTelemetry span
// around each Transcribe call. The span name is
// "transcription.<provider>".
func WithTracing() Middleware {
	tracer := otel.Tracer(instrumentationName)
	return func(inner Provider) Provider {
		return &tracingProvider{inner: inner, tracer: tracer}
	}
}

type tracingProvider struct {
	inner  Provider
	tracer trace.Tracer
}

func (t *tracingProvider) Name() string                         { return t.inner.Name() }
func (t *tracingProvider) IsAvailable(ctx context.Context) bool { return t.inner.IsAvailable(ctx) }

func (t *tracingProvider) Transcribe(ctx context.Context, req Request) (*Response, error) {
	ctx, span := t.tracer.Start(ctx, "transcription."+t.inner.Name(),
		trace.WithAttributes(
			attribute.String("transcription.provider", t.inner.Name()),
			attribute.String("transcription.model", req.Model.Name),
		))
	defer span.End()

	resp, err := t.inner.Transcribe(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return resp, err
}

// WithMetrics returns a Middleware that records call counts and duration
// per provider and outcome on the global meter provider.
func WithMetrics() Middleware {
	meter := otel.Meter(instrumentationName)
	calls, _ := meter.Int64Counter("transcription.calls",
		metric.WithDescription("Transcription calls by provider and status"))
	duration, _ := meter.Float64Histogram("transcription.duration",
		metric.WithDescription("Transcription call duration"),
		metric.WithUnit("s"))

	return func(inner Provider) Provider {
		return &metricsProvider{inner: inner, calls: calls, duration: duration}
	}
}

type metricsProvider struct {
	inner    Provider
	calls    metric.Int64Counter
	duration metric.Float64Histogram
}

func (m *metricsProvider) Name() string                         { return m.inner.Name() }
func (m *metricsProvider) IsAvailable(ctx context.Context) bool { return m.inner.IsAvailable(ctx) }

func (m *metricsProvider) Transcribe(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := m.inner.Transcribe(ctx, req)

	status := "ok"
	if err != nil {
		status = "error"
	}
	attrs := metric.WithAttributes(
		attribute.String("provider", m.inner.Name()),
		attribute.String("status", status),
	)
	m.calls.Add(ctx, 1, attrs)
	m.duration.Record(ctx, time.Since(start).Seconds(), attrs)

	return resp, err
}

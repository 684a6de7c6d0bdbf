// Package tracing times operations and reports them through [log/slog].
package tracing

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"time"
)

// Tracer starts spans.
type Tracer interface {
	StartSpan(ctx context.Context, operationName string) Span
}

// Span is a single timed operation.
type Span interface {
	SetBaggageItem(key string, value any)
	Finish()
}

var (
	_ Tracer = LoggingTracer{}
	_ Span   = (*loggingSpan)(nil)
)

// LoggingTracer writes a debug record for every finished span.
type LoggingTracer struct {
	logger *slog.Logger
}

// NewLoggingTracer creates a [LoggingTracer]. A nil logger uses
// [slog.Default] when spans finish.
func NewLoggingTracer(logger *slog.Logger) LoggingTracer {
	return LoggingTracer{
		logger: logger,
	}
}

//nolint:ireturn
func (l LoggingTracer) StartSpan(ctx context.Context, operationName string) Span {
	return &loggingSpan{
		ctx:           ctx,
		logger:        l.logger,
		operationName: operationName,
		baggage:       make(map[string]any),
		start:         time.Now(),
	}
}

type loggingSpan struct {
	ctx           context.Context //nolint:containedctx // Used for the final log record.
	start         time.Time
	logger        *slog.Logger
	baggage       map[string]any
	operationName string
}

func (s *loggingSpan) Finish() {
	logger := s.logger
	if logger == nil {
		logger = slog.Default()
	}

	attrs := make([]any, 0, len(s.baggage)*2+4)
	for _, k := range slices.Sorted(maps.Keys(s.baggage)) {
		attrs = append(attrs, k, s.baggage[k])
	}

	attrs = append(attrs, "operation_name", s.operationName, "time_ms", time.Since(s.start).Seconds()*1e3)
	logger.Log(s.ctx, slog.LevelDebug, "trace", attrs...)
}

func (s *loggingSpan) SetBaggageItem(key string, value any) {
	s.baggage[key] = value
}

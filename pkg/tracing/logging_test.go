package tracing_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/macropower/assetref/pkg/tracing"
)

func TestLoggingTracer(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	span := tracing.NewLoggingTracer(logger).StartSpan(context.Background(), "check")
	span.SetBaggageItem("references", 3)
	span.SetBaggageItem("failed", 1)
	span.Finish()

	out := buf.String()
	assert.Contains(t, out, "msg=trace")
	assert.Contains(t, out, "failed=1 references=3 operation_name=check")
	assert.Contains(t, out, "time_ms=")
}

func TestLoggingTracerRespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	tracing.NewLoggingTracer(logger).StartSpan(context.Background(), "check").Finish()

	assert.Empty(t, buf.String())
}

package log_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/assetref/pkg/log"
)

func TestCreateHandlerWithStrings(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err    error
		level  string
		format string
		want   string
	}{
		"text": {
			level:  "info",
			format: "text",
			want:   "resolved",
		},
		"json": {
			level:  "debug",
			format: "json",
			want:   `"msg":"resolved"`,
		},
		"logfmt": {
			level:  "warning",
			format: "logfmt",
		},
		"default format": {
			level:  "error",
			format: "",
		},
		"unknown level": {
			level:  "loud",
			format: "text",
			err:    log.ErrUnknownLevel,
		},
		"unknown format": {
			level:  "info",
			format: "xml",
			err:    log.ErrUnknownFormat,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}

			h, err := log.CreateHandlerWithStrings(buf, tc.level, tc.format)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				require.ErrorIs(t, err, log.ErrInvalidArgument)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, h)

			slog.New(h).Info("resolved", "path", "Assets/a.uss")

			if tc.want != "" {
				assert.Contains(t, buf.String(), tc.want)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}

	h, err := log.CreateHandlerWithStrings(buf, "warn", "text")
	require.NoError(t, err)

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelWarn))

	slog.New(h).Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestEnvOrDefault(t *testing.T) {
	t.Setenv(log.EnvLogLevel, "debug")

	assert.Equal(t, "debug", log.EnvOrDefault(log.EnvLogLevel, "warn"))
	assert.Equal(t, "text", log.EnvOrDefault("ASSETREF_TEST_UNSET_VARIABLE", "text"))
}

package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/assetref/internal/cli"
	"github.com/macropower/assetref/pkg/log"
)

// newProject creates a project directory holding the given files.
func newProject(t *testing.T, files ...string) string {
	t.Helper()

	root := t.TempDir()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}

	return root
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCmd("test_assetref", "", "")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func TestVersionCmd(t *testing.T) {
	stdout, stderr, err := execute(t, "version")
	require.NoError(t, err)
	assert.Regexp(t, `\d+\.\d+\.\d+`, stdout)
	assert.Empty(t, stderr)
}

func TestRootCmdArgs(t *testing.T) {
	tcs := map[string]struct {
		wantErr   error
		logLevel  string
		logFormat string
	}{
		"default config": {
			logLevel:  "warn",
			logFormat: "text",
		},
		"json format": {
			logLevel:  "info",
			logFormat: "json",
		},
		"logfmt format": {
			logLevel:  "debug",
			logFormat: "logfmt",
		},
		"invalid log level": {
			logLevel:  "invalid",
			logFormat: "text",
			wantErr:   cli.ErrLogHandlerFailed,
		},
		"invalid log format": {
			logLevel:  "warn",
			logFormat: "invalid",
			wantErr:   cli.ErrLogHandlerFailed,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			stdout, _, err := execute(t,
				"--log_level", tc.logLevel,
				"--log_format", tc.logFormat,
				"version",
			)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Regexp(t, `\d+\.\d+\.\d+`, stdout)
		})
	}
}

func TestInvalidArgumentSharedWithLog(t *testing.T) {
	require.ErrorIs(t, cli.ErrInvalidArgument, log.ErrInvalidArgument)

	_, _, err := execute(t, "--log_level", "loud", "version")
	require.ErrorIs(t, err, cli.ErrLogHandlerFailed)
	require.ErrorIs(t, err, log.ErrUnknownLevel)
	require.ErrorIs(t, err, cli.ErrInvalidArgument)

	root := newProject(t, "Assets/Foo/main.uss")
	_, _, err = execute(t, "--root", root, "check", "--format", "xml", filepath.Join(root, "refs.yaml"))
	require.ErrorIs(t, err, log.ErrInvalidArgument)
}

func TestSchemaCmd(t *testing.T) {
	stdout, _, err := execute(t, "schema")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"references"`)
	assert.Contains(t, stdout, `"title": "assetref manifest"`)
}

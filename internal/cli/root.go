package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/macropower/assetref/internal/version"
	"github.com/macropower/assetref/pkg/assetref"
	"github.com/macropower/assetref/pkg/log"
	"github.com/macropower/assetref/pkg/paths"
)

var (
	ErrInvalidArgument  = log.ErrInvalidArgument
	ErrLogHandlerFailed = errors.New("log handler failed")
)

func NewRootCmd(name, shortDesc, longDesc string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           name,
		Short:         shortDesc,
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.String(),
	}

	cmd.PersistentFlags().String("log_level", log.EnvOrDefault(log.EnvLogLevel, "warn"),
		"Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log_format", log.EnvOrDefault(log.EnvLogFormat, "text"),
		"Set the log format (text, logfmt, json)")
	cmd.PersistentFlags().String("root", "",
		"Project root; defaults to the closest directory with an Assets directory")

	if err := cmd.MarkPersistentFlagDirname("root"); err != nil {
		panic(err)
	}

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		flags := cc.Flags()

		var merr error

		logLevel, err := flags.GetString("log_level")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		logFormat, err := flags.GetString("log_format")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		if merr != nil {
			return fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
		}

		h, err := log.CreateHandlerWithStrings(cc.ErrOrStderr(), logLevel, logFormat)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLogHandlerFailed, err)
		}

		slog.SetDefault(slog.New(h))

		return nil
	}

	cmd.AddCommand(NewResolveCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewSchemaCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// NewVersionCmd returns the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version of the assetref CLI",
		Run: func(cc *cobra.Command, _ []string) {
			fmt.Fprintln(cc.OutOrStdout(), version.String())
		},
	}
}

// projectRoot returns the --root flag if set. Otherwise it looks for a
// project root, then a repository root, above the working directory, and
// finally uses the working directory itself.
func projectRoot(cc *cobra.Command) (string, error) {
	root, err := cc.Flags().GetString("root")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	if root != "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return "", fmt.Errorf("get absolute path: %w", err)
		}

		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	if found, err := paths.FindProjectRoot(wd); err == nil {
		slog.Debug("found project root", slog.String("path", found))

		return found, nil
	}

	if found, err := paths.FindRepoRoot(wd); err == nil {
		slog.Debug("no project root, using repository root", slog.String("path", found))

		return found, nil
	}

	slog.Debug("no project root, using working directory", slog.String("path", wd))

	return wd, nil
}

// newResolver creates a resolver rooted at root.
func newResolver(root string, confine bool) (*assetref.Resolver, error) {
	var (
		exister assetref.Exister
		err     error
	)

	if confine {
		exister, err = assetref.NewConfinedExister(root)
	} else {
		exister, err = assetref.NewProjectExister(root)
	}

	if err != nil {
		return nil, fmt.Errorf("create exister: %w", err)
	}

	return assetref.New(assetref.WithExister(exister)), nil
}

// projectRelative turns an absolute OS path below root into a
// project-relative, slash-separated path. Other paths are returned as is.
func projectRelative(root, p string) string {
	if !filepath.IsAbs(p) {
		return p
	}

	rel, err := filepath.Rel(root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return p
	}

	return filepath.ToSlash(rel)
}

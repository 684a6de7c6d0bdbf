package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/macropower/assetref/pkg/refcheck"
	"github.com/macropower/assetref/pkg/tracing"
)

const (
	checkDesc = `Check every reference listed in a manifest.

The manifest is YAML or JSON. Entries without a base use the top-level base:

  base: Assets/UI/main.uss
  references:
    - ref: theme.uss
    - ref: ../Shared/common.uss
    - base: Assets/UI/dialog.uss
      ref: /Assets/Fonts/body.ttf

Use "-" to read the manifest from stdin. Run "assetref schema" for the
manifest JSON schema.
`
	checkExample = `  # Check a manifest and print a text report
  assetref check refs.yaml

  # Write a JSON report
  assetref check --format json refs.yaml
`
)

var ErrCheckFailed = errors.New("check failed")

// NewCheckCmd returns the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "check [flags] <manifest>",
		Short:   "Check references listed in a manifest",
		Long:    checkDesc,
		Example: checkExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			var merr error

			flags := cc.Flags()

			format, err := flags.GetString("format")
			if err != nil {
				merr = multierror.Append(merr, err)
			}

			concurrency, err := flags.GetInt("concurrency")
			if err != nil {
				merr = multierror.Append(merr, err)
			}

			confine, err := flags.GetBool("confine")
			if err != nil {
				merr = multierror.Append(merr, err)
			}

			noColor, err := flags.GetBool("no_color")
			if err != nil {
				merr = multierror.Append(merr, err)
			}

			if merr != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
			}

			var opts []refcheck.ReporterOption
			if noColor {
				opts = append(opts, refcheck.WithColor(false))
			}

			reporter, err := refcheck.NewReporter(cc.OutOrStdout(), format, opts...)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}

			m, err := readManifest(cc, args[0])
			if err != nil {
				return err
			}

			root, err := projectRoot(cc)
			if err != nil {
				return err
			}

			r, err := newResolver(root, confine)
			if err != nil {
				return err
			}

			refs := m.Entries()
			for i := range refs {
				refs[i].Base = projectRelative(root, refs[i].Base)
			}

			slog.Debug("checking references",
				slog.String("root", root),
				slog.Int("count", len(refs)),
			)

			outcomes, err := refcheck.Check(cc.Context(), r, refs,
				refcheck.WithConcurrency(concurrency),
				refcheck.WithTracer(tracing.NewLoggingTracer(slog.Default())),
			)
			if err != nil {
				return err
			}

			if err := reporter.Write(outcomes); err != nil {
				return err
			}

			s := refcheck.Summarize(outcomes)
			if s.Failed > 0 {
				return fmt.Errorf("%w: %d of %d references are invalid", ErrCheckFailed, s.Failed, s.Total)
			}

			return nil
		},
	}

	cmd.Flags().StringP("format", "o", refcheck.FormatText, "Report format (text, json, yaml)")
	cmd.Flags().IntP("concurrency", "c", 0, "Maximum references resolved at once (0 uses GOMAXPROCS)")
	cmd.Flags().Bool("confine", false, "Reject files whose symlinks resolve outside the project root")
	cmd.Flags().Bool("no_color", false, "Disable colored text output")

	return cmd
}

func readManifest(cc *cobra.Command, name string) (*refcheck.Manifest, error) {
	var r io.Reader

	if name == "-" {
		r = cc.InOrStdin()
	} else {
		f, err := os.Open(name) //nolint:gosec // Manifest path comes from the command line.
		if err != nil {
			return nil, fmt.Errorf("open manifest: %w", err)
		}
		defer f.Close() //nolint:errcheck // Read only.

		r = f
	}

	m, err := refcheck.LoadManifest(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return m, nil
}

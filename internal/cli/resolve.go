package cli

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/macropower/assetref/pkg/assetref"
	"github.com/macropower/assetref/pkg/refcheck"
)

const (
	resolveDesc = `Resolve asset references to project-relative paths.

Each reference is resolved relative to the file given with --base. References
starting with "/" are relative to the project root, and absolute references
must use the project scheme (project:///Assets/...). One resolved path is
printed per reference.
`
	resolveExample = `  # Resolve a sibling style sheet
  assetref resolve --base Assets/UI/main.uss theme.uss

  # Resolve several references at once
  assetref resolve --base Assets/UI/main.uss ../Shared/common.uss /Assets/Fonts/body.ttf
`
)

var ErrResolveFailed = errors.New("resolve failed")

// NewResolveCmd returns the resolve command.
func NewResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resolve [flags] <ref>...",
		Short:   "Resolve asset references",
		Long:    resolveDesc,
		Example: resolveExample,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			var merr error

			flags := cc.Flags()

			base, err := flags.GetString("base")
			if err != nil {
				merr = multierror.Append(merr, err)
			}

			confine, err := flags.GetBool("confine")
			if err != nil {
				merr = multierror.Append(merr, err)
			}

			if merr != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
			}

			root, err := projectRoot(cc)
			if err != nil {
				return err
			}

			r, err := newResolver(root, confine)
			if err != nil {
				return err
			}

			base = projectRelative(root, base)

			outcomes := make([]assetref.Outcome, 0, len(args))
			for _, raw := range args {
				o := r.Validate(base, raw)
				if o.OK() {
					fmt.Fprintln(cc.OutOrStdout(), o.Path)
				}

				outcomes = append(outcomes, o)
			}

			if err := refcheck.Failures(outcomes); err != nil {
				return fmt.Errorf("%w: %w", ErrResolveFailed, err)
			}

			return nil
		},
	}

	cmd.Flags().StringP("base", "b", "", "Path of the file containing the references")
	cmd.Flags().Bool("confine", false, "Reject files whose symlinks resolve outside the project root")

	if err := cmd.MarkFlagFilename("base"); err != nil {
		panic(err)
	}

	return cmd
}

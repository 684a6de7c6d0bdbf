package cli

import (
	"github.com/spf13/cobra"

	"github.com/macropower/assetref/pkg/refcheck"
)

// NewSchemaCmd returns the schema command.
func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of check manifests",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			return refcheck.WriteSchema(cc.OutOrStdout())
		},
	}
}

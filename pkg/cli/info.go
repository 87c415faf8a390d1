package cli

import (
	"github.com/NeuralTrust/perspective/pkg/infra/perspective"
	"github.com/NeuralTrust/perspective/pkg/version"
	"github.com/spf13/cobra"
)

func newAttributesCommand(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "attributes",
		Short: "List the supported attribute tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderAttributes(cmd.OutOrStdout(), global.format, perspective.AllAttributeTypes())
		},
	}
}

func newVersionCommand(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.GetInfo()
			if global.format == FormatJSON {
				return writeJSON(cmd.OutOrStdout(), info)
			}
			table := newTable(cmd.OutOrStdout(), []string{"Field", "Value"})
			table.AppendBulk([][]string{
				{"app", info.AppName},
				{"version", info.Version},
				{"build date", info.BuildDate},
				{"go", info.GoVersion},
				{"platform", info.Platform},
			})
			table.Render()
			return nil
		},
	}
}

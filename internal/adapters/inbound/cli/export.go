package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/flooring/internal/adapters/outbound/tui"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every order to the export file",
		Long:  "Write every order, sorted by date and number, to the configured export file (Backup/DataExport.txt by default).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			result, err := a.orders.ExportAll()
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderExport(result))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

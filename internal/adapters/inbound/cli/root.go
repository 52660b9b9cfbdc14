package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "flooring",
		Short:         "Manage flooring orders stored as flat files",
		Long:          "Flooring keeps customer orders, the product catalog and per-state tax rates in plain delimited text files, one order file per order date.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.path, "path", ".", "Data directory holding .flooring.yaml and the data files")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug details to stderr")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newOrdersCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	cmd.AddCommand(newProductsCmd(opts))
	cmd.AddCommand(newTaxesCmd(opts))
	cmd.AddCommand(newInitCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

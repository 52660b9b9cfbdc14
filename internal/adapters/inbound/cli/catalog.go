package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/flooring/internal/adapters/outbound/tui"
	"github.com/abdidvp/flooring/internal/domain"
)

func newProductsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Maintain the product catalog",
	}

	var jsonOutput bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			products := a.catalog.ListProducts()
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), products)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderProducts(products))
			return nil
		},
	}
	list.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	cmd.AddCommand(list)
	cmd.AddCommand(newProductWriteCmd(opts, "add", "Add a product"))
	cmd.AddCommand(newProductWriteCmd(opts, "edit", "Change a product's costs"))
	cmd.AddCommand(&cobra.Command{
		Use:   "remove <product-type>",
		Short: "Remove a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if err := a.catalog.RemoveProduct(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed product %s\n", args[0])
			return nil
		},
	})
	return cmd
}

// newProductWriteCmd builds "products add" and "products edit", which take
// the same arguments.
func newProductWriteCmd(opts *rootOptions, verb, short string) *cobra.Command {
	var cost, labor string

	cmd := &cobra.Command{
		Use:   verb + " <product-type>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := domain.ParseDecimal("cost per square foot", cost)
			if err != nil {
				return err
			}
			l, err := domain.ParseDecimal("labor cost per square foot", labor)
			if err != nil {
				return err
			}
			a, err := openApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			p := domain.Product{ProductType: args[0], CostPerSquareFoot: c, LaborCostPerSquareFoot: l}
			if verb == "add" {
				err = a.catalog.AddProduct(p)
			} else {
				err = a.catalog.EditProduct(p)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderProducts(a.catalog.ListProducts()))
			return nil
		},
	}

	cmd.Flags().StringVar(&cost, "cost", "", "Material cost per square foot")
	cmd.Flags().StringVar(&labor, "labor", "", "Labor cost per square foot")
	_ = cmd.MarkFlagRequired("cost")
	_ = cmd.MarkFlagRequired("labor")

	return cmd
}

func newTaxesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taxes",
		Short: "Maintain per-state tax rates",
	}

	var jsonOutput bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List tax rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			taxes := a.catalog.ListTaxes()
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), taxes)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderTaxes(taxes))
			return nil
		},
	}
	list.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	cmd.AddCommand(list)
	cmd.AddCommand(newTaxWriteCmd(opts, "add", "Add a state tax rate"))
	cmd.AddCommand(newTaxWriteCmd(opts, "edit", "Change a state's name or rate"))
	cmd.AddCommand(&cobra.Command{
		Use:   "remove <state>",
		Short: "Remove a state tax rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if err := a.catalog.RemoveTax(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed tax for %s\n", domain.StateKey(args[0]))
			return nil
		},
	})
	return cmd
}

func newTaxWriteCmd(opts *rootOptions, verb, short string) *cobra.Command {
	var name, rate string

	cmd := &cobra.Command{
		Use:   verb + " <state>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := domain.ParseDecimal("tax rate", rate)
			if err != nil {
				return err
			}
			a, err := openApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			t := domain.Tax{StateAbbreviation: args[0], StateName: name, TaxRate: r}
			if verb == "add" {
				err = a.catalog.AddTax(t)
			} else {
				err = a.catalog.EditTax(t)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderTaxes(a.catalog.ListTaxes()))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "State name")
	cmd.Flags().StringVar(&rate, "rate", "", "Tax rate in percent")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("rate")

	return cmd
}

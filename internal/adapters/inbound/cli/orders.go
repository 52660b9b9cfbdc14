package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/flooring/internal/adapters/outbound/tui"
	"github.com/abdidvp/flooring/internal/application"
	"github.com/abdidvp/flooring/internal/domain"
)

func newOrdersCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List, add, edit and remove orders",
	}
	cmd.AddCommand(newOrdersListCmd(opts))
	cmd.AddCommand(newOrdersShowCmd(opts))
	cmd.AddCommand(newOrdersAddCmd(opts))
	cmd.AddCommand(newOrdersEditCmd(opts))
	cmd.AddCommand(newOrdersRemoveCmd(opts))
	cmd.AddCommand(newOrdersSearchCmd(opts))
	return cmd
}

func newOrdersListCmd(opts *rootOptions) *cobra.Command {
	var (
		date       string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the orders for a date",
		Long:  "List the orders placed for one date (MM-dd-yyyy). Without --date every order is listed.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			title := "All Orders"
			var list []domain.Order
			if date == "" {
				list = a.orders.ListAllOrders()
			} else {
				d, err := domain.ParseDate(date)
				if err != nil {
					return err
				}
				title = "Orders for " + domain.FormatDate(d)
				list = a.orders.ListOrders(d)
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), list)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderOrders(title, list))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Order date (MM-dd-yyyy)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newOrdersShowCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <number>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseOrderNumber(args[0])
			if err != nil {
				return err
			}
			a, err := openApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			o, err := a.orders.GetOrder(number)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), o)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderOrder(*o))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newOrdersAddCmd(opts *rootOptions) *cobra.Command {
	var (
		date, customer, state, product, area string
		dryRun, jsonOutput                   bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an order",
		Long:  "Add an order. Unit costs and the tax rate are copied from the current catalogs; --dry-run prints the computed order without storing it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := domain.ParseDate(date)
			if err != nil {
				return err
			}
			areaValue, err := domain.ParseDecimal("area", area)
			if err != nil {
				return err
			}
			a, err := openApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			draft := &domain.Order{
				CustomerName: customer,
				State:        state,
				ProductType:  product,
				Area:         areaValue,
				Date:         d,
			}

			var o *domain.Order
			if dryRun {
				o, err = a.orders.Quote(draft)
			} else {
				o, err = a.orders.AddOrder(draft)
			}
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), o)
			}
			if dryRun {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderQuote(*o))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderOrder(*o))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Order date (MM-dd-yyyy)")
	cmd.Flags().StringVar(&customer, "customer", "", "Customer name")
	cmd.Flags().StringVar(&state, "state", "", "State abbreviation or name")
	cmd.Flags().StringVar(&product, "product", "", "Product type")
	cmd.Flags().StringVar(&area, "area", "", "Area in square feet")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute the order without storing it")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	for _, name := range []string{"date", "customer", "state", "product", "area"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func newOrdersEditCmd(opts *rootOptions) *cobra.Command {
	var (
		patch      application.OrderPatch
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "edit <number>",
		Short: "Edit an order",
		Long:  "Edit an order's customer, state, product or area. Omitted fields keep their stored value; the order date never changes.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseOrderNumber(args[0])
			if err != nil {
				return err
			}
			a, err := openApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			o, err := a.orders.EditOrderFields(number, patch)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), o)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderOrder(*o))
			return nil
		},
	}

	cmd.Flags().StringVar(&patch.CustomerName, "customer", "", "New customer name")
	cmd.Flags().StringVar(&patch.State, "state", "", "New state abbreviation or name")
	cmd.Flags().StringVar(&patch.ProductType, "product", "", "New product type")
	cmd.Flags().StringVar(&patch.Area, "area", "", "New area in square feet")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newOrdersRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <number>",
		Short: "Remove an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseOrderNumber(args[0])
			if err != nil {
				return err
			}
			a, err := openApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if err := a.orders.RemoveOrder(number); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed order %d\n", number)
			return nil
		},
	}
}

func newOrdersSearchCmd(opts *rootOptions) *cobra.Command {
	var (
		name, state, product string
		jsonOutput           bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find orders by customer, state or product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			var (
				found []domain.Order
				title string
			)
			switch {
			case cmd.Flags().Changed("name"):
				found, err = a.orders.SearchOrdersByName(name)
				title = "Orders for customer " + name
			case cmd.Flags().Changed("state"):
				found, err = a.orders.SearchOrdersByState(state)
				title = "Orders in " + state
			default:
				found, err = a.orders.SearchOrdersByProductType(product)
				title = "Orders for product " + product
			}
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), found)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderOrders(title, found))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Customer name")
	cmd.Flags().StringVar(&state, "state", "", "State abbreviation or name")
	cmd.Flags().StringVar(&product, "product", "", "Product type")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.MarkFlagsOneRequired("name", "state", "product")
	cmd.MarkFlagsMutuallyExclusive("name", "state", "product")

	return cmd
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/flooring/internal/application"
	"github.com/abdidvp/flooring/internal/domain"
)

// registerTools registers all flooring MCP tools on the given server.
func registerTools(s *server.MCPServer, orders *application.OrderService, catalog *application.CatalogService) {
	// 1. flooring_list_orders
	s.AddTool(
		mcplib.NewTool("flooring_list_orders",
			mcplib.WithDescription("Lists the orders for one date, or every order when no date is given"),
			mcplib.WithString("date", mcplib.Description("Order date as MM-dd-yyyy")),
		),
		handleListOrders(orders),
	)

	// 2. flooring_get_order
	s.AddTool(
		mcplib.NewTool("flooring_get_order",
			mcplib.WithDescription("Returns one order by number"),
			mcplib.WithNumber("order_number", mcplib.Required(), mcplib.Description("Order number")),
		),
		handleGetOrder(orders),
	)

	// 3. flooring_search_orders
	s.AddTool(
		mcplib.NewTool("flooring_search_orders",
			mcplib.WithDescription("Finds orders whose customer name, state or product type matches a value, ignoring case"),
			mcplib.WithString("field", mcplib.Required(), mcplib.Description("One of: name, state, product")),
			mcplib.WithString("value", mcplib.Required(), mcplib.Description("Value to match")),
		),
		handleSearchOrders(orders),
	)

	// 4. flooring_quote_order
	s.AddTool(
		mcplib.NewTool("flooring_quote_order",
			orderFields("Computes material, labor, tax and total for an order without storing it", false)...,
		),
		handleQuoteOrder(orders),
	)

	// 5. flooring_add_order
	s.AddTool(
		mcplib.NewTool("flooring_add_order",
			orderFields("Stores a new order. Unit costs and the tax rate are copied from the current catalogs", true)...,
		),
		handleAddOrder(orders),
	)

	// 6. flooring_edit_order
	s.AddTool(
		mcplib.NewTool("flooring_edit_order",
			mcplib.WithDescription("Changes an order's customer, state, product or area. Omitted fields keep their value; the date never changes"),
			mcplib.WithNumber("order_number", mcplib.Required(), mcplib.Description("Order number")),
			mcplib.WithString("customer_name", mcplib.Description("New customer name")),
			mcplib.WithString("state", mcplib.Description("New state abbreviation or name")),
			mcplib.WithString("product_type", mcplib.Description("New product type")),
			mcplib.WithString("area", mcplib.Description("New area in square feet")),
		),
		handleEditOrder(orders),
	)

	// 7. flooring_remove_order
	s.AddTool(
		mcplib.NewTool("flooring_remove_order",
			mcplib.WithDescription("Removes an order"),
			mcplib.WithNumber("order_number", mcplib.Required(), mcplib.Description("Order number")),
		),
		handleRemoveOrder(orders),
	)

	// 8. flooring_export
	s.AddTool(
		mcplib.NewTool("flooring_export",
			mcplib.WithDescription("Writes every order to the export file and returns its path and order count"),
		),
		handleExport(orders),
	)

	// 9. flooring_list_products
	s.AddTool(
		mcplib.NewTool("flooring_list_products",
			mcplib.WithDescription("Returns the product catalog as JSON"),
		),
		handleListProducts(catalog),
	)

	// 10. flooring_list_taxes
	s.AddTool(
		mcplib.NewTool("flooring_list_taxes",
			mcplib.WithDescription("Returns the per-state tax rates as JSON"),
		),
		handleListTaxes(catalog),
	)
}

// orderFields declares the inputs of a new order. The date is optional for
// quotes.
func orderFields(description string, dateRequired bool) []mcplib.ToolOption {
	dateOpts := []mcplib.PropertyOption{mcplib.Description("Order date as MM-dd-yyyy")}
	if dateRequired {
		dateOpts = append(dateOpts, mcplib.Required())
	}
	return []mcplib.ToolOption{
		mcplib.WithDescription(description),
		mcplib.WithString("date", dateOpts...),
		mcplib.WithString("customer_name", mcplib.Required(), mcplib.Description("Customer name: letters, digits, spaces, periods and commas")),
		mcplib.WithString("state", mcplib.Required(), mcplib.Description("State abbreviation or name")),
		mcplib.WithString("product_type", mcplib.Required(), mcplib.Description("Product type from the catalog")),
		mcplib.WithString("area", mcplib.Required(), mcplib.Description("Area in square feet")),
	}
}

func handleListOrders(orders *application.OrderService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		date := request.GetString("date", "")
		if date == "" {
			return jsonResult(orders.ListAllOrders())
		}
		d, err := domain.ParseDate(date)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(orders.ListOrders(d))
	}
}

func handleGetOrder(orders *application.OrderService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		number, err := orderNumber(request)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		o, err := orders.GetOrder(number)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(o)
	}
}

func handleSearchOrders(orders *application.OrderService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		field, err := request.RequireString("field")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		value, err := request.RequireString("value")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		var found []domain.Order
		switch strings.ToLower(strings.TrimSpace(field)) {
		case "name", "customer", "customer_name":
			found, err = orders.SearchOrdersByName(value)
		case "state":
			found, err = orders.SearchOrdersByState(value)
		case "product", "product_type":
			found, err = orders.SearchOrdersByProductType(value)
		default:
			return errorResult(fmt.Sprintf("unknown search field %q (valid: name, state, product)", field)), nil
		}
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(found)
	}
}

func handleQuoteOrder(orders *application.OrderService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		draft, err := orderFromRequest(request, false)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		o, err := orders.Quote(draft)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(o)
	}
}

func handleAddOrder(orders *application.OrderService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		draft, err := orderFromRequest(request, true)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		o, err := orders.AddOrder(draft)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(o)
	}
}

func handleEditOrder(orders *application.OrderService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		number, err := orderNumber(request)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		patch := application.OrderPatch{
			CustomerName: request.GetString("customer_name", ""),
			State:        request.GetString("state", ""),
			ProductType:  request.GetString("product_type", ""),
			Area:         request.GetString("area", ""),
		}
		o, err := orders.EditOrderFields(number, patch)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return jsonResult(o)
	}
}

func handleRemoveOrder(orders *application.OrderService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		number, err := orderNumber(request)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if err := orders.RemoveOrder(number); err != nil {
			return errorResult(err.Error()), nil
		}
		return textResult(fmt.Sprintf("Removed order %d", number)), nil
	}
}

func handleExport(orders *application.OrderService) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		result, err := orders.ExportAll()
		if err != nil {
			return errorResult(fmt.Sprintf("export failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleListProducts(catalog *application.CatalogService) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		return jsonResult(catalog.ListProducts())
	}
}

func handleListTaxes(catalog *application.CatalogService) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		return jsonResult(catalog.ListTaxes())
	}
}

// orderNumber reads order_number, rejecting fractions and non-positive
// values instead of truncating them.
func orderNumber(request mcplib.CallToolRequest) (int, error) {
	v, err := request.RequireFloat("order_number")
	if err != nil {
		return 0, err
	}
	if v <= 0 || math.Trunc(v) != v || v > math.MaxInt32 {
		return 0, &domain.ValidationError{Field: "order number", Reason: fmt.Sprintf("%v is not a positive integer", v)}
	}
	return int(v), nil
}

// orderFromRequest reads the order fields shared by quote and add.
func orderFromRequest(request mcplib.CallToolRequest, dateRequired bool) (*domain.Order, error) {
	customer, err := request.RequireString("customer_name")
	if err != nil {
		return nil, err
	}
	state, err := request.RequireString("state")
	if err != nil {
		return nil, err
	}
	product, err := request.RequireString("product_type")
	if err != nil {
		return nil, err
	}
	rawArea, err := request.RequireString("area")
	if err != nil {
		return nil, err
	}
	area, err := domain.ParseDecimal("area", rawArea)
	if err != nil {
		return nil, err
	}

	o := &domain.Order{CustomerName: customer, State: state, ProductType: product, Area: area}

	rawDate := request.GetString("date", "")
	if rawDate == "" && dateRequired {
		return nil, &domain.ValidationError{Field: "date", Reason: "must be set"}
	}
	if rawDate != "" {
		if o.Date, err = domain.ParseDate(rawDate); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// jsonResult marshals v as indented JSON into a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}

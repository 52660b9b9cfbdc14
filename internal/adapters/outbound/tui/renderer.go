package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"
	"github.com/shopspring/decimal"

	"github.com/abdidvp/flooring/internal/domain"
)

// ── Warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Width(68)

	dimStyle    = lipgloss.NewStyle().Foreground(dim)
	faintStyle  = lipgloss.NewStyle().Foreground(faint)
	passStyle   = lipgloss.NewStyle().Foreground(success)
	warnStyle   = lipgloss.NewStyle().Foreground(warning)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	moneyStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelWidth  = 28
	columnRule  = "─"
	emptyMarker = "—"
)

// column is one table column, named after the order file field it shows.
type column struct {
	field string
	width int
	right bool
}

var orderColumns = []column{
	{field: "OrderNumber", width: 12, right: true},
	{field: "OrderDate", width: 11},
	{field: "CustomerName", width: 22},
	{field: "State", width: 6},
	{field: "ProductType", width: 12},
	{field: "Area", width: 9, right: true},
	{field: "Total", width: 12, right: true},
}

// RenderOrders formats orders as a table. title heads the table.
func RenderOrders(title string, orders []domain.Order) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render(title) + "  " + dimStyle.Render(plural(len(orders), "order")) + "\n\n")

	if len(orders) == 0 {
		b.WriteString("  " + dimStyle.Render("No orders found.") + "\n\n")
		return b.String()
	}

	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []string{
			fmt.Sprintf("%d", o.Number),
			domain.FormatDate(o.Date),
			o.CustomerName,
			o.State,
			o.ProductType,
			o.Area.String(),
			money(o.Total),
		})
	}
	renderTable(&b, orderColumns, rows)
	b.WriteString("\n")
	return b.String()
}

// RenderOrder formats one order as a summary box.
func RenderOrder(o domain.Order) string {
	return renderOrderBox(fmt.Sprintf("Order #%d", o.Number), o)
}

// RenderQuote formats an order that has not been stored yet.
func RenderQuote(o domain.Order) string {
	return renderOrderBox("Order Summary", o)
}

func renderOrderBox(title string, o domain.Order) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(title) + "\n\n")

	fields := []struct {
		name  string
		value string
	}{
		{"OrderDate", domain.FormatDate(o.Date)},
		{"CustomerName", o.CustomerName},
		{"State", o.State},
		{"TaxRate", o.TaxRate.String() + "%"},
		{"ProductType", o.ProductType},
		{"Area", o.Area.String() + " sq ft"},
		{"CostPerSquareFoot", money(o.CostPerSquareFoot)},
		{"LaborCostPerSquareFoot", money(o.LaborCostPerSquareFoot)},
		{"MaterialCost", money(o.MaterialCost)},
		{"LaborCost", money(o.LaborCost)},
		{"Tax", money(o.Tax)},
	}
	for _, f := range fields {
		b.WriteString(dimStyle.Render(padRight(label(f.name), labelWidth)) + f.value + "\n")
	}
	b.WriteString("\n" + titleStyle.Render(padRight(label("Total"), labelWidth)) + moneyStyle.Render(money(o.Total)))

	return "\n" + boxStyle.Render(b.String()) + "\n\n"
}

// RenderExport confirms a finished export.
func RenderExport(result *domain.ExportResult) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + passStyle.Render("✔") + " " + titleStyle.Render("Exported "+plural(result.Orders, "order")) + "\n")
	b.WriteString("    " + dimStyle.Render(result.Path) + "\n")
	if result.Revision != "" {
		rev := result.Revision
		if len(rev) > 7 {
			rev = rev[:7]
		}
		b.WriteString("    " + faintStyle.Render("data revision "+rev) + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

// RenderWarning formats a one-line warning.
func RenderWarning(msg string) string {
	return "  " + warnStyle.Render("! "+msg) + "\n"
}

func renderTable(b *strings.Builder, cols []column, rows [][]string) {
	var hdr strings.Builder
	total := 0
	for i, c := range cols {
		if i > 0 {
			hdr.WriteString("  ")
			total += 2
		}
		hdr.WriteString(align(label(c.field), c.width, c.right))
		total += c.width
	}
	b.WriteString("  " + titleStyle.Render(hdr.String()) + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat(columnRule, total)) + "\n")

	for _, row := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			v := emptyMarker
			if i < len(row) && row[i] != "" {
				v = row[i]
			}
			cells[i] = align(v, c.width, c.right)
		}
		b.WriteString("  " + strings.Join(cells, "  ") + "\n")
	}
}

// label turns a field name such as "CostPerSquareFoot" into
// "Cost Per Square Foot".
func label(field string) string {
	return strings.Join(camelcase.Split(field), " ")
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(domain.MoneyPlaces)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func align(s string, width int, right bool) string {
	s = truncate(s, width)
	if right {
		return padLeft(s, width)
	}
	return padRight(s, width)
}

func truncate(s string, width int) string {
	if len(s) > width {
		return s[:width-1] + "…"
	}
	return s
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

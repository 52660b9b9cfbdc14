package tui

import (
	"strings"

	"github.com/abdidvp/flooring/internal/domain"
)

var (
	productColumns = []column{
		{field: "ProductType", width: 20},
		{field: "CostPerSquareFoot", width: 22, right: true},
		{field: "LaborCostPerSquareFoot", width: 26, right: true},
	}
	taxColumns = []column{
		{field: "StateAbbreviation", width: 18},
		{field: "StateName", width: 20},
		{field: "TaxRate", width: 10, right: true},
	}
)

// RenderProducts formats the product catalog.
func RenderProducts(products []domain.Product) string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Products") + "  " + dimStyle.Render(plural(len(products), "product")) + "\n\n")
	if len(products) == 0 {
		b.WriteString("  " + dimStyle.Render("The product catalog is empty.") + "\n\n")
		return b.String()
	}

	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{p.ProductType, money(p.CostPerSquareFoot), money(p.LaborCostPerSquareFoot)})
	}
	renderTable(&b, productColumns, rows)
	b.WriteString("\n")
	return b.String()
}

// RenderTaxes formats the tax catalog.
func RenderTaxes(taxes []domain.Tax) string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Taxes") + "  " + dimStyle.Render(plural(len(taxes), "state")) + "\n\n")
	if len(taxes) == 0 {
		b.WriteString("  " + dimStyle.Render("The tax catalog is empty.") + "\n\n")
		return b.String()
	}

	rows := make([][]string, 0, len(taxes))
	for _, t := range taxes {
		rows = append(rows, []string{t.StateAbbreviation, t.StateName, t.TaxRate.StringFixed(domain.MoneyPlaces) + "%"})
	}
	renderTable(&b, taxColumns, rows)
	b.WriteString("\n")
	return b.String()
}

// Package catalog stores the product and tax reference data, one flat file
// each.
package catalog

import (
	"github.com/abdidvp/flooring/internal/domain"
)

type productCodec struct{}

func (productCodec) Header() []string {
	return []string{"ProductType", "CostPerSquareFoot", "LaborCostPerSquareFoot"}
}

func (productCodec) Encode(p domain.Product) []string {
	return []string{p.ProductType, p.CostPerSquareFoot.String(), p.LaborCostPerSquareFoot.String()}
}

func (productCodec) Decode(f []string) (domain.Product, error) {
	cost, err := domain.ParseDecimal("cost per square foot", f[1])
	if err != nil {
		return domain.Product{}, err
	}
	labor, err := domain.ParseDecimal("labor cost per square foot", f[2])
	if err != nil {
		return domain.Product{}, err
	}
	return domain.NewProduct(f[0], cost, labor)
}

type taxCodec struct{}

func (taxCodec) Header() []string {
	return []string{"StateAbbreviation", "StateName", "TaxRate"}
}

func (taxCodec) Encode(t domain.Tax) []string {
	return []string{t.StateAbbreviation, t.StateName, t.TaxRate.String()}
}

func (taxCodec) Decode(f []string) (domain.Tax, error) {
	rate, err := domain.ParseDecimal("tax rate", f[2])
	if err != nil {
		return domain.Tax{}, err
	}
	return domain.NewTax(f[0], f[1], rate)
}

func productKey(p domain.Product) string { return domain.ProductKey(p.ProductType) }

func taxKey(t domain.Tax) string { return domain.StateKey(t.StateAbbreviation) }

package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry keyed by ProductType.
type Product struct {
	ProductType            string          `json:"product_type"`
	CostPerSquareFoot      decimal.Decimal `json:"cost_per_square_foot"`
	LaborCostPerSquareFoot decimal.Decimal `json:"labor_cost_per_square_foot"`
}

// NewProduct builds and validates a Product.
func NewProduct(productType string, cost, labor decimal.Decimal) (Product, error) {
	p := Product{
		ProductType:            strings.TrimSpace(productType),
		CostPerSquareFoot:      cost,
		LaborCostPerSquareFoot: labor,
	}
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (p Product) Validate() error {
	if strings.TrimSpace(p.ProductType) == "" {
		return &ValidationError{Field: "product type", Reason: "must not be empty"}
	}
	if strings.ContainsAny(p.ProductType, "\r\n") {
		return &ValidationError{Field: "product type", Reason: "must be a single line"}
	}
	if p.CostPerSquareFoot.IsNegative() {
		return &ValidationError{Field: "cost per square foot", Reason: "must not be negative"}
	}
	if p.LaborCostPerSquareFoot.IsNegative() {
		return &ValidationError{Field: "labor cost per square foot", Reason: "must not be negative"}
	}
	return nil
}

// ProductKey is the case-insensitive lookup key for a product type.
func ProductKey(productType string) string {
	return strings.ToLower(strings.TrimSpace(productType))
}

// MaxTaxRate is the upper bound of a tax rate, in percent.
var MaxTaxRate = decimal.NewFromInt(100)

// Tax is a per-state tax policy keyed by StateAbbreviation.
type Tax struct {
	StateAbbreviation string          `json:"state_abbreviation"`
	StateName         string          `json:"state_name"`
	TaxRate           decimal.Decimal `json:"tax_rate"`
}

// NewTax builds and validates a Tax. The abbreviation is upper-cased.
func NewTax(abbreviation, name string, rate decimal.Decimal) (Tax, error) {
	t := Tax{
		StateAbbreviation: StateKey(abbreviation),
		StateName:         strings.TrimSpace(name),
		TaxRate:           rate,
	}
	if err := t.Validate(); err != nil {
		return Tax{}, err
	}
	return t, nil
}

func (t Tax) Validate() error {
	abbr := strings.TrimSpace(t.StateAbbreviation)
	if abbr == "" {
		return &ValidationError{Field: "state abbreviation", Reason: "must not be empty"}
	}
	if len(abbr) > 2 {
		return &ValidationError{Field: "state abbreviation", Reason: "must be at most 2 characters"}
	}
	if strings.TrimSpace(t.StateName) == "" {
		return &ValidationError{Field: "state name", Reason: "must not be empty"}
	}
	if t.TaxRate.IsNegative() || t.TaxRate.GreaterThan(MaxTaxRate) {
		return &ValidationError{Field: "tax rate", Reason: "must be between 0 and 100"}
	}
	return nil
}

// StateKey normalizes a state abbreviation for lookup and storage.
func StateKey(abbreviation string) string {
	return strings.ToUpper(strings.TrimSpace(abbreviation))
}

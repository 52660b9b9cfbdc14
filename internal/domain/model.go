package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places money columns are rounded to.
const MoneyPlaces = 2

var (
	hundred = decimal.NewFromInt(100)

	// DefaultMinArea is the smallest orderable area, in square feet.
	DefaultMinArea = decimal.NewFromInt(100)

	customerNamePattern = regexp.MustCompile(`^[A-Za-z0-9 .,]+$`)
)

// Order is one customer purchase. Unit costs and the tax rate are snapshots
// taken when the order was created or last edited; the derived money fields
// are always a function of Area, the unit costs and TaxRate.
type Order struct {
	Number                 int             `json:"order_number"`
	CustomerName           string          `json:"customer_name"`
	State                  string          `json:"state"`
	TaxRate                decimal.Decimal `json:"tax_rate"`
	ProductType            string          `json:"product_type"`
	Area                   decimal.Decimal `json:"area"`
	CostPerSquareFoot      decimal.Decimal `json:"cost_per_square_foot"`
	LaborCostPerSquareFoot decimal.Decimal `json:"labor_cost_per_square_foot"`
	MaterialCost           decimal.Decimal `json:"material_cost"`
	LaborCost              decimal.Decimal `json:"labor_cost"`
	Tax                    decimal.Decimal `json:"tax"`
	Total                  decimal.Decimal `json:"total"`
	Date                   time.Time       `json:"order_date"`
}

// CalculateMaterialCost returns Area × CostPerSquareFoot, rounded to cents.
func (o Order) CalculateMaterialCost() decimal.Decimal {
	return o.Area.Mul(o.CostPerSquareFoot).Round(MoneyPlaces)
}

// CalculateLaborCost returns Area × LaborCostPerSquareFoot, rounded to cents.
func (o Order) CalculateLaborCost() decimal.Decimal {
	return o.Area.Mul(o.LaborCostPerSquareFoot).Round(MoneyPlaces)
}

// CalculateTax applies TaxRate to the rounded material and labor costs.
func (o Order) CalculateTax() decimal.Decimal {
	return CalculateTax(o.CalculateMaterialCost().Add(o.CalculateLaborCost()), o.TaxRate)
}

// CalculateTotal is material + labor + tax.
func (o Order) CalculateTotal() decimal.Decimal {
	return o.CalculateMaterialCost().Add(o.CalculateLaborCost()).Add(o.CalculateTax())
}

// Recalculate overwrites the derived fields from the order's inputs.
func (o *Order) Recalculate() {
	o.MaterialCost = o.CalculateMaterialCost()
	o.LaborCost = o.CalculateLaborCost()
	o.Tax = CalculateTax(o.MaterialCost.Add(o.LaborCost), o.TaxRate)
	o.Total = o.MaterialCost.Add(o.LaborCost).Add(o.Tax)
}

// IsConsistent reports whether the stored derived fields match the inputs.
func (o Order) IsConsistent() bool {
	want := o
	want.Recalculate()
	return o.MaterialCost.Equal(want.MaterialCost) &&
		o.LaborCost.Equal(want.LaborCost) &&
		o.Tax.Equal(want.Tax) &&
		o.Total.Equal(want.Total)
}

// ApplyProduct snapshots the product's unit costs into the order.
func (o *Order) ApplyProduct(p Product) {
	o.ProductType = p.ProductType
	o.CostPerSquareFoot = p.CostPerSquareFoot
	o.LaborCostPerSquareFoot = p.LaborCostPerSquareFoot
}

// ApplyTax snapshots the state's tax rate into the order.
func (o *Order) ApplyTax(t Tax) {
	o.State = t.StateAbbreviation
	o.TaxRate = t.TaxRate
}

// Equal compares every field, treating decimals by value.
func (o Order) Equal(other Order) bool {
	return o.Number == other.Number &&
		o.CustomerName == other.CustomerName &&
		o.State == other.State &&
		o.ProductType == other.ProductType &&
		o.TaxRate.Equal(other.TaxRate) &&
		o.Area.Equal(other.Area) &&
		o.CostPerSquareFoot.Equal(other.CostPerSquareFoot) &&
		o.LaborCostPerSquareFoot.Equal(other.LaborCostPerSquareFoot) &&
		o.MaterialCost.Equal(other.MaterialCost) &&
		o.LaborCost.Equal(other.LaborCost) &&
		o.Tax.Equal(other.Tax) &&
		o.Total.Equal(other.Total) &&
		SameDay(o.Date, other.Date)
}

// CalculateTax returns base × rate / 100 rounded to cents.
func CalculateTax(base, rate decimal.Decimal) decimal.Decimal {
	return base.Mul(rate).Div(hundred).Round(MoneyPlaces)
}

// ValidateCustomerName checks the allowed character set.
func ValidateCustomerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "customer name", Reason: "must not be empty"}
	}
	if !customerNamePattern.MatchString(name) {
		return &ValidationError{Field: "customer name", Reason: "only letters, digits, spaces, periods and commas are allowed"}
	}
	return nil
}

// ValidateArea checks that area is at least minArea.
func ValidateArea(area, minArea decimal.Decimal) error {
	if area.LessThan(minArea) {
		return &ValidationError{Field: "area", Reason: "must be at least " + minArea.String() + " sq ft"}
	}
	return nil
}

// ParseDecimal parses a decimal field, naming it in the error.
func ParseDecimal(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, &ValidationError{Field: field, Reason: "\"" + s + "\" is not a number"}
	}
	return d, nil
}

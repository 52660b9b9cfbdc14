package orders

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/abdidvp/flooring/internal/domain"
)

const (
	filePrefix = "Orders_"
	fileSuffix = ".txt"
)

var fileNamePattern = regexp.MustCompile(`^Orders_(\d{2}-\d{2}-\d{4})\.txt$`)

// FileName returns the partition file name for date.
func FileName(date time.Time) string {
	return filePrefix + domain.FormatDate(date) + fileSuffix
}

// parseFileName extracts the partition date from a file name.
func parseFileName(name string) (time.Time, bool) {
	m := fileNamePattern.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, false
	}
	d, err := domain.ParseDate(m[1])
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Columns is the order file layout, shared by partitions and the export.
var Columns = []string{
	"OrderNumber", "CustomerName", "State", "TaxRate", "ProductType", "Area",
	"CostPerSquareFoot", "LaborCostPerSquareFoot",
	"MaterialCost", "LaborCost", "Tax", "Total", "OrderDate",
}

type orderCodec struct{}

func (orderCodec) Header() []string { return Columns }

func (orderCodec) Encode(o domain.Order) []string {
	return []string{
		strconv.Itoa(o.Number),
		o.CustomerName,
		o.State,
		o.TaxRate.String(),
		o.ProductType,
		o.Area.String(),
		o.CostPerSquareFoot.String(),
		o.LaborCostPerSquareFoot.String(),
		o.MaterialCost.StringFixed(domain.MoneyPlaces),
		o.LaborCost.StringFixed(domain.MoneyPlaces),
		o.Tax.StringFixed(domain.MoneyPlaces),
		o.Total.StringFixed(domain.MoneyPlaces),
		domain.FormatDate(o.Date),
	}
}

func (orderCodec) Decode(f []string) (domain.Order, error) {
	n, err := strconv.Atoi(f[0])
	if err != nil || n <= 0 {
		return domain.Order{}, fmt.Errorf("order number %q is not a positive integer", f[0])
	}
	o := domain.Order{
		Number:       n,
		CustomerName: f[1],
		State:        domain.StateKey(f[2]),
		ProductType:  f[4],
	}
	if o.CustomerName == "" {
		return domain.Order{}, &domain.ValidationError{Field: "customer name", Reason: "must not be empty"}
	}

	if o.TaxRate, err = domain.ParseDecimal("tax rate", f[3]); err != nil {
		return domain.Order{}, err
	}
	if o.Area, err = domain.ParseDecimal("area", f[5]); err != nil {
		return domain.Order{}, err
	}
	if o.CostPerSquareFoot, err = domain.ParseDecimal("cost per square foot", f[6]); err != nil {
		return domain.Order{}, err
	}
	if o.LaborCostPerSquareFoot, err = domain.ParseDecimal("labor cost per square foot", f[7]); err != nil {
		return domain.Order{}, err
	}
	if o.MaterialCost, err = domain.ParseDecimal("material cost", f[8]); err != nil {
		return domain.Order{}, err
	}
	if o.LaborCost, err = domain.ParseDecimal("labor cost", f[9]); err != nil {
		return domain.Order{}, err
	}
	if o.Tax, err = domain.ParseDecimal("tax", f[10]); err != nil {
		return domain.Order{}, err
	}
	if o.Total, err = domain.ParseDecimal("total", f[11]); err != nil {
		return domain.Order{}, err
	}
	if o.Date, err = domain.ParseDate(f[12]); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

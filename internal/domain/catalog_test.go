package domain_test

import (
	"testing"

	"github.com/abdidvp/flooring/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	p, err := domain.NewProduct("  Carpet ", dec("2.25"), dec("2.10"))
	require.NoError(t, err)
	assert.Equal(t, "Carpet", p.ProductType)
}

func TestProduct_Validate(t *testing.T) {
	tests := []struct {
		name    string
		product domain.Product
		wantErr bool
	}{
		{"valid", domain.Product{ProductType: "Tile", CostPerSquareFoot: dec("3.5"), LaborCostPerSquareFoot: dec("4.15")}, false},
		{"free labor", domain.Product{ProductType: "Tile", CostPerSquareFoot: dec("3.5")}, false},
		{"empty type", domain.Product{CostPerSquareFoot: dec("1"), LaborCostPerSquareFoot: dec("1")}, true},
		{"negative cost", domain.Product{ProductType: "Tile", CostPerSquareFoot: dec("-1")}, true},
		{"negative labor", domain.Product{ProductType: "Tile", LaborCostPerSquareFoot: dec("-0.01")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.product.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewTax_UppercasesAbbreviation(t *testing.T) {
	tax, err := domain.NewTax("tx", "Texas", dec("6.25"))
	require.NoError(t, err)
	assert.Equal(t, "TX", tax.StateAbbreviation)
}

func TestTax_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tax     domain.Tax
		wantErr bool
	}{
		{"valid", domain.Tax{StateAbbreviation: "TX", StateName: "Texas", TaxRate: dec("6.25")}, false},
		{"zero rate", domain.Tax{StateAbbreviation: "DE", StateName: "Delaware", TaxRate: dec("0")}, false},
		{"hundred", domain.Tax{StateAbbreviation: "ZZ", StateName: "Zed", TaxRate: dec("100")}, false},
		{"too long", domain.Tax{StateAbbreviation: "TEX", StateName: "Texas", TaxRate: dec("6")}, true},
		{"empty abbreviation", domain.Tax{StateName: "Texas", TaxRate: dec("6")}, true},
		{"empty name", domain.Tax{StateAbbreviation: "TX", TaxRate: dec("6")}, true},
		{"negative", domain.Tax{StateAbbreviation: "TX", StateName: "Texas", TaxRate: dec("-0.5")}, true},
		{"over hundred", domain.Tax{StateAbbreviation: "TX", StateName: "Texas", TaxRate: dec("100.01")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tax.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "laminate", domain.ProductKey(" Laminate "))
	assert.Equal(t, "WA", domain.StateKey(" wa"))
}

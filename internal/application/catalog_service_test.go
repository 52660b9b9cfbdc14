package application_test

import (
	"testing"

	"github.com/abdidvp/flooring/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_Products(t *testing.T) {
	f := newFixture(t, domain.DefaultConfig())
	svc := f.catalog

	require.NoError(t, svc.AddProduct(domain.Product{ProductType: " Carpet ", CostPerSquareFoot: dec("2.25"), LaborCostPerSquareFoot: dec("2.10")}))
	assert.ErrorIs(t, svc.AddProduct(domain.Product{ProductType: "carpet", CostPerSquareFoot: dec("1"), LaborCostPerSquareFoot: dec("1")}), domain.ErrDuplicateKey)

	p, err := svc.GetProduct("CARPET")
	require.NoError(t, err)
	assert.Equal(t, "Carpet", p.ProductType)

	assert.ErrorIs(t, svc.EditProduct(domain.Product{ProductType: "Cork", CostPerSquareFoot: dec("1"), LaborCostPerSquareFoot: dec("1")}), domain.ErrReferenceNotFound)
	assert.ErrorIs(t, svc.EditProduct(domain.Product{ProductType: "Carpet", CostPerSquareFoot: dec("-1"), LaborCostPerSquareFoot: dec("1")}), domain.ErrInvalidInput)

	require.NoError(t, svc.RemoveProduct("Carpet"))
	assert.ErrorIs(t, svc.RemoveProduct("Carpet"), domain.ErrReferenceNotFound)
	assert.Empty(t, svc.ListProducts())
}

func TestCatalogService_Taxes(t *testing.T) {
	f := newFixture(t, domain.DefaultConfig())
	svc := f.catalog

	require.NoError(t, svc.AddTax(domain.Tax{StateAbbreviation: "ky", StateName: "Kentucky", TaxRate: dec("6.00")}))
	assert.ErrorIs(t, svc.AddTax(domain.Tax{StateAbbreviation: "KY", StateName: "Kentucky", TaxRate: dec("6")}), domain.ErrDuplicateKey)
	assert.ErrorIs(t, svc.AddTax(domain.Tax{StateAbbreviation: "KEN", StateName: "Kentucky", TaxRate: dec("6")}), domain.ErrInvalidInput)

	tax, err := svc.GetTax("ky")
	require.NoError(t, err)
	assert.Equal(t, "KY", tax.StateAbbreviation)

	require.NoError(t, svc.EditTax(domain.Tax{StateAbbreviation: "KY", StateName: "Kentucky", TaxRate: dec("7")}))
	assert.ErrorIs(t, svc.EditTax(domain.Tax{StateAbbreviation: "CA", StateName: "California", TaxRate: dec("7")}), domain.ErrReferenceNotFound)

	require.NoError(t, svc.RemoveTax("KY"))
	assert.ErrorIs(t, svc.RemoveTax("KY"), domain.ErrReferenceNotFound)
	assert.Empty(t, svc.ListTaxes())
}

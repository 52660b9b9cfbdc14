package application

import (
	"fmt"
	"log/slog"

	"github.com/abdidvp/flooring/internal/domain"
)

// CatalogService maintains the product and tax reference data.
type CatalogService struct {
	products domain.ProductRepository
	taxes    domain.TaxRepository
	logger   *slog.Logger
}

// NewCatalogService creates a CatalogService. A nil logger discards output.
func NewCatalogService(products domain.ProductRepository, taxes domain.TaxRepository, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CatalogService{products: products, taxes: taxes, logger: logger}
}

func (s *CatalogService) ListProducts() []domain.Product { return s.products.GetAll() }

// GetProduct fails with domain.ErrReferenceNotFound for an unknown type.
func (s *CatalogService) GetProduct(productType string) (*domain.Product, error) {
	p, ok := s.products.GetByKey(productType)
	if !ok {
		return nil, fmt.Errorf("product %q: %w", productType, domain.ErrReferenceNotFound)
	}
	return &p, nil
}

func (s *CatalogService) AddProduct(p domain.Product) error {
	p, err := domain.NewProduct(p.ProductType, p.CostPerSquareFoot, p.LaborCostPerSquareFoot)
	if err != nil {
		return err
	}
	if err := s.products.Add(p); err != nil {
		return fmt.Errorf("adding product %q: %w", p.ProductType, err)
	}
	s.logger.Info("product added", slog.String("product", p.ProductType))
	return nil
}

func (s *CatalogService) EditProduct(p domain.Product) error {
	p, err := domain.NewProduct(p.ProductType, p.CostPerSquareFoot, p.LaborCostPerSquareFoot)
	if err != nil {
		return err
	}
	ok, err := s.products.Update(p)
	if err != nil {
		return fmt.Errorf("editing product %q: %w", p.ProductType, err)
	}
	if !ok {
		return fmt.Errorf("product %q: %w", p.ProductType, domain.ErrReferenceNotFound)
	}
	s.logger.Info("product edited", slog.String("product", p.ProductType))
	return nil
}

func (s *CatalogService) RemoveProduct(productType string) error {
	ok, err := s.products.RemoveByKey(productType)
	if err != nil {
		return fmt.Errorf("removing product %q: %w", productType, err)
	}
	if !ok {
		return fmt.Errorf("product %q: %w", productType, domain.ErrReferenceNotFound)
	}
	s.logger.Info("product removed", slog.String("product", productType))
	return nil
}

func (s *CatalogService) ListTaxes() []domain.Tax { return s.taxes.GetAll() }

// GetTax fails with domain.ErrReferenceNotFound for an unknown state.
func (s *CatalogService) GetTax(abbreviation string) (*domain.Tax, error) {
	t, ok := s.taxes.GetByKey(abbreviation)
	if !ok {
		return nil, fmt.Errorf("state %q: %w", abbreviation, domain.ErrReferenceNotFound)
	}
	return &t, nil
}

func (s *CatalogService) AddTax(t domain.Tax) error {
	t, err := domain.NewTax(t.StateAbbreviation, t.StateName, t.TaxRate)
	if err != nil {
		return err
	}
	if err := s.taxes.Add(t); err != nil {
		return fmt.Errorf("adding tax %q: %w", t.StateAbbreviation, err)
	}
	s.logger.Info("tax added", slog.String("state", t.StateAbbreviation))
	return nil
}

func (s *CatalogService) EditTax(t domain.Tax) error {
	t, err := domain.NewTax(t.StateAbbreviation, t.StateName, t.TaxRate)
	if err != nil {
		return err
	}
	ok, err := s.taxes.Update(t)
	if err != nil {
		return fmt.Errorf("editing tax %q: %w", t.StateAbbreviation, err)
	}
	if !ok {
		return fmt.Errorf("state %q: %w", t.StateAbbreviation, domain.ErrReferenceNotFound)
	}
	s.logger.Info("tax edited", slog.String("state", t.StateAbbreviation))
	return nil
}

func (s *CatalogService) RemoveTax(abbreviation string) error {
	ok, err := s.taxes.RemoveByKey(abbreviation)
	if err != nil {
		return fmt.Errorf("removing tax %q: %w", abbreviation, err)
	}
	if !ok {
		return fmt.Errorf("state %q: %w", abbreviation, domain.ErrReferenceNotFound)
	}
	s.logger.Info("tax removed", slog.String("state", domain.StateKey(abbreviation)))
	return nil
}

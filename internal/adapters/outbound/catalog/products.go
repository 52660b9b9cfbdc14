package catalog

import (
	"fmt"

	"github.com/abdidvp/flooring/internal/adapters/outbound/flatfile"
	"github.com/abdidvp/flooring/internal/domain"
)

// ProductRepository is the file-backed product catalog. Lookups ignore the
// case of the product type; the stored casing is kept for display.
type ProductRepository struct {
	store *flatfile.Store[string, domain.Product]
}

var _ domain.ProductRepository = (*ProductRepository)(nil)

// NewProductRepository loads path. A missing file is an empty catalog.
func NewProductRepository(path string, opts ...flatfile.Option) (*ProductRepository, error) {
	store := flatfile.NewStore(path, flatfile.Codec[domain.Product](productCodec{}), productKey, opts...)
	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("loading products: %w", err)
	}
	return &ProductRepository{store: store}, nil
}

func (r *ProductRepository) GetAll() []domain.Product { return r.store.All() }

func (r *ProductRepository) GetByKey(productType string) (domain.Product, bool) {
	return r.store.Get(domain.ProductKey(productType))
}

func (r *ProductRepository) Add(p domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return r.store.Insert(p)
}

func (r *ProductRepository) Update(p domain.Product) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}
	return r.store.Update(p)
}

func (r *ProductRepository) RemoveByKey(productType string) (bool, error) {
	return r.store.Delete(domain.ProductKey(productType))
}

package catalog

import (
	"fmt"

	"github.com/abdidvp/flooring/internal/adapters/outbound/flatfile"
	"github.com/abdidvp/flooring/internal/domain"
)

// TaxRepository is the file-backed tax catalog, keyed by upper-case state
// abbreviation.
type TaxRepository struct {
	store *flatfile.Store[string, domain.Tax]
}

var _ domain.TaxRepository = (*TaxRepository)(nil)

// NewTaxRepository loads path. A missing file is an empty catalog.
func NewTaxRepository(path string, opts ...flatfile.Option) (*TaxRepository, error) {
	store := flatfile.NewStore(path, flatfile.Codec[domain.Tax](taxCodec{}), taxKey, opts...)
	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("loading taxes: %w", err)
	}
	return &TaxRepository{store: store}, nil
}

func (r *TaxRepository) GetAll() []domain.Tax { return r.store.All() }

func (r *TaxRepository) GetByKey(abbreviation string) (domain.Tax, bool) {
	return r.store.Get(domain.StateKey(abbreviation))
}

// Add stores t with its abbreviation upper-cased.
func (r *TaxRepository) Add(t domain.Tax) error {
	t.StateAbbreviation = domain.StateKey(t.StateAbbreviation)
	if err := t.Validate(); err != nil {
		return err
	}
	return r.store.Insert(t)
}

func (r *TaxRepository) Update(t domain.Tax) (bool, error) {
	t.StateAbbreviation = domain.StateKey(t.StateAbbreviation)
	if err := t.Validate(); err != nil {
		return false, err
	}
	return r.store.Update(t)
}

func (r *TaxRepository) RemoveByKey(abbreviation string) (bool, error) {
	return r.store.Delete(domain.StateKey(abbreviation))
}

package domain

import "time"

// OrderRepository owns the order index and its date-partitioned files.
type OrderRepository interface {
	GetAll() []Order
	GetByID(number int) (Order, bool)
	GetByDate(date time.Time) []Order
	Add(order Order) (Order, error)
	Edit(order Order) error
	Remove(number int) error
	SearchByName(name string) []Order
	SearchByProductType(productType string) []Order
	SearchByState(state string) []Order
	Export(path string) (int, error)
}

// ProductRepository owns the product catalog file.
type ProductRepository interface {
	GetAll() []Product
	GetByKey(productType string) (Product, bool)
	Add(p Product) error
	Update(p Product) (bool, error)
	RemoveByKey(productType string) (bool, error)
}

// TaxRepository owns the tax catalog file.
type TaxRepository interface {
	GetAll() []Tax
	GetByKey(abbreviation string) (Tax, bool)
	Add(t Tax) error
	Update(t Tax) (bool, error)
	RemoveByKey(abbreviation string) (bool, error)
}

// ConfigLoader reads the data root's configuration.
type ConfigLoader interface {
	Load(root string) (Config, error)
}

// RevisionReader reports the version-control revision of a directory, when
// it is tracked.
type RevisionReader interface {
	CommitHash(path string) (string, error)
}

// ExportResult confirms an export.
type ExportResult struct {
	Path     string `json:"path"`
	Orders   int    `json:"orders"`
	Revision string `json:"revision,omitempty"`
}

package domain

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
)

// ConfigFileName is the per-data-root configuration file.
const ConfigFileName = ".flooring.yaml"

// Config holds data-root configuration loaded from .flooring.yaml.
// Relative paths resolve against the data root.
type Config struct {
	OrdersDir    string `yaml:"orders_dir"    json:"orders_dir,omitempty"`
	ProductsFile string `yaml:"products_file" json:"products_file,omitempty"`
	TaxesFile    string `yaml:"taxes_file"    json:"taxes_file,omitempty"`
	ExportFile   string `yaml:"export_file"   json:"export_file,omitempty"`
	MinArea      string `yaml:"min_area"      json:"min_area,omitempty"`
	// Pointer distinguishes "not specified" from an explicit false.
	RequireFutureDates *bool `yaml:"require_future_dates,omitempty" json:"require_future_dates,omitempty"`
	// States maps full state names to abbreviations for order input.
	States map[string]string `yaml:"states" json:"states,omitempty"`
}

// DataPaths are the resolved locations of every data file.
type DataPaths struct {
	Root         string
	OrdersDir    string
	ProductsFile string
	TaxesFile    string
	ExportFile   string
}

// DefaultStateNames is the lookup table shipped with a fresh configuration.
func DefaultStateNames() map[string]string {
	return map[string]string{
		"Alabama": "AL", "Alaska": "AK", "Arizona": "AZ", "Arkansas": "AR",
		"California": "CA", "Colorado": "CO", "Connecticut": "CT", "Delaware": "DE",
		"Florida": "FL", "Georgia": "GA", "Hawaii": "HI", "Idaho": "ID",
		"Illinois": "IL", "Indiana": "IN", "Iowa": "IA", "Kansas": "KS",
		"Kentucky": "KY", "Louisiana": "LA", "Maine": "ME", "Maryland": "MD",
		"Massachusetts": "MA", "Michigan": "MI", "Minnesota": "MN", "Mississippi": "MS",
		"Missouri": "MO", "Montana": "MT", "Nebraska": "NE", "Nevada": "NV",
		"New Hampshire": "NH", "New Jersey": "NJ", "New Mexico": "NM", "New York": "NY",
		"North Carolina": "NC", "North Dakota": "ND", "Ohio": "OH", "Oklahoma": "OK",
		"Oregon": "OR", "Pennsylvania": "PA", "Rhode Island": "RI", "South Carolina": "SC",
		"South Dakota": "SD", "Tennessee": "TN", "Texas": "TX", "Utah": "UT",
		"Vermont": "VT", "Virginia": "VA", "Washington": "WA", "West Virginia": "WV",
		"Wisconsin": "WI", "Wyoming": "WY",
	}
}

// DefaultConfig returns the layout used when no .flooring.yaml exists.
func DefaultConfig() Config {
	future := true
	return Config{
		OrdersDir:          "orders",
		ProductsFile:       "Products.txt",
		TaxesFile:          "Taxes.txt",
		ExportFile:         filepath.Join("Backup", "DataExport.txt"),
		MinArea:            DefaultMinArea.String(),
		RequireFutureDates: &future,
		States:             DefaultStateNames(),
	}
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c Config) Validate() error {
	if c.MinArea != "" {
		d, err := decimal.NewFromString(c.MinArea)
		if err != nil {
			return fmt.Errorf("min_area %q is not a number", c.MinArea)
		}
		if !d.IsPositive() {
			return fmt.Errorf("min_area must be > 0 (got %s)", c.MinArea)
		}
	}

	for name, abbr := range c.States {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("states: empty state name for %q", abbr)
		}
		if n := len(strings.TrimSpace(abbr)); n == 0 || n > 2 {
			return fmt.Errorf("states[%q] = %q (must be 1-2 characters)", name, abbr)
		}
	}

	if c.OrdersDir != "" && c.ExportFile != "" &&
		filepath.Clean(filepath.Dir(c.ExportFile)) == filepath.Clean(c.OrdersDir) {
		return fmt.Errorf("export_file must not live inside orders_dir")
	}

	return nil
}

// MinAreaValue returns the configured minimum area, or DefaultMinArea.
func (c Config) MinAreaValue() decimal.Decimal {
	if c.MinArea == "" {
		return DefaultMinArea
	}
	d, err := decimal.NewFromString(c.MinArea)
	if err != nil {
		return DefaultMinArea
	}
	return d
}

// FutureDatesRequired reports whether new orders must be dated today or later.
func (c Config) FutureDatesRequired() bool {
	return c.RequireFutureDates == nil || *c.RequireFutureDates
}

// StateAbbreviation looks name up in the States table, ignoring case.
func (c Config) StateAbbreviation(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for full, abbr := range c.States {
		if strings.EqualFold(full, name) {
			return StateKey(abbr), true
		}
	}
	return "", false
}

// Paths resolves every configured location against root.
func (c Config) Paths(root string) DataPaths {
	def := DefaultConfig()
	resolve := func(p, fallback string) string {
		if p == "" {
			p = fallback
		}
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(root, p)
	}
	return DataPaths{
		Root:         root,
		OrdersDir:    resolve(c.OrdersDir, def.OrdersDir),
		ProductsFile: resolve(c.ProductsFile, def.ProductsFile),
		TaxesFile:    resolve(c.TaxesFile, def.TaxesFile),
		ExportFile:   resolve(c.ExportFile, def.ExportFile),
	}
}

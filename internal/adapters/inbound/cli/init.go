package cli

import (
	"fmt"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/abdidvp/flooring/internal/adapters/outbound/catalog"
	"github.com/abdidvp/flooring/internal/adapters/outbound/config"
	"github.com/abdidvp/flooring/internal/domain"
)

// Starter catalog written by init when the catalog files are empty.
var (
	seedProducts = []domain.Product{
		{ProductType: "Carpet", CostPerSquareFoot: decimal.RequireFromString("2.25"), LaborCostPerSquareFoot: decimal.RequireFromString("2.10")},
		{ProductType: "Laminate", CostPerSquareFoot: decimal.RequireFromString("1.75"), LaborCostPerSquareFoot: decimal.RequireFromString("2.10")},
		{ProductType: "Tile", CostPerSquareFoot: decimal.RequireFromString("3.50"), LaborCostPerSquareFoot: decimal.RequireFromString("4.15")},
		{ProductType: "Wood", CostPerSquareFoot: decimal.RequireFromString("5.15"), LaborCostPerSquareFoot: decimal.RequireFromString("4.75")},
	}
	seedTaxes = []domain.Tax{
		{StateAbbreviation: "TX", StateName: "Texas", TaxRate: decimal.RequireFromString("4.45")},
		{StateAbbreviation: "WA", StateName: "Washington", TaxRate: decimal.RequireFromString("9.25")},
		{StateAbbreviation: "KY", StateName: "Kentucky", TaxRate: decimal.RequireFromString("6.00")},
		{StateAbbreviation: "CA", StateName: "California", TaxRate: decimal.RequireFromString("25.00")},
	}
)

func newInitCmd(opts *rootOptions) *cobra.Command {
	var (
		force  bool
		noSeed bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .flooring.yaml and starter catalogs",
		Long:  "Create a .flooring.yaml with the default layout in the data directory, and fill empty product and tax files with a starter catalog.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(opts.path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg := domain.DefaultConfig()
			if _, err := config.New().Write(root, cfg, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", domain.ConfigFileName)

			if noSeed {
				return nil
			}
			paths := cfg.Paths(root)
			added, err := seedCatalogs(paths)
			if err != nil {
				return err
			}
			if added > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d catalog entries\n", added)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing .flooring.yaml")
	cmd.Flags().BoolVar(&noSeed, "no-seed", false, "Do not write starter product and tax files")

	return cmd
}

// seedCatalogs fills empty catalogs. Catalogs that already hold entries are
// left alone.
func seedCatalogs(paths domain.DataPaths) (int, error) {
	added := 0

	products, err := catalog.NewProductRepository(paths.ProductsFile)
	if err != nil {
		return 0, err
	}
	if len(products.GetAll()) == 0 {
		for _, p := range seedProducts {
			if err := products.Add(p); err != nil {
				return added, fmt.Errorf("seeding products: %w", err)
			}
			added++
		}
	}

	taxes, err := catalog.NewTaxRepository(paths.TaxesFile)
	if err != nil {
		return added, err
	}
	if len(taxes.GetAll()) == 0 {
		for _, t := range seedTaxes {
			if err := taxes.Add(t); err != nil {
				return added, fmt.Errorf("seeding taxes: %w", err)
			}
			added++
		}
	}

	return added, nil
}

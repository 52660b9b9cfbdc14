package cli

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/abdidvp/flooring/internal/adapters/outbound/catalog"
	"github.com/abdidvp/flooring/internal/adapters/outbound/config"
	"github.com/abdidvp/flooring/internal/adapters/outbound/flatfile"
	"github.com/abdidvp/flooring/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/flooring/internal/adapters/outbound/orders"
	"github.com/abdidvp/flooring/internal/application"
	"github.com/abdidvp/flooring/internal/domain"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	path    string
	verbose bool
}

// app is one opened data root: its configuration, repositories and the
// services built on them.
type app struct {
	root    string
	cfg     domain.Config
	paths   domain.DataPaths
	orders  *application.OrderService
	catalog *application.CatalogService
	logger  *slog.Logger
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openApp loads the configuration and every data file under opts.path.
func openApp(opts *rootOptions, stderr io.Writer) (*app, error) {
	path := opts.path
	if path == "" {
		path = "."
	}
	root, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	logger := newLogger(stderr, opts.verbose)

	cfg, err := config.New().Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	paths := cfg.Paths(root)
	storeOpts := []flatfile.Option{flatfile.WithLogger(logger)}

	products, err := catalog.NewProductRepository(paths.ProductsFile, storeOpts...)
	if err != nil {
		return nil, err
	}
	taxes, err := catalog.NewTaxRepository(paths.TaxesFile, storeOpts...)
	if err != nil {
		return nil, err
	}
	orderRepo, err := orders.New(paths.OrdersDir, storeOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading orders: %w", err)
	}

	svcOpts := []application.Option{application.WithLogger(logger)}
	if git := gitinfo.New(); git.IsTracked(root) {
		svcOpts = append(svcOpts, application.WithRevisionReader(git, root))
	}

	return &app{
		root:    root,
		cfg:     cfg,
		paths:   paths,
		orders:  application.NewOrderService(orderRepo, products, taxes, cfg, paths.ExportFile, svcOpts...),
		catalog: application.NewCatalogService(products, taxes, logger),
		logger:  logger,
	}, nil
}

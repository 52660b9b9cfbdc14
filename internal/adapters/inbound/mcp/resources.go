package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/flooring/internal/application"
)

// registerResources registers the catalog resources on the given server.
func registerResources(s *server.MCPServer, catalog *application.CatalogService) {
	// 1. flooring://products - product catalog
	s.AddResource(
		mcplib.NewResource(
			"flooring://products",
			"Products",
			mcplib.WithResourceDescription("Product types with material and labor cost per square foot"),
			mcplib.WithMIMEType("application/json"),
		),
		handleProductsResource(catalog),
	)

	// 2. flooring://taxes - per-state tax rates
	s.AddResource(
		mcplib.NewResource(
			"flooring://taxes",
			"Taxes",
			mcplib.WithResourceDescription("State abbreviations, names and tax rates in percent"),
			mcplib.WithMIMEType("application/json"),
		),
		handleTaxesResource(catalog),
	)
}

func handleProductsResource(catalog *application.CatalogService) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		return jsonResource("flooring://products", catalog.ListProducts())
	}
}

func handleTaxesResource(catalog *application.CatalogService) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		return jsonResource("flooring://taxes", catalog.ListTaxes())
	}
}

func jsonResource(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

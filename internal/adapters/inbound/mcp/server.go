package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/flooring/internal/application"
)

// NewFlooringMCPServer creates a new MCP server with all flooring tools and
// resources registered on top of the given services.
func NewFlooringMCPServer(orders *application.OrderService, catalog *application.CatalogService, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"flooring",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, orders, catalog)
	registerResources(s, catalog)

	return s
}

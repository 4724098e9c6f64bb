package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftVolume", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftVolume training volume server. Summarize weekly and per-routine sets/reps/weight per muscle group under the Total, Fractional, or Direct counting method, inspect the planned entries, and search the exercise catalog."),
	)

	h := &handlers{ds: ds, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetWeeklySummary, Handler: h.getWeeklySummary},
		server.ServerTool{Tool: toolGetSessionSummary, Handler: h.getSessionSummary},
		server.ServerTool{Tool: toolGetContributions, Handler: h.getContributions},
		server.ServerTool{Tool: toolFilterExercises, Handler: h.filterExercises},
		server.ServerTool{Tool: toolListEntries, Handler: h.listEntries},
	)

	s.AddResources(
		server.ServerResource{Resource: resCatalog, Handler: h.catalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

var resCatalog = mcp.NewResource(
	"liftvolume://catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("Every catalog exercise with its primary, secondary, and tertiary muscle groups and attributes"),
	mcp.WithMIMEType("application/json"),
)

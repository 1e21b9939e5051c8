// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes the specfuse merge engine as MCP tools over stdio.
package mcpserver

import (
	"context"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/specfuse/specfuse"
)

const serverInstructions = `specfuse MCP server — bundles, aggregates, consolidates, and previews OpenAPI-shaped interface documents.

All documents are supplied inline (JSON or YAML content); the server performs no file or network I/O.

Configuration: All defaults are configurable via SPECFUSE_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- SPECFUSE_MAX_DOCUMENTS (default: 20) — maximum documents per call
- SPECFUSE_MAX_INLINE_SIZE (default: 10485760) — maximum inline document size in bytes
- SPECFUSE_AGGREGATE_NAME — default title for aggregated documents
- SPECFUSE_ENABLE_TRACKING (default: false) — tag merged elements with source provenance by default
- SPECFUSE_RESPONSE_POLICY (last-wins | first-wins) — default response collision policy
- SPECFUSE_CO2_ENABLED (default: false) — attach CO2 estimates to consolidated operations by default`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "specfuse", Version: specfuse.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "bundle",
		Description: "Resolve $ref references in a document against itself and a set of sibling documents, splicing referenced subtrees in place. Internal refs (#/...) resolve against the main document; relative refs (./sibling.yaml#/... or ../sibling.yaml#/...) resolve against the named sibling. Unresolvable refs degrade to warnings; reference cycles fail.",
	}, handleBundle)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "aggregate",
		Description: "Merge multiple interface documents into one unified document. Operations merge by method+path, schemas by name with rename-on-type-conflict, header parameters union into reusable components. Optional consolidation rules splice 2-to-1 synthetic operations into the result. Defaults for tracking and response policy are configurable via SPECFUSE_ENABLE_TRACKING and SPECFUSE_RESPONSE_POLICY env vars.",
	}, handleAggregate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "consolidate",
		Description: "Consolidate two endpoints into one synthetic operation. Endpoints are referenced as 'docIndex:METHOD:/path' against the documents array. Merged-field lists, when provided, drive the merge; otherwise the engine auto-merges the two raw operations. Set co2=true (or SPECFUSE_CO2_ENABLED) to attach a CO2 impact estimate.",
	}, handleConsolidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "preview",
		Description: "Build an ephemeral N-to-1 combined view from a list of endpoint references ('docIndex:METHOD:/path'). References that no longer resolve are skipped silently. Optionally renders the view as a spliceable OpenAPI path item when method and path are given.",
	}, handlePreview)
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}

// formatCount renders "N noun" with a plural s when n != 1.
func formatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

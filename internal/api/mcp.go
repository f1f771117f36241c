// Package api exposes the contacts session to MCP clients over stdio.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jask/mapsleads/internal/contacts"
)

// Backend is the scraping service as seen by the MCP tools.
type Backend interface {
	ListRecords(ctx context.Context) ([]contacts.Record, error)
	StartJob(ctx context.Context, segment string, locations []string) (string, error)
	Export(ctx context.Context, dir string) (string, error)
}

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Backend   Backend
	ExportDir string // default for export_csv when no dir is given
}

// browser serializes tool calls against one session.
type browser struct {
	deps MCPDeps

	mu      sync.Mutex
	session *contacts.Session
}

// NewMCPServer creates an MCP server with the contact browsing tools registered.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"mapsleads",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions("mapsleads: browse, filter and page through contacts collected by the scraping backend."),
		server.WithRecovery(),
	)
	registerTools(s, newBrowser(deps))
	return s
}

func newBrowser(deps MCPDeps) *browser {
	return &browser{deps: deps, session: contacts.NewSession()}
}

func registerTools(s *server.MCPServer, b *browser) {
	s.AddTool(
		mcp.NewTool("refresh_contacts",
			mcp.WithDescription("Fetch the full contact list from the backend, drop duplicates and return page 1 of the current filter."),
		),
		b.refresh,
	)
	s.AddTool(
		mcp.NewTool("filter_contacts",
			mcp.WithDescription("Filter loaded contacts by a case-insensitive substring over name, phone, address and segment. An empty query shows everything."),
			mcp.WithString("query", mcp.Description("Substring to match")),
		),
		b.filter,
	)
	s.AddTool(
		mcp.NewTool("change_page",
			mcp.WithDescription("Move one page forward or back. Out of range moves are ignored."),
			mcp.WithString("direction", mcp.Description("next or prev"), mcp.Required(), mcp.Enum("next", "prev")),
		),
		b.changePage,
	)
	s.AddTool(
		mcp.NewTool("current_page",
			mcp.WithDescription("Return the current page without changing anything."),
		),
		b.currentPage,
	)
	s.AddTool(
		mcp.NewTool("start_job",
			mcp.WithDescription("Ask the backend to start scraping a business segment across one or more locations."),
			mcp.WithString("segment", mcp.Description("Business segment, e.g. 'Oficina mecânica'"), mcp.Required()),
			mcp.WithArray("locations", mcp.Description("Locations such as 'Curitiba, PR, Brasil'"), mcp.Required(), mcp.WithStringItems()),
		),
		b.startJob,
	)
	s.AddTool(
		mcp.NewTool("export_csv",
			mcp.WithDescription("Download the backend's CSV export and save it to a directory."),
			mcp.WithString("dir", mcp.Description("Target directory; defaults to the configured export dir")),
		),
		b.export,
	)
}

func (b *browser) refresh(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recs, err := b.deps.Backend.ListRecords(ctx)
	if err != nil {
		slog.Warn("mcp refresh failed", "error", err)
		return mcpError(fmt.Sprintf("loading contacts: %v", err)), nil
	}

	b.mu.Lock()
	stats := b.session.Ingest(recs)
	rm := b.session.Render()
	b.mu.Unlock()

	return mcpJSON(struct {
		contacts.RenderModel
		Received   int `json:"received"`
		Duplicates int `json:"duplicates"`
	}{rm, stats.Received, stats.Duplicates})
}

func (b *browser) filter(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")

	b.mu.Lock()
	b.session.Filter(query)
	rm := b.session.Render()
	b.mu.Unlock()

	return mcpJSON(rm)
}

func (b *browser) changePage(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("direction")
	if err != nil {
		return mcpError("direction is required"), nil
	}
	dir, ok := contacts.ParseDirection(raw)
	if !ok {
		return mcpError(fmt.Sprintf("unknown direction %q: use next or prev", raw)), nil
	}

	b.mu.Lock()
	b.session.Advance(dir)
	rm := b.session.Render()
	b.mu.Unlock()

	return mcpJSON(rm)
}

func (b *browser) currentPage(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b.mu.Lock()
	rm := b.session.Render()
	b.mu.Unlock()

	return mcpJSON(rm)
}

func (b *browser) startJob(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	segment := req.GetString("segment", "")
	locations := req.GetStringSlice("locations", nil)

	msg, err := b.deps.Backend.StartJob(ctx, segment, locations)
	if err != nil {
		return mcpError(err.Error()), nil
	}
	return mcpText(msg), nil
}

func (b *browser) export(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir := req.GetString("dir", b.deps.ExportDir)
	if dir == "" {
		dir = "."
	}
	path, err := b.deps.Backend.Export(ctx, dir)
	if err != nil {
		return mcpError(err.Error()), nil
	}
	return mcpText(path), nil
}

func mcpJSON(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcpError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcpText(string(data)), nil
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}

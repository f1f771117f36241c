package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jask/mapsleads/internal/backend"
	"github.com/jask/mapsleads/internal/contacts"
)

// --- mocks ---

type mockBackend struct {
	mu        sync.Mutex
	records   []contacts.Record
	listErr   error
	segment   string
	locations []string
	exportDir string
}

func (m *mockBackend) ListRecords(context.Context) ([]contacts.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records, m.listErr
}

func (m *mockBackend) StartJob(_ context.Context, segment string, locations []string) (string, error) {
	req := backend.NewStartJobRequest(segment, locations)
	if err := req.Validate(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.segment, m.locations = req.Segment, req.Locations
	return fmt.Sprintf("Busca configurada para '%s' em %d locais.", req.Segment, len(req.Locations)), nil
}

func (m *mockBackend) Export(_ context.Context, dir string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exportDir = dir
	return dir + "/contatos_extraidos.csv", nil
}

// --- helpers ---

func numbered(n int) []contacts.Record {
	out := make([]contacts.Record, n)
	for i := range out {
		out[i] = contacts.Record{Key: fmt.Sprintf("k%02d", i), Name: fmt.Sprintf("Contact %02d", i)}
	}
	return out
}

func toolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("no content in result")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return tc.Text
}

func makeCallToolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func renderModel(t *testing.T, result *mcp.CallToolResult) contacts.RenderModel {
	t.Helper()
	if result.IsError {
		t.Fatalf("unexpected error: %s", toolText(t, result))
	}
	var rm contacts.RenderModel
	if err := json.Unmarshal([]byte(toolText(t, result)), &rm); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return rm
}

// --- tests ---

func TestMCPTool_RefreshReturnsFirstPage(t *testing.T) {
	recs := numbered(45)
	recs = append(recs, recs[3])
	b := newBrowser(MCPDeps{Backend: &mockBackend{records: recs}})

	result, err := b.refresh(context.Background(), makeCallToolRequest("refresh_contacts", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rm := renderModel(t, result)
	if rm.Total != 45 || rm.TotalPages != 3 || rm.Cursor != 1 || len(rm.Rows) != 20 {
		t.Fatalf("unexpected page: total=%d pages=%d page=%d rows=%d", rm.Total, rm.TotalPages, rm.Cursor, len(rm.Rows))
	}
	if !strings.Contains(toolText(t, result), `"duplicates":1`) {
		t.Fatalf("expected duplicate count, got %s", toolText(t, result))
	}
}

func TestMCPTool_RefreshErrorKeepsSession(t *testing.T) {
	mb := &mockBackend{records: numbered(5)}
	b := newBrowser(MCPDeps{Backend: mb})
	if _, err := b.refresh(context.Background(), makeCallToolRequest("refresh_contacts", nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mb.listErr = errors.New("connection refused")
	result, err := b.refresh(context.Background(), makeCallToolRequest("refresh_contacts", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result")
	}

	current, _ := b.currentPage(context.Background(), makeCallToolRequest("current_page", nil))
	if rm := renderModel(t, current); rm.Total != 5 {
		t.Fatalf("expected dataset kept, got %d", rm.Total)
	}
}

func TestMCPTool_FilterAndPaging(t *testing.T) {
	b := newBrowser(MCPDeps{Backend: &mockBackend{records: numbered(45)}})
	ctx := context.Background()
	_, _ = b.refresh(ctx, makeCallToolRequest("refresh_contacts", nil))

	for i := 0; i < 5; i++ {
		_, _ = b.changePage(ctx, makeCallToolRequest("change_page", map[string]interface{}{"direction": "next"}))
	}
	current, _ := b.currentPage(ctx, makeCallToolRequest("current_page", nil))
	if rm := renderModel(t, current); rm.Cursor != 3 || rm.NextEnabled || len(rm.Rows) != 5 {
		t.Fatalf("expected clamp at last page, got page=%d next=%v rows=%d", rm.Cursor, rm.NextEnabled, len(rm.Rows))
	}

	result, _ := b.filter(ctx, makeCallToolRequest("filter_contacts", map[string]interface{}{"query": "CONTACT 4"}))
	rm := renderModel(t, result)
	if rm.Cursor != 1 || rm.Count != 5 || rm.Query != "CONTACT 4" {
		t.Fatalf("unexpected filtered view: page=%d count=%d query=%q", rm.Cursor, rm.Count, rm.Query)
	}

	result, _ = b.filter(ctx, makeCallToolRequest("filter_contacts", map[string]interface{}{"query": "no such contact"}))
	rm = renderModel(t, result)
	if rm.Cursor != 1 || rm.TotalPages != 1 || len(rm.Rows) != 0 || rm.PrevEnabled || rm.NextEnabled {
		t.Fatalf("unexpected empty view: %+v", rm)
	}
}

func TestMCPTool_ChangePageRejectsUnknownDirection(t *testing.T) {
	b := newBrowser(MCPDeps{Backend: &mockBackend{}})

	result, err := b.changePage(context.Background(), makeCallToolRequest("change_page", map[string]interface{}{"direction": "sideways"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result")
	}

	result, _ = b.changePage(context.Background(), makeCallToolRequest("change_page", nil))
	if !result.IsError {
		t.Fatal("expected error for missing direction")
	}
}

func TestMCPTool_StartJob(t *testing.T) {
	mb := &mockBackend{}
	b := newBrowser(MCPDeps{Backend: mb})

	result, err := b.startJob(context.Background(), makeCallToolRequest("start_job", map[string]interface{}{
		"segment":   "Padaria",
		"locations": []interface{}{"Curitiba, PR, Brasil", " "},
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error: %s", toolText(t, result))
	}
	if mb.segment != "Padaria" || len(mb.locations) != 1 {
		t.Fatalf("unexpected job: %q %v", mb.segment, mb.locations)
	}
	if !strings.Contains(toolText(t, result), "Padaria") {
		t.Fatalf("expected backend message, got %s", toolText(t, result))
	}
}

func TestMCPTool_StartJobValidation(t *testing.T) {
	b := newBrowser(MCPDeps{Backend: &mockBackend{}})

	result, err := b.startJob(context.Background(), makeCallToolRequest("start_job", map[string]interface{}{
		"segment":   "",
		"locations": []interface{}{},
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected validation error")
	}
}

func TestMCPTool_ExportDefaultsDir(t *testing.T) {
	mb := &mockBackend{}
	b := newBrowser(MCPDeps{Backend: mb, ExportDir: "/data/exports"})

	result, _ := b.export(context.Background(), makeCallToolRequest("export_csv", nil))
	if result.IsError || mb.exportDir != "/data/exports" {
		t.Fatalf("expected default dir, got %q (%s)", mb.exportDir, toolText(t, result))
	}

	_, _ = b.export(context.Background(), makeCallToolRequest("export_csv", map[string]interface{}{"dir": "/tmp"}))
	if mb.exportDir != "/tmp" {
		t.Fatalf("expected explicit dir, got %q", mb.exportDir)
	}
}

func TestNewMCPServerRegistersTools(t *testing.T) {
	s := NewMCPServer(MCPDeps{Backend: &mockBackend{}})
	if s == nil {
		t.Fatal("expected server")
	}
}

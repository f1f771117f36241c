package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/jask/mapsleads/internal/api"
	"github.com/jask/mapsleads/internal/config"
	"github.com/jask/mapsleads/internal/contacts"
	"github.com/jask/mapsleads/internal/tui"
)

// --- browse ---

var browseCmd = &cobra.Command{
	Use:         "browse",
	Short:       "Browse contacts interactively (default)",
	Annotations: map[string]string{logToFileAnnotation: "true"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runBrowse(cmd)
	},
}

func runBrowse(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := tui.New(ctx, cfg, newClient())
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// --- list ---

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print one page of contacts",
	Long: `Print one page of contacts.

Examples:
  mapsleads list
  mapsleads list --query oficina --page 2
  mapsleads list --json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		query, _ := cmd.Flags().GetString("query")
		page, _ := cmd.Flags().GetInt("page")
		asJSON, _ := cmd.Flags().GetBool("json")

		recs, err := newClient().ListRecords(cmd.Context())
		if err != nil {
			return err
		}

		session := contacts.NewSession()
		stats := session.Ingest(recs)
		slog.Debug("records ingested", "received", stats.Received, "kept", stats.Kept, "duplicates", stats.Duplicates)

		session.Filter(query)
		for i := 1; i < page && session.Render().NextEnabled; i++ {
			session.Next()
		}
		rm := session.Render()

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rm)
		}
		renderContacts(cmd.OutOrStdout(), rm)
		return nil
	},
}

func init() {
	listCmd.Flags().StringP("query", "q", "", "case-insensitive substring filter")
	listCmd.Flags().IntP("page", "p", 1, "page number, clamped to the last page")
	listCmd.Flags().Bool("json", false, "print the page as JSON")
}

func renderContacts(w io.Writer, rm contacts.RenderModel) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, 0, len(contacts.Headers))
	for _, h := range contacts.Headers {
		header = append(header, h)
	}
	t.AppendHeader(header)
	for _, r := range rm.Rows {
		t.AppendRow(table.Row{r.Name, r.Phone, r.Address, r.Segment})
	}
	t.Render()

	fmt.Fprintf(w, "Page %d of %d  (%d of %d contacts)\n", rm.Cursor, rm.TotalPages, rm.Count, rm.Total)
}

// --- start ---

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a scraping job",
	Long: `Start a scraping job on the backend.

Examples:
  mapsleads start --segment "Oficina mecânica" --location "Curitiba, PR, Brasil"
  mapsleads start -s Padaria -l "Ivaí, PR, Brasil" -l "São Paulo, SP, Brasil"`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		segment, _ := cmd.Flags().GetString("segment")
		locations, _ := cmd.Flags().GetStringArray("location")
		if len(locations) == 0 && cfg.UI.DefaultLocation != "" {
			locations = []string{cfg.UI.DefaultLocation}
		}

		msg, err := newClient().StartJob(cmd.Context(), segment, locations)
		if err != nil {
			return err
		}
		printSuccess(cmd.OutOrStdout(), "%s", msg)
		return nil
	},
}

func init() {
	startCmd.Flags().StringP("segment", "s", "", "business segment to search for")
	startCmd.Flags().StringArrayP("location", "l", nil, "location to search in (repeatable; defaults to ui.default_location)")
}

// --- export ---

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the CSV export",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" {
			dir = cfg.Export.Dir
		}
		path, err := newClient().Export(cmd.Context(), dir)
		if err != nil {
			return err
		}
		printSuccess(cmd.OutOrStdout(), "Saved %s", path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("dir", "d", "", "target directory (default export.dir)")
}

// --- mcp ---

var mcpCmd = &cobra.Command{
	Use:         "mcp",
	Short:       "Serve the contact browser as MCP tools over stdio",
	Annotations: map[string]string{logToFileAnnotation: "true"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		mcpSrv := api.NewMCPServer(api.MCPDeps{Backend: newClient(), ExportDir: cfg.Export.Dir})
		stdioSrv := server.NewStdioServer(mcpSrv)
		slog.Info("MCP server started (stdio transport)")
		if err := stdioSrv.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("mcp stdio: %w", err)
		}
		return nil
	},
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or initialize configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		t := table.NewWriter()
		t.SetOutputMirror(cmd.OutOrStdout())
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Key", "Env", "Value"})
		for _, e := range config.Entries(cfg) {
			t.AppendRow(table.Row{e.Key, e.EnvVar, e.Value})
		}
		t.Render()
		printStatus(cmd.OutOrStdout(), "File", "%s", configPath())
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path := configPath()

		if _, err := os.Stat(path); err == nil && !force {
			printWarning(cmd.ErrOrStderr(), "%s already exists (use --force to overwrite)", path)
			return nil
		}
		if err := config.Save(cfg, path); err != nil {
			return err
		}
		printSuccess(cmd.OutOrStdout(), "Wrote %s", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func configPath() string {
	if cfgPath != "" {
		return cfgPath
	}
	return config.Path()
}

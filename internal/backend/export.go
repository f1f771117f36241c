package backend

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
)

// DefaultExportName is used when the backend does not name the download.
const DefaultExportName = "contatos_extraidos.csv"

// ExportTo streams the backend's CSV export into w and returns the file name
// the backend suggested. The body is copied as-is.
func (c *Client) ExportTo(ctx context.Context, w io.Writer) (string, error) {
	const op = "export records"

	resp, err := c.do(ctx, op, http.MethodGet, c.paths.ExportPath, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if !success(resp) {
		return "", rejected(op, resp)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", &TransportError{Op: op, Err: err}
	}
	return attachmentName(resp.Header.Get("Content-Disposition")), nil
}

// Export downloads the CSV export into dir and returns the written path.
func (c *Client) Export(ctx context.Context, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir export dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".mapsleads-export-*")
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after rename

	name, err := c.ExportTo(ctx, tmp)
	if cerr := tmp.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close export file: %w", cerr)
	}
	if err != nil {
		return "", err
	}

	dest := filepath.Join(dir, name)
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("save export: %w", err)
	}
	return dest, nil
}

func attachmentName(header string) string {
	if header == "" {
		return DefaultExportName
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return DefaultExportName
	}
	name := filepath.Base(params["filename"])
	switch name {
	case "", ".", "..", string(filepath.Separator):
		return DefaultExportName
	}
	return name
}

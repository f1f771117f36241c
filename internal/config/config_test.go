package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:5000", cfg.Backend.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "/api/start_scraping", cfg.Backend.StartJobPath)
	assert.Equal(t, "/api/contacts", cfg.Backend.ListRecordsPath)
	assert.Equal(t, "/api/download_csv", cfg.Backend.ExportPath)
	assert.Equal(t, 5*time.Second, cfg.UI.NoticeTTL)
	assert.Equal(t, "São Paulo, SP, Brasil", cfg.UI.DefaultLocation)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NotEmpty(t, cfg.Export.Dir)
}

func TestLoadFileReadsTOML(t *testing.T) {
	path := writeTempConfig(t, `[backend]
base_url = "http://scraper.internal:8080"
timeout = "2s"

[ui]
notice_ttl = "1500ms"
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "http://scraper.internal:8080", cfg.Backend.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.UI.NoticeTTL)
	assert.Equal(t, "/api/contacts", cfg.Backend.ListRecordsPath)
}

func TestLoadFileEnvOverride(t *testing.T) {
	path := writeTempConfig(t, `[backend]
base_url = "http://from-file"
`)
	t.Setenv("MAPSLEADS_BACKEND_BASE_URL", "http://from-env")
	t.Setenv("MAPSLEADS_LOG_LEVEL", "debug")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env", cfg.Backend.BaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	path := writeTempConfig(t, `[backend]
timeout = "-1s"
`)
	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend.timeout")
}

func TestLoadFileRejectsMalformedTOML(t *testing.T) {
	path := writeTempConfig(t, "[backend\nbase_url = ")
	_, err := LoadFile(path)
	require.Error(t, err)
}

func TestPathHonoursEnv(t *testing.T) {
	t.Setenv("MAPSLEADS_CONFIG", "/tmp/custom.toml")
	assert.Equal(t, "/tmp/custom.toml", Path())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	cfg.Backend.BaseURL = "http://saved:9000"
	cfg.UI.NoticeTTL = 3 * time.Second

	require.NoError(t, Save(cfg, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://saved:9000", loaded.Backend.BaseURL)
	assert.Equal(t, 3*time.Second, loaded.UI.NoticeTTL)
}

func TestEntriesEnvNames(t *testing.T) {
	entries := Entries(Config{})
	require.NotEmpty(t, entries)
	assert.Equal(t, "backend.base_url", entries[0].Key)
	assert.Equal(t, "MAPSLEADS_BACKEND_BASE_URL", entries[0].EnvVar)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

const appName = "mapsleads"

// Config holds application configuration.
type Config struct {
	Backend BackendConfig `mapstructure:"backend"`
	Export  ExportConfig  `mapstructure:"export"`
	UI      UIConfig      `mapstructure:"ui"`
	Log     LogConfig     `mapstructure:"log"`
}

// BackendConfig points at the scraping service.
type BackendConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	StartJobPath    string        `mapstructure:"start_job_path"`
	ListRecordsPath string        `mapstructure:"list_records_path"`
	ExportPath      string        `mapstructure:"export_path"`
}

// ExportConfig controls where CSV downloads land.
type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	NoticeTTL       time.Duration `mapstructure:"notice_ttl"`
	DefaultLocation string        `mapstructure:"default_location"`
}

// LogConfig holds slog settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend.base_url", "http://127.0.0.1:5000")
	v.SetDefault("backend.timeout", "30s")
	v.SetDefault("backend.start_job_path", "/api/start_scraping")
	v.SetDefault("backend.list_records_path", "/api/contacts")
	v.SetDefault("backend.export_path", "/api/download_csv")
	v.SetDefault("export.dir", defaultExportDir())
	v.SetDefault("ui.notice_ttl", "5s")
	v.SetDefault("ui.default_location", "São Paulo, SP, Brasil")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(xdg.StateHome, appName, appName+".log"))
}

func defaultExportDir() string {
	if xdg.UserDirs.Download != "" {
		return xdg.UserDirs.Download
	}
	return "."
}

// Path returns the config file location. MAPSLEADS_CONFIG wins over the XDG default.
func Path() string {
	if p := os.Getenv("MAPSLEADS_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix MAPSLEADS_.
func Load() (Config, error) {
	return LoadFile(Path())
}

// LoadFile is Load with an explicit config path. A missing file is not an error.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(path)

	v.SetEnvPrefix("MAPSLEADS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !missingFile(err) {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func missingFile(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// Validate rejects configurations the client cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Backend.BaseURL) == "" {
		return errors.New("config: backend.base_url is empty")
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("config: backend.timeout must be positive, got %s", c.Backend.Timeout)
	}
	if c.UI.NoticeTTL <= 0 {
		return fmt.Errorf("config: ui.notice_ttl must be positive, got %s", c.UI.NoticeTTL)
	}
	return nil
}

// Save writes the provided config to path, creating the directory if needed.
func Save(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	for _, e := range Entries(cfg) {
		v.Set(e.Key, e.Value)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Entry is one flattened config key for display or persistence.
type Entry struct {
	Key    string
	EnvVar string
	Value  string
}

// Entries flattens cfg in a stable order.
func Entries(cfg Config) []Entry {
	pairs := []struct{ key, val string }{
		{"backend.base_url", cfg.Backend.BaseURL},
		{"backend.timeout", cfg.Backend.Timeout.String()},
		{"backend.start_job_path", cfg.Backend.StartJobPath},
		{"backend.list_records_path", cfg.Backend.ListRecordsPath},
		{"backend.export_path", cfg.Backend.ExportPath},
		{"export.dir", cfg.Export.Dir},
		{"ui.notice_ttl", cfg.UI.NoticeTTL.String()},
		{"ui.default_location", cfg.UI.DefaultLocation},
		{"log.level", cfg.Log.Level},
		{"log.file", cfg.Log.File},
	}
	out := make([]Entry, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, Entry{
			Key:    p.key,
			EnvVar: "MAPSLEADS_" + strings.ToUpper(strings.ReplaceAll(p.key, ".", "_")),
			Value:  p.val,
		})
	}
	return out
}

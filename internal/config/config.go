// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/weekgrid/internal/availability"
)

// Storage drivers.
const (
	DriverSQLite = "sqlite"
	DriverHTTP   = "http"
)

// Config holds the application configuration.
type Config struct {
	Editor  EditorConfig  `toml:"editor"`
	Storage StorageConfig `toml:"storage"`
	Server  ServerConfig  `toml:"server"`
	LLM     LLMConfig     `toml:"llm"`
	Log     LogConfig     `toml:"log"`
}

// EditorConfig holds TUI editor settings.
type EditorConfig struct {
	Provider      string `toml:"provider"`       // provider id whose availability is edited
	DefaultPreset string `toml:"default_preset"` // "MORNING", "AFTERNOON", "EVENING", "FULL"
	Theme         string `toml:"theme"`          // "mocha", "macchiato", "frappe", "latte", "light"
}

// StorageConfig selects where availability is persisted.
type StorageConfig struct {
	Driver  string `toml:"driver"`   // "sqlite" or "http"
	DBPath  string `toml:"db_path"`  // sqlite only
	BaseURL string `toml:"base_url"` // http only, e.g. "http://localhost:8080"
	Timeout string `toml:"timeout"`  // http only, e.g. "10s"
}

// ServerConfig holds settings for `weekgrid serve`.
type ServerConfig struct {
	Addr           string   `toml:"addr"`            // e.g. ":8080"
	RedisAddr      string   `toml:"redis_addr"`      // empty means in-process locks
	LockTTL        string   `toml:"lock_ttl"`        // e.g. "10s"
	RateLimit      int      `toml:"rate_limit"`      // requests per second per IP, 0 disables
	AllowedOrigins []string `toml:"allowed_origins"` // CORS origins
}

// LLMConfig holds LLM provider settings.
type LLMConfig struct {
	Provider string `toml:"provider"` // "ollama", "lmstudio", "openai"
	Model    string `toml:"model"`    // e.g., "llama3.2"
	BaseURL  string `toml:"base_url"` // e.g., "http://localhost:11434"
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level     string `toml:"level"`      // "debug", "info", "warn", "error"
	DebugPath string `toml:"debug_path"` // TUI debug log file, used with --debug
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			Provider:      "default",
			DefaultPreset: string(availability.PresetFull),
			Theme:         "frappe",
		},
		Storage: StorageConfig{
			Driver:  DriverSQLite,
			DBPath:  defaultDBPath(),
			BaseURL: "http://localhost:8080",
			Timeout: "10s",
		},
		Server: ServerConfig{
			Addr:           ":8080",
			LockTTL:        "10s",
			RateLimit:      20,
			AllowedOrigins: []string{"*"},
		},
		LLM: LLMConfig{
			Provider: "ollama",
			Model:    "llama3.2",
			BaseURL:  "http://localhost:11434",
		},
		Log: LogConfig{
			Level:     "info",
			DebugPath: "weekgrid-debug.log",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "weekgrid.db"
	}
	return filepath.Join(home, ".local", "share", "weekgrid", "weekgrid.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "weekgrid", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Log.DebugPath = expandPath(cfg.Log.DebugPath)
	cfg.Editor.DefaultPreset = strings.ToUpper(cfg.Editor.DefaultPreset)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	// Editor overrides
	if v := os.Getenv("WEEKGRID_PROVIDER"); v != "" {
		cfg.Editor.Provider = v
	}
	if v := os.Getenv("WEEKGRID_PRESET"); v != "" {
		cfg.Editor.DefaultPreset = v
	}
	if v := os.Getenv("WEEKGRID_THEME"); v != "" {
		cfg.Editor.Theme = v
	}

	// Storage overrides
	if v := os.Getenv("WEEKGRID_STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("WEEKGRID_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("WEEKGRID_BASE_URL"); v != "" {
		cfg.Storage.BaseURL = v
	}

	// Server overrides
	if v := os.Getenv("WEEKGRID_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("WEEKGRID_REDIS_ADDR"); v != "" {
		cfg.Server.RedisAddr = v
	}
	if v := os.Getenv("WEEKGRID_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.RateLimit = n
		}
	}

	// LLM overrides
	if v := os.Getenv("WEEKGRID_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("WEEKGRID_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("WEEKGRID_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	// Log overrides
	if v := os.Getenv("WEEKGRID_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Editor.Provider) == "" {
		return errors.New("editor.provider must be set")
	}
	if _, err := availability.ParsePreset(c.Editor.DefaultPreset); err != nil {
		return fmt.Errorf("editor.default_preset: %w", err)
	}

	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.DBPath == "" {
			return errors.New("db_path must be set")
		}
	case DriverHTTP:
		if c.Storage.BaseURL == "" {
			return errors.New("base_url must be set for the http driver")
		}
	default:
		return fmt.Errorf("storage.driver must be %q or %q, got %q", DriverSQLite, DriverHTTP, c.Storage.Driver)
	}
	if err := validateDuration(c.Storage.Timeout, "storage.timeout"); err != nil {
		return err
	}
	if err := validateDuration(c.Server.LockTTL, "server.lock_ttl"); err != nil {
		return err
	}
	if c.Server.RateLimit < 0 {
		return errors.New("server.rate_limit cannot be negative")
	}
	return nil
}

func validateDuration(v, field string) error {
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s must be a duration like \"10s\", got %q", field, v)
	}
	if d <= 0 {
		return fmt.Errorf("%s must be positive, got %q", field, v)
	}
	return nil
}

// Preset returns the configured default preset.
func (c *Config) Preset() availability.Preset {
	p, err := availability.ParsePreset(c.Editor.DefaultPreset)
	if err != nil {
		return availability.PresetFull
	}
	return p
}

// StorageTimeout returns the HTTP storage timeout.
func (c *Config) StorageTimeout() time.Duration {
	d, err := time.ParseDuration(c.Storage.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// LockTTL returns how long the server holds a provider lock during a save.
func (c *Config) LockTTL() time.Duration {
	d, err := time.ParseDuration(c.Server.LockTTL)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

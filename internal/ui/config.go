package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekgrid/internal/availability"
	"github.com/javiermolinar/weekgrid/internal/config"
	"github.com/javiermolinar/weekgrid/internal/llm"
	"github.com/javiermolinar/weekgrid/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  weekgrid config
  weekgrid config --show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if show {
				printConfig(cmd.OutOrStdout(), a.config)
				return nil
			}
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), config.DefaultConfigPath())
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Print the effective configuration and exit")
	return cmd
}

func runConfigInteractive(in io.Reader, out io.Writer, configPath string) error {
	fmt.Fprintf(out, "Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Editor.Provider = promptValue(reader, out, "Provider id", cfg.Editor.Provider)
	cfg.Editor.DefaultPreset = promptPreset(reader, out, cfg.Editor.DefaultPreset)
	cfg.Editor.Theme = promptTheme(reader, out, cfg.Editor.Theme)
	cfg.Storage.Driver = promptValue(reader, out, "Storage driver (sqlite, http)", cfg.Storage.Driver)
	if cfg.Storage.Driver == config.DriverHTTP {
		cfg.Storage.BaseURL = promptValue(reader, out, "Availability service URL", cfg.Storage.BaseURL)
		cfg.Storage.Timeout = promptValue(reader, out, "Request timeout", cfg.Storage.Timeout)
	} else {
		cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	}
	cfg.Server.Addr = promptValue(reader, out, "Server listen address", cfg.Server.Addr)
	cfg.Server.RedisAddr = promptValue(reader, out, "Redis address (empty for in-process locks)", cfg.Server.RedisAddr)
	cfg.Server.RateLimit = promptInt(reader, out, "Rate limit per IP (req/s, 0 disables)", cfg.Server.RateLimit)
	cfg.Server.AllowedOrigins = promptSlice(reader, out, "Allowed origins (comma-separated)", cfg.Server.AllowedOrigins)
	cfg.LLM.Provider = promptValue(reader, out, fmt.Sprintf("LLM provider (%s)", strings.Join(llm.Providers(), ", ")), cfg.LLM.Provider)
	cfg.LLM.Model = promptValue(reader, out, "LLM model", cfg.LLM.Model)
	cfg.LLM.BaseURL = promptValue(reader, out, "LLM base URL", cfg.LLM.BaseURL)
	cfg.Log.Level = promptValue(reader, out, "Log level", cfg.Log.Level)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[editor]")
	fmt.Fprintf(w, "  provider         = %s\n", cfg.Editor.Provider)
	fmt.Fprintf(w, "  default_preset   = %s\n", cfg.Editor.DefaultPreset)
	fmt.Fprintf(w, "  theme            = %s\n", cfg.Editor.Theme)
	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  driver           = %s\n", cfg.Storage.Driver)
	if cfg.Storage.Driver == config.DriverHTTP {
		fmt.Fprintf(w, "  base_url         = %s\n", cfg.Storage.BaseURL)
		fmt.Fprintf(w, "  timeout          = %s\n", cfg.Storage.Timeout)
	} else {
		fmt.Fprintf(w, "  db_path          = %s\n", cfg.Storage.DBPath)
	}
	fmt.Fprintln(w, "\n[server]")
	fmt.Fprintf(w, "  addr             = %s\n", cfg.Server.Addr)
	if cfg.Server.RedisAddr != "" {
		fmt.Fprintf(w, "  redis_addr       = %s\n", cfg.Server.RedisAddr)
	}
	fmt.Fprintf(w, "  lock_ttl         = %s\n", cfg.Server.LockTTL)
	fmt.Fprintf(w, "  rate_limit       = %d\n", cfg.Server.RateLimit)
	fmt.Fprintf(w, "  allowed_origins  = %s\n", strings.Join(cfg.Server.AllowedOrigins, ", "))
	fmt.Fprintln(w, "\n[llm]")
	fmt.Fprintf(w, "  provider         = %s\n", cfg.LLM.Provider)
	fmt.Fprintf(w, "  model            = %s\n", cfg.LLM.Model)
	fmt.Fprintf(w, "  base_url         = %s\n", cfg.LLM.BaseURL)
	fmt.Fprintln(w, "\n[log]")
	fmt.Fprintf(w, "  level            = %s\n", cfg.Log.Level)
	fmt.Fprintf(w, "  debug_path       = %s\n", cfg.Log.DebugPath)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, out, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil && n >= 0 {
			return n
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
	}
}

func promptSlice(reader *bufio.Reader, out io.Writer, label string, current []string) []string {
	currentStr := strings.Join(current, ", ")
	fmt.Fprintf(out, "  %s [%s]: ", label, currentStr)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func promptPreset(reader *bufio.Reader, out io.Writer, current string) string {
	names := make([]string, 0, len(availability.Presets()))
	for _, p := range availability.Presets() {
		names = append(names, string(p))
	}
	label := fmt.Sprintf("Default preset (%s)", strings.Join(names, ", "))
	for {
		value := promptValue(reader, out, label, current)
		p, err := availability.ParsePreset(value)
		if err == nil {
			return string(p)
		}
		fmt.Fprintf(out, "  Invalid preset %q\n", value)
	}
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
	}
}

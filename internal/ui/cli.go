// Package ui implements the weekgrid command line.
package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/weekgrid/internal/availability"
	"github.com/javiermolinar/weekgrid/internal/config"
	"github.com/javiermolinar/weekgrid/internal/db"
	"github.com/javiermolinar/weekgrid/internal/llm"
	"github.com/javiermolinar/weekgrid/internal/remote"
	"github.com/javiermolinar/weekgrid/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// GatewayFactory opens the persistence gateway for a config.
type GatewayFactory func(cfg *config.Config) (availability.Gateway, error)

// App holds the CLI application state.
type App struct {
	config      *config.Config
	log         *zap.Logger
	openGateway GatewayFactory
	gateway     availability.Gateway
	root        *cobra.Command

	provider string // --provider override
	debug    bool   // Enable debug logging
}

// AppOption configures an App.
type AppOption func(*App)

// WithGatewayFactory replaces the config-driven gateway selection.
func WithGatewayFactory(f GatewayFactory) AppOption {
	return func(a *App) {
		a.openGateway = f
	}
}

// NewApp creates a new CLI application for cfg.
func NewApp(cfg *config.Config, log *zap.Logger, opts ...AppOption) *App {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{config: cfg, log: log, openGateway: OpenGateway}
	for _, opt := range opts {
		opt(a)
	}

	a.root = &cobra.Command{
		Use:   "weekgrid",
		Short: "Edit weekly recurring availability",
		Long: `Weekgrid edits a provider's weekly recurring availability on a
7-day by 48-slot grid. Paint cells with the mouse, drag with shift for
rectangles, or drive it from the keyboard.

Without a subcommand it opens the interactive editor.`,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runEditor()
		},
	}

	a.root.PersistentFlags().StringVarP(&a.provider, "provider", "p", "", "Provider id (defaults to editor.provider)")
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to log.debug_path)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.showCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.providersCmd())
	a.root.AddCommand(a.describeCmd())
	a.root.AddCommand(a.serveCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "weekgrid %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the gateway if one was opened.
func (a *App) Close() error {
	if a.gateway == nil {
		return nil
	}
	err := a.gateway.Close()
	a.gateway = nil
	return err
}

// Root exposes the root command, mainly so tests can set args and output.
func (a *App) Root() *cobra.Command {
	return a.root
}

func (a *App) runEditor() error {
	gw, err := a.ensureGateway()
	if err != nil {
		return err
	}

	cfg := *a.config
	cfg.Editor.Provider = a.providerID()
	if cfg.Editor.Provider == "" {
		return availability.ErrEmptyProvider
	}

	var opts []tui.ModelOption
	if d, err := a.describer(); err == nil {
		opts = append(opts, tui.WithDescriber(d))
	} else {
		a.log.Debug("describe prompt disabled", zap.Error(err))
	}

	debugPath := ""
	if a.debug {
		debugPath = a.config.Log.DebugPath
		if debugPath == "" {
			debugPath = tui.DefaultDebugLogPath
		}
	}
	return tui.RunWithDebug(&cfg, gw, debugPath, opts...)
}

// ensureGateway opens the configured gateway once.
func (a *App) ensureGateway() (availability.Gateway, error) {
	if a.gateway != nil {
		return a.gateway, nil
	}
	gw, err := a.openGateway(a.config)
	if err != nil {
		return nil, err
	}
	a.gateway = gw
	return gw, nil
}

func (a *App) providerID() string {
	if p := strings.TrimSpace(a.provider); p != "" {
		return p
	}
	return strings.TrimSpace(a.config.Editor.Provider)
}

func (a *App) describer() (*llm.Describer, error) {
	client, err := llm.NewClient(a.config.LLM.Provider, a.config.LLM.Model, a.config.LLM.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("creating LLM client: %w", err)
	}
	return llm.NewDescriber(client), nil
}

// OpenGateway opens the gateway selected by storage.driver.
func OpenGateway(cfg *config.Config) (availability.Gateway, error) {
	switch cfg.Storage.Driver {
	case "", config.DriverSQLite:
		if cfg.Storage.DBPath == "" {
			return nil, fmt.Errorf("db path is empty")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.Storage.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		repo, err := db.New(cfg.Storage.DBPath)
		if err != nil {
			return nil, fmt.Errorf("initializing database: %w", err)
		}
		return repo, nil
	case config.DriverHTTP:
		client, err := remote.New(cfg.Storage.BaseURL, cfg.StorageTimeout())
		if err != nil {
			return nil, fmt.Errorf("creating remote client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

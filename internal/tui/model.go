package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekgrid/internal/availability"
	"github.com/javiermolinar/weekgrid/internal/config"
	"github.com/javiermolinar/weekgrid/internal/editor"
	"github.com/javiermolinar/weekgrid/internal/tui/commands"
	"github.com/javiermolinar/weekgrid/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt      // describe prompt has focus
	ModeModal
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModePrompt:
		return "prompt"
	case ModeModal:
		return "modal"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone ModalType = iota
	ModalHelp
	ModalConfirmDiscard
	ModalConfirmReload
)

const (
	statusDuration = 3 * time.Second
	errorDuration  = 6 * time.Second
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	config    *config.Config
	gateway   availability.Gateway
	describer commands.Describer
	timeout   time.Duration
	clipboard func(string) error

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Editing core
	session    *editor.Session
	controller *editor.Controller
	dispatcher *editor.Dispatcher

	// State
	cursor     availability.Cell
	keyRect    bool // rectangle started with the keyboard
	scroll     int
	mode       Mode
	modalType  ModalType
	loading    bool
	describing bool
	quitArmed  bool

	prompt  textinput.Model
	overlay OverlayModel

	// Terminal dimensions and layout
	width  int
	height int
	layout GridLayout

	// Messages
	statusMsg  string
	statusErr  bool
	statusTime time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithDescriber enables the describe prompt.
func WithDescriber(d commands.Describer) ModelOption {
	return func(m *Model) {
		m.describer = d
	}
}

// WithClipboard replaces the system clipboard writer used by copy.
func WithClipboard(write func(string) error) ModelOption {
	return func(m *Model) {
		m.clipboard = write
	}
}

// WithTimeout bounds load, save and describe calls.
func WithTimeout(d time.Duration) ModelOption {
	return func(m *Model) {
		m.timeout = d
	}
}

// New creates a new TUI model editing cfg.Editor.Provider through gateway.
func New(cfg *config.Config, gateway availability.Gateway, opts ...ModelOption) *Model {
	t, err := theme.Load(cfg.Editor.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}
	styles := NewStyles(t)

	ti := textinput.New()
	ti.Placeholder = "weekdays 9 to 5, saturday mornings"
	ti.Prompt = ""
	ti.CharLimit = 512

	m := &Model{
		config:    cfg,
		gateway:   gateway,
		timeout:   cfg.StorageTimeout(),
		clipboard: clipboard.WriteAll,
		theme:     t,
		styles:    styles,
		mode:      ModeNormal,
		loading:   true,
		prompt:    ti,
		overlay:   NewOverlayModel(),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.session = editor.NewSession(cfg.Editor.Provider, cfg.Preset())
	m.layout = NewGridLayout(0, 0, m.session.VisibleRange(), 0)
	m.controller = editor.NewController(m.session, m.layout)
	m.dispatcher = editor.NewDispatcher(m.session, m.controller,
		editor.WithSystemClipboard(m.clipboard),
		editor.WithLogger(debugLog),
	)
	m.cursor = availability.Cell{Day: availability.Saturday, Slot: m.session.VisibleRange().Min}
	m.overlay.SetBackground(styles.ModalBackdropColor)

	return m
}

// Init loads the provider's availability.
func (m Model) Init() tea.Cmd {
	return commands.Load(m.gateway, m.session.ProviderID(), m.timeout)
}

// Session exposes the editing session, mainly for callers that inspect the
// final state after the program exits.
func (m Model) Session() *editor.Session {
	return m.session
}

// Run starts the TUI.
func Run(cfg *config.Config, gateway availability.Gateway, opts ...ModelOption) error {
	return RunWithDebug(cfg, gateway, "", opts...)
}

// RunWithDebug starts the TUI, writing debug events to debugPath when it is set.
func RunWithDebug(cfg *config.Config, gateway availability.Gateway, debugPath string, opts ...ModelOption) error {
	if err := InitDebugLogger(debugPath); err != nil {
		return err
	}
	defer CloseDebugLogger()

	model := New(cfg, gateway, opts...)
	p := tea.NewProgram(*model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := finalModel.(Model); ok && fm.session.HasChanges() {
		fmt.Printf("Exited with unsaved changes on %d day(s)\n", len(fm.session.DirtyDays()))
	}
	return nil
}

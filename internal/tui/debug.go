package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/weekgrid/internal/availability"
	"github.com/javiermolinar/weekgrid/internal/editor"
	"github.com/javiermolinar/weekgrid/internal/logging"
)

// DefaultDebugLogPath is used by --debug when the config leaves the path empty.
const DefaultDebugLogPath = "weekgrid-debug.log"

// debugLog records keys, pointer events, gesture transitions and command
// outcomes. It is a no-op logger unless InitDebugLogger enabled it.
var debugLog = zap.NewNop()

// InitDebugLogger starts writing debug events to path. An empty path
// leaves debug logging off.
func InitDebugLogger(path string) error {
	if path == "" {
		debugLog = zap.NewNop()
		return nil
	}

	logger, err := logging.NewFile(path)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}
	debugLog = logger.Named("tui")
	debugLog.Debug("debug start", zap.String("log_file", path))
	return nil
}

// CloseDebugLogger flushes the debug log.
func CloseDebugLogger() {
	debugLog.Debug("debug end")
	_ = debugLog.Sync()
	debugLog = zap.NewNop()
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	debugLog.Debug("key press", zap.String("key", msg.String()))
}

// LogMouse logs a mouse event with its modifiers.
func LogMouse(msg tea.MouseMsg) {
	debugLog.Debug("mouse",
		zap.String("event", msg.String()),
		zap.Int("x", msg.X),
		zap.Int("y", msg.Y),
		zap.Bool("shift", msg.Shift),
		zap.Bool("alt", msg.Alt),
		zap.Bool("ctrl", msg.Ctrl),
	)
}

// LogGesture logs a controller state transition.
func LogGesture(from, to editor.State, cell availability.Cell) {
	if from == to {
		return
	}
	debugLog.Debug("gesture",
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Stringer("day", cell.Day),
		zap.Int("slot", cell.Slot),
	)
}

// LogModeChange logs a mode change.
func LogModeChange(from, to Mode, reason string) {
	if from == to {
		return
	}
	debugLog.Debug("mode change",
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.String("reason", reason),
	)
}

// LogCommand logs the outcome of a toolbar command.
func LogCommand(name string, result editor.Result, err error) {
	if err != nil {
		debugLog.Debug("command rejected", zap.String("command", name), zap.Error(err))
		return
	}
	debugLog.Debug("command",
		zap.String("command", name),
		zap.Bool("changed", result.Changed),
		zap.String("notice", result.Notice),
	)
}

// LogError logs an error.
func LogError(context string, err error) {
	debugLog.Error(context, zap.Error(err))
}

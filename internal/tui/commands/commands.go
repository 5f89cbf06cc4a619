// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/weekgrid/internal/availability"
)

// DefaultTimeout bounds a single load, save or describe round trip.
const DefaultTimeout = 30 * time.Second

// Describer turns free text into intervals.
type Describer interface {
	Describe(ctx context.Context, text string) ([]availability.Interval, error)
}

// LoadedMsg is sent when a provider's availability is loaded.
type LoadedMsg struct {
	ProviderID string
	Intervals  []availability.Interval
}

// SavedMsg is sent when a save succeeds. Matrix is the state that was sent.
type SavedMsg struct {
	Matrix    availability.Matrix
	Intervals int
}

// SaveFailedMsg is sent when a save fails.
type SaveFailedMsg struct {
	Err error
}

// DescribedMsg is sent when the describer returns intervals.
type DescribedMsg struct {
	Text      string
	Intervals []availability.Interval
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// Load fetches the intervals for providerID.
func Load(gateway availability.Gateway, providerID string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), orDefault(timeout))
		defer cancel()

		intervals, err := gateway.LoadAvailability(ctx, providerID)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading availability: %w", err)}
		}
		return LoadedMsg{ProviderID: providerID, Intervals: intervals}
	}
}

// Save persists intervals for providerID. m is echoed back in SavedMsg so the
// caller can move its baseline to exactly what was stored.
func Save(gateway availability.Gateway, providerID string, intervals []availability.Interval, m availability.Matrix, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), orDefault(timeout))
		defer cancel()

		if err := gateway.SaveAvailability(ctx, providerID, intervals); err != nil {
			return SaveFailedMsg{Err: err}
		}
		return SavedMsg{Matrix: m, Intervals: len(intervals)}
	}
}

// Describe asks the describer to turn text into intervals.
func Describe(describer Describer, text string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		if describer == nil {
			return ErrMsg{Err: fmt.Errorf("no LLM provider configured")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), orDefault(timeout))
		defer cancel()

		intervals, err := describer.Describe(ctx, text)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return DescribedMsg{Text: text, Intervals: intervals}
	}
}

// ClearStatusAfter emits ClearStatusMsg once d has elapsed.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

func orDefault(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return DefaultTimeout
	}
	return timeout
}

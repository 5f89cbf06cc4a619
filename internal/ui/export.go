package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekgrid/internal/availability"
)

// Export formats.
const (
	formatJSON = "json"
	formatText = "text"
)

func (a *App) exportCmd() *cobra.Command {
	var format string
	var output string
	var toClipboard bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a provider's availability",
		Long: `Write the provider's normalized availability intervals as JSON
(the same shape the HTTP service accepts) or as plain text.

Examples:
  weekgrid export -p tutor-42 > tutor-42.json
  weekgrid export --format text --clipboard`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			intervals, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			intervals = availability.Normalize(intervals)

			data, err := renderExport(intervals, format)
			if err != nil {
				return err
			}

			switch {
			case toClipboard:
				if err := clipboard.WriteAll(string(data)); err != nil {
					return fmt.Errorf("writing clipboard: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Copied %d interval(s) to the clipboard\n", len(intervals))
			case output != "" && output != "-":
				path, err := resolvePath(output)
				if err != nil {
					return err
				}
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d interval(s) to %s\n", len(intervals), path)
			default:
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "Output format: json or text")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	cmd.Flags().BoolVar(&toClipboard, "clipboard", false, "Copy the output to the system clipboard")
	return cmd
}

func renderExport(intervals []availability.Interval, format string) ([]byte, error) {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(intervals, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding intervals: %w", err)
		}
		return append(data, '\n'), nil
	case formatText:
		var buf bytes.Buffer
		PrintIntervals(&buf, intervals)
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown format %q, want %s or %s", format, formatJSON, formatText)
	}
}

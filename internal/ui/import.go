package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekgrid/internal/availability"
)

func (a *App) importCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Replace a provider's availability from a JSON file",
		Long: `Read a JSON array of intervals and store it as the provider's
availability. Overlapping intervals are merged and invalid ones dropped.
Use "-" to read from stdin.

Example:
  weekgrid import -p tutor-42 tutor-42.json
  weekgrid export -p tutor-42 | weekgrid import -p tutor-43 -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			intervals, err := readIntervals(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			normalized := availability.Normalize(intervals)

			out := cmd.OutOrStdout()
			if len(normalized) != len(intervals) {
				fmt.Fprintln(out, formatNotice(fmt.Sprintf("Normalized %d record(s) into %d interval(s)", len(intervals), len(normalized))))
			}
			if dryRun {
				PrintIntervals(out, normalized)
				return nil
			}

			providerID := a.providerID()
			if err := a.store(cmd.Context(), providerID, normalized); err != nil {
				return err
			}
			fmt.Fprintf(out, "Imported %d interval(s) for %s\n", len(normalized), providerID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the normalized intervals without saving")
	return cmd
}

func readIntervals(stdin io.Reader, path string) ([]availability.Interval, error) {
	var r io.Reader
	if path == "-" {
		r = stdin
	} else {
		resolved, err := resolvePath(path)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(resolved)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("file does not exist: %s", resolved)
			}
			return nil, fmt.Errorf("checking file: %w", err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("path is a directory: %s", resolved)
		}
		f, err := os.Open(resolved)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", resolved, err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	var intervals []availability.Interval
	if err := json.NewDecoder(r).Decode(&intervals); err != nil {
		return nil, fmt.Errorf("decoding intervals: %w", err)
	}
	return intervals, nil
}

// store saves intervals for providerID through the gateway.
func (a *App) store(ctx context.Context, providerID string, intervals []availability.Interval) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if providerID == "" {
		return availability.ErrEmptyProvider
	}
	gw, err := a.ensureGateway()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.StorageTimeout())
	defer cancel()
	if err := gw.SaveAvailability(ctx, providerID, intervals); err != nil {
		return fmt.Errorf("saving availability: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}

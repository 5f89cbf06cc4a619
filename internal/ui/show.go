package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekgrid/internal/availability"
)

func (a *App) showCmd() *cobra.Command {
	var verbose bool
	var noColor bool
	var preset string
	var hideIdle bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a provider's weekly availability",
		Long: `Display the week as one bar per day, with hours available per day
and weekly totals. Use --preset to zoom into part of the day.

Example:
  weekgrid show -p tutor-42 --preset morning -v`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configureColor(cmd.OutOrStdout(), noColor)

			r := availability.FullDay
			if preset != "" {
				p, err := availability.ParsePreset(preset)
				if err != nil {
					return err
				}
				r = p.Range()
			}

			intervals, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "=== %s ===\n\n", formatLabel(a.providerID()))
			PrintWeek(out, availability.Decode(intervals), PrintOpts{
				Range:    r,
				Verbose:  verbose,
				HideIdle: hideIdle,
			})
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List intervals under each day")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	cmd.Flags().StringVar(&preset, "preset", "", "Only draw MORNING, AFTERNOON, EVENING or FULL")
	cmd.Flags().BoolVar(&hideIdle, "hide-idle", false, "Skip days with no availability")
	return cmd
}

// load fetches the selected provider's intervals.
func (a *App) load(ctx context.Context) ([]availability.Interval, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	providerID := a.providerID()
	if providerID == "" {
		return nil, availability.ErrEmptyProvider
	}
	gw, err := a.ensureGateway()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.StorageTimeout())
	defer cancel()
	intervals, err := gw.LoadAvailability(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("loading availability: %w", err)
	}
	return intervals, nil
}

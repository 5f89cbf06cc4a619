package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/weekgrid/internal/availability"
)

// describeTimeout bounds a single LLM round trip.
const describeTimeout = 60 * time.Second

func (a *App) describeCmd() *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "describe [text...]",
		Short: "Turn a plain-language description into availability",
		Long: `Ask the configured LLM to translate a description such as
"weekdays 9 to 5, saturday mornings" into intervals. The result is printed;
use --apply to replace the provider's stored availability with it.

Example:
  weekgrid describe -p tutor-42 "mon-fri 18:00-21:00" --apply`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return errors.New("description is empty")
			}

			d, err := a.describer()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, cancel := context.WithTimeout(ctx, describeTimeout)
			defer cancel()

			a.log.Debug("describing availability",
				zap.String("provider", a.config.LLM.Provider),
				zap.String("model", a.config.LLM.Model),
			)
			intervals, err := d.Describe(ctx, text)
			if err != nil {
				return fmt.Errorf("describing availability: %w", err)
			}
			intervals = availability.Normalize(intervals)

			out := cmd.OutOrStdout()
			PrintIntervals(out, intervals)
			if !apply {
				return nil
			}

			providerID := a.providerID()
			if err := a.store(cmd.Context(), providerID, intervals); err != nil {
				return err
			}
			fmt.Fprintf(out, "Saved %d interval(s) for %s\n", len(intervals), providerID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Replace the stored availability with the result")
	return cmd
}

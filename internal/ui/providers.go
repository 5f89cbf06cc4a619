package ui

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekgrid/internal/availability"
)

func (a *App) providersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List providers with stored availability",
		Long: `List every provider that has availability stored, with the number
of intervals and when it was last saved.

Example:
  weekgrid providers`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gw, err := a.ensureGateway()
			if err != nil {
				return err
			}
			lister, ok := gw.(availability.Lister)
			if !ok {
				return errors.New("storage driver cannot list providers")
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, cancel := context.WithTimeout(ctx, a.config.StorageTimeout())
			defer cancel()

			providers, err := lister.ListProviders(ctx)
			if err != nil {
				return fmt.Errorf("listing providers: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(providers) == 0 {
				fmt.Fprintln(out, formatNotice("No providers yet."))
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "PROVIDER\tINTERVALS\tUPDATED")
			for _, p := range providers {
				updated := "-"
				if !p.UpdatedAt.IsZero() {
					updated = p.UpdatedAt.Local().Format(time.DateTime)
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\n", p.ID, p.Intervals, updated)
			}
			return tw.Flush()
		},
	}
}

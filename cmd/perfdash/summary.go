package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/performance-dashboard/internal/cli"
	"github.com/Veraticus/performance-dashboard/internal/report"
	"github.com/Veraticus/performance-dashboard/internal/transform"
)

func summaryCmd() *cobra.Command {
	var window int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Compare the latest window against the one before it",
		Long: `Sum every metric over the latest N distinct dates and the N dates before
them, and show the percentage change for each along with CTR, CVR, CPI and ROAS.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := newDashboard(nil, stderrNotifier(cmd.ErrOrStderr()), true)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("window") {
				window = d.cfg.WindowDays
			}
			if window < 1 || window > transform.MaxWindowDays {
				return fmt.Errorf("--window must be from 1 to %d, got %d", transform.MaxWindowDays, window)
			}

			s := report.BuildSummary(d.records(cmd.Context()), window)
			return cli.RenderSummary(cmd.OutOrStdout(), s)
		},
	}

	cmd.Flags().IntVarP(&window, "window", "w", 7, "comparison window in days")
	return cmd
}

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/performance-dashboard/internal/cli"
	"github.com/Veraticus/performance-dashboard/internal/config"
	"github.com/Veraticus/performance-dashboard/internal/export"
	"github.com/Veraticus/performance-dashboard/internal/model"
	"github.com/Veraticus/performance-dashboard/internal/transform"
)

func exportCmd() *cobra.Command {
	var (
		dbPath      string
		granularity string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Snapshot the loaded records into SQLite",
		Long: `Write every parsed record, and the bucket totals at the chosen granularity,
into a SQLite database. Existing rows are replaced.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := model.ParseGranularity(granularity)
			if err != nil {
				return err
			}

			d, err := newDashboard(nil, stderrNotifier(cmd.ErrOrStderr()), true)
			if err != nil {
				return err
			}
			records := d.records(cmd.Context())
			if len(records) == 0 {
				return fmt.Errorf("no records loaded; nothing to export")
			}

			exp, err := export.OpenSQLite(config.ExpandPath(dbPath))
			if err != nil {
				return err
			}
			defer func() {
				if cerr := exp.Close(); cerr != nil {
					slog.Warn("failed to close export database", "error", cerr)
				}
			}()

			n, err := exp.WriteRecords(cmd.Context(), records)
			if err != nil {
				return err
			}
			if err := exp.WriteTotals(cmd.Context(), g, transform.Aggregate(records, g)); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.PositiveStyle.Render(
				fmt.Sprintf("Exported %d records to %s", n, exp.Path())))
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "sqlite", "~/.local/share/perfdash/perfdash.db", "SQLite database path")
	cmd.Flags().StringVarP(&granularity, "granularity", "g", string(model.Weekly), "bucket size for totals (Daily, Weekly, Monthly)")
	return cmd
}

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/performance-dashboard/internal/cli"
	"github.com/Veraticus/performance-dashboard/internal/model"
	"github.com/Veraticus/performance-dashboard/internal/report"
)

func trendCmd() *cobra.Command {
	var (
		granularity string
		from        string
		to          string
		product     string
		metrics     []string
	)

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show bucketed totals and KPIs over a date range",
		Long: `Aggregate metrics into Daily, Weekly or Monthly buckets. The range defaults
to all loaded dates; --from and --to are clamped to the data, and --product
further limits the range to that product's configured window.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := model.ParseGranularity(granularity)
			if err != nil {
				return err
			}
			query := report.TrendQuery{Granularity: g, Product: product}
			if query.From, err = parseFlagDate("from", from); err != nil {
				return err
			}
			if query.To, err = parseFlagDate("to", to); err != nil {
				return err
			}

			d, err := newDashboard(nil, stderrNotifier(cmd.ErrOrStderr()), true)
			if err != nil {
				return err
			}

			trend, err := report.BuildTrend(d.records(cmd.Context()), d.productEntries(), query)
			if err != nil {
				return err
			}
			return cli.RenderTrend(cmd.OutOrStdout(), trend, metrics)
		},
	}

	cmd.Flags().StringVarP(&granularity, "granularity", "g", string(model.Weekly), "bucket size (Daily, Weekly, Monthly)")
	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&product, "product", "p", "", "limit to a product's date window")
	cmd.Flags().StringSliceVarP(&metrics, "metrics", "m",
		[]string{model.MetricImpressions, model.MetricClicks, model.MetricInstalls, model.MetricCost},
		"metric columns to show")
	return cmd
}

func parseFlagDate(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(model.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s must be YYYY-MM-DD, got %q", name, value)
	}
	return t, nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"

	"github.com/Veraticus/performance-dashboard/internal/cli"
	"github.com/Veraticus/performance-dashboard/internal/common"
	"github.com/Veraticus/performance-dashboard/internal/config"
	"github.com/Veraticus/performance-dashboard/internal/loader"
	"github.com/Veraticus/performance-dashboard/internal/model"
	"github.com/Veraticus/performance-dashboard/internal/products"
	"github.com/Veraticus/performance-dashboard/internal/sheets"
	"github.com/Veraticus/performance-dashboard/internal/telemetry"
)

// stderrNotifier prints loader failures the way the CLI prints errors.
func stderrNotifier(w io.Writer) common.Notifier {
	return common.NotifierFunc(func(msg string, err error) {
		if err != nil {
			msg = fmt.Sprintf("%s: %v", msg, err)
		}
		fmt.Fprintln(w, cli.FormatError(msg))
	})
}

// dashboard bundles the resolved configuration with the loaders built from it.
type dashboard struct {
	cfg      *config.Dashboard
	data     *loader.DataLoader
	products *products.Loader
}

// newDashboard resolves configuration and wires the sheet reader behind the
// loader cache. With spinner set, misses show a spinner on stderr.
func newDashboard(reg prometheus.Registerer, notifier common.Notifier, spinner bool) (*dashboard, error) {
	cfg, err := config.LoadDashboardConfig(viper.GetViper())
	if err != nil {
		return nil, common.NewUserError(
			"Dashboard is not configured: set sheets.url in the config file or GOOGLE_SHEETS_URL.", err)
	}

	var reader loader.TableReader = sheets.NewReader(nil, slog.Default())
	if spinner {
		reader = cli.SpinnerReader{Reader: reader, Writer: os.Stderr}
	}

	return &dashboard{
		cfg: cfg,
		data: loader.New(reader, loader.Config{
			Notifier: notifier,
			Metrics:  telemetry.NewMetrics(reg),
			TTL:      cfg.CacheTTL,
		}),
		products: products.NewLoader(notifier, products.WithTTL(cfg.CacheTTL)),
	}, nil
}

func (d *dashboard) records(ctx context.Context) []model.Record {
	return d.data.Records(ctx, d.cfg.Source())
}

func (d *dashboard) productEntries() []products.Entry {
	return d.products.Load(d.cfg.ProductDatesFile)
}

// productDatesPath resolves the product file without requiring sheet settings.
func productDatesPath() string {
	config.SetDefaults(viper.GetViper())
	return config.ExpandPath(viper.GetString(config.KeyProductDates))
}

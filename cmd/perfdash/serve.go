package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/Veraticus/performance-dashboard/internal/common"
	"github.com/Veraticus/performance-dashboard/internal/httpx"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard views as a JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := slog.Default()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			d, err := newDashboard(reg, common.LogNotifier{Logger: logger}, false)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr: addr,
				Handler: httpx.NewRouter(httpx.Deps{
					Records:    d.records,
					Products:   d.productEntries,
					Gatherer:   reg,
					Logger:     logger,
					WindowDays: d.cfg.WindowDays,
				}),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("starting server", slog.String("addr", addr))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			logger.Info("shutting down server")
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

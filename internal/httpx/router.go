// Package httpx serves the dashboard views as JSON.
package httpx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Veraticus/performance-dashboard/internal/common"
	"github.com/Veraticus/performance-dashboard/internal/model"
	"github.com/Veraticus/performance-dashboard/internal/products"
	"github.com/Veraticus/performance-dashboard/internal/report"
	"github.com/Veraticus/performance-dashboard/internal/transform"
)

// DefaultGranularity is used by /api/trend when none is given.
const DefaultGranularity = model.Weekly

// Deps are the data sources behind the API.
type Deps struct {
	Records    func(ctx context.Context) []model.Record
	Products   func() []products.Entry
	Gatherer   prometheus.Gatherer
	Logger     *slog.Logger
	WindowDays int
}

type api struct {
	deps Deps
}

// NewRouter builds the API handler.
func NewRouter(deps Deps) http.Handler {
	deps.Logger = common.LoggerOrDefault(deps.Logger)
	if deps.WindowDays < 1 {
		deps.WindowDays = 7
	}
	if deps.Products == nil {
		deps.Products = func() []products.Entry { return []products.Entry{} }
	}
	a := &api{deps: deps}

	mux := chi.NewRouter()
	mux.Use(RequestID)
	mux.Use(Logger(deps.Logger))
	mux.Use(middleware.Recoverer)

	mux.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.Route("/api", func(r chi.Router) {
		r.Get("/summary", a.summary)
		r.Get("/trend", a.trend)
		r.Get("/products", a.products)
		r.Get("/palette", a.palette)
	})

	if deps.Gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	return mux
}

func (a *api) summary(w http.ResponseWriter, r *http.Request) {
	days := a.deps.WindowDays
	if q := r.URL.Query().Get("window"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 || n > transform.MaxWindowDays {
			writeError(w, http.StatusBadRequest, fmt.Errorf("window must be an integer from 1 to %d, got %q", transform.MaxWindowDays, q))
			return
		}
		days = n
	}

	s := report.BuildSummary(a.deps.Records(r.Context()), days)
	writeJSON(w, http.StatusOK, toSummaryJSON(s))
}

func (a *api) trend(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := report.TrendQuery{Granularity: DefaultGranularity, Product: q.Get("product")}

	if g := q.Get("granularity"); g != "" {
		parsed, err := model.ParseGranularity(g)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		query.Granularity = parsed
	}

	var err error
	if query.From, err = queryDate(q.Get("from")); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if query.To, err = queryDate(q.Get("to")); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var entries []products.Entry
	if query.Product != "" {
		entries = a.deps.Products()
	}

	t, err := report.BuildTrend(a.deps.Records(r.Context()), entries, query)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, common.ErrUnknownProduct) {
			status = http.StatusNotFound
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, toTrendJSON(t))
}

func (a *api) products(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.deps.Products())
}

func (a *api) palette(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name := q.Get("name")
	if name == "" {
		name = transform.DefaultPalette
	}

	n := 5
	if s := q.Get("n"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("n must be a non-negative integer, got %q", s))
			return
		}
		n = v
	}

	reverse, _ := strconv.ParseBool(q.Get("reverse"))

	colors, err := transform.ColorPalette(name, n, reverse)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"name": name, "colors": colors})
}

func queryDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q (want %s)", s, model.DateLayout)
	}
	return t, nil
}

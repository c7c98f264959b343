package httpx

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/performance-dashboard/internal/model"
	"github.com/Veraticus/performance-dashboard/internal/products"
	"github.com/Veraticus/performance-dashboard/internal/telemetry"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func testRecords() []model.Record {
	records := make([]model.Record, 0, 20)
	for d := 1; d <= 20; d++ {
		records = append(records, model.Record{
			Date: day(d),
			Metrics: map[string]float64{
				model.MetricImpressions: 1000,
				model.MetricClicks:      float64(d),
			},
		})
	}
	return records
}

func newTestServer(t *testing.T, records []model.Record) *httptest.Server {
	t.Helper()
	reg := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(reg)
	metrics.CacheLookup("sheet", true)

	h := NewRouter(Deps{
		Records: func(context.Context) []model.Record { return records },
		Products: func() []products.Entry {
			return []products.Entry{{
				Name:      "Deposit",
				StartDate: products.Date{Time: day(5)},
				EndDate:   products.Date{Time: day(9)},
			}}
		},
		Gatherer:   reg,
		WindowDays: 7,
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL+path, nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, body := get(t, srv, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestSummaryEndpoint(t *testing.T) {
	srv := newTestServer(t, testRecords())

	t.Run("default window", func(t *testing.T) {
		resp, body := get(t, srv, "/api/summary")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got map[string]any
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, true, got["available"])
		assert.InDelta(t, 7, got["window_days"], 0)
		assert.Equal(t, map[string]any{"start": "2024-01-14", "end": "2024-01-20"}, got["current"])
	})

	t.Run("unavailable window encodes null", func(t *testing.T) {
		resp, body := get(t, srv, "/api/summary?window=30")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got struct {
			Current   *rangeJSON       `json:"current"`
			Deltas    []map[string]any `json:"deltas"`
			Available bool             `json:"available"`
		}
		require.NoError(t, json.Unmarshal(body, &got))
		assert.False(t, got.Available)
		assert.Nil(t, got.Current)
		require.NotEmpty(t, got.Deltas)
		assert.Nil(t, got.Deltas[0]["change"])
	})

	for _, window := range []string{"zero", "0", "3661", "4611686018427387904"} {
		t.Run("bad window "+window, func(t *testing.T) {
			resp, _ := get(t, srv, "/api/summary?window="+window)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestTrendEndpoint(t *testing.T) {
	srv := newTestServer(t, testRecords())

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBucket int
	}{
		{name: "default weekly", path: "/api/trend", wantStatus: http.StatusOK, wantBucket: 3},
		{name: "daily range", path: "/api/trend?granularity=daily&from=2024-01-02&to=2024-01-04", wantStatus: http.StatusOK, wantBucket: 3},
		{name: "product", path: "/api/trend?granularity=Daily&product=Deposit", wantStatus: http.StatusOK, wantBucket: 5},
		{name: "unknown product", path: "/api/trend?product=Nope", wantStatus: http.StatusNotFound},
		{name: "bad granularity", path: "/api/trend?granularity=Hourly", wantStatus: http.StatusBadRequest},
		{name: "bad date", path: "/api/trend?from=01-02-2024", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, srv, tt.path)
			require.Equal(t, tt.wantStatus, resp.StatusCode, string(body))
			if tt.wantStatus != http.StatusOK {
				return
			}
			var got trendJSON
			require.NoError(t, json.Unmarshal(body, &got))
			assert.Len(t, got.Buckets, tt.wantBucket)
		})
	}
}

func TestProductsAndPalette(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, body := get(t, srv, "/api/products")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"start_date": "2024-01-05"`)

	resp, body = get(t, srv, "/api/palette?name=Blues&n=3&reverse=true")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got struct {
		Name   string   `json:"name"`
		Colors []string `json:"colors"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, []string{"#08306b", "#6baed6", "#f7fbff"}, got.Colors)

	resp, _ = get(t, srv, "/api/palette?name=Rainbow")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, body := get(t, srv, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `perfdash_cache_lookups_total{cache="sheet",result="hit"} 1`)
}

func TestNumberMarshal(t *testing.T) {
	b, err := json.Marshal(map[string]Number{"a": 0.5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":0.5}`, string(b))

	b, err = json.Marshal([]Number{Number(math.NaN())})
	require.NoError(t, err)
	assert.Equal(t, `[null]`, string(b))
}

package report

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/performance-dashboard/internal/common"
	"github.com/Veraticus/performance-dashboard/internal/model"
	"github.com/Veraticus/performance-dashboard/internal/products"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

// dailyRecords returns one record per day from Jan 1 to Jan n with clicks
// equal to the day of month.
func dailyRecords(n int) []model.Record {
	records := make([]model.Record, 0, n)
	for d := 1; d <= n; d++ {
		records = append(records, model.Record{
			Date: day(d),
			Metrics: map[string]float64{
				model.MetricClicks:      float64(d),
				model.MetricImpressions: 100,
			},
		})
	}
	return records
}

func TestBuildSummary(t *testing.T) {
	t.Run("available", func(t *testing.T) {
		s := BuildSummary(dailyRecords(20), 7)
		require.True(t, s.Available)
		assert.Equal(t, day(14), s.Current.Range.Start)
		assert.Equal(t, day(20), s.Current.Range.End)
		assert.Equal(t, day(7), s.Previous.Range.Start)
		assert.Equal(t, day(13), s.Previous.Range.End)
		assert.Len(t, s.Deltas, len(model.Metrics))

		// clicks: 14..20 = 119, 7..13 = 70
		for _, d := range s.Deltas {
			if d.Metric == model.MetricClicks {
				assert.InDelta(t, 119, d.Current, 1e-9)
				assert.InDelta(t, 70, d.Previous, 1e-9)
				assert.InDelta(t, 0.7, d.Change, 1e-9)
			}
		}
		assert.InDelta(t, 119.0/700.0, s.CurrentKPI.CTR, 1e-9)
	})

	t.Run("not enough dates", func(t *testing.T) {
		s := BuildSummary(dailyRecords(10), 7)
		assert.False(t, s.Available)
		assert.Nil(t, s.Current)
		assert.True(t, math.IsNaN(s.CurrentKPI.CTR))
		for _, d := range s.Deltas {
			assert.True(t, math.IsNaN(d.Change), d.Metric)
		}
	})
}

func TestBuildTrend(t *testing.T) {
	records := dailyRecords(31)
	entries := []products.Entry{
		{Name: "Deposit", StartDate: products.Date{Time: day(10)}, EndDate: products.Date{Time: day(12)}},
		{Name: "Legacy", StartDate: products.Date{Time: day(1).AddDate(-1, 0, 0)}, EndDate: products.Date{Time: day(2).AddDate(-1, 0, 0)}},
	}

	tests := []struct {
		name      string
		query     TrendQuery
		wantRange model.DateRange
		wantRows  int
		buckets   int
	}{
		{
			name:      "full range weekly",
			query:     TrendQuery{Granularity: model.Weekly},
			wantRange: model.DateRange{Start: day(1), End: day(31)},
			wantRows:  31,
			buckets:   5,
		},
		{
			name:      "explicit range daily",
			query:     TrendQuery{Granularity: model.Daily, From: day(5), To: day(8)},
			wantRange: model.DateRange{Start: day(5), End: day(8)},
			wantRows:  4,
			buckets:   4,
		},
		{
			name:      "inverted and clamped",
			query:     TrendQuery{Granularity: model.Monthly, From: day(20), To: day(1).AddDate(0, 0, -5)},
			wantRange: model.DateRange{Start: day(1), End: day(20)},
			wantRows:  20,
			buckets:   1,
		},
		{
			name:      "product window",
			query:     TrendQuery{Granularity: model.Daily, Product: "deposit"},
			wantRange: model.DateRange{Start: day(10), End: day(12)},
			wantRows:  3,
			buckets:   3,
		},
		{
			name:      "product window outside data",
			query:     TrendQuery{Granularity: model.Daily, Product: "Legacy"},
			wantRange: model.DateRange{Start: day(1).AddDate(-1, 0, 0), End: day(2).AddDate(-1, 0, 0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend, err := BuildTrend(records, entries, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRange, trend.Range)
			assert.Len(t, trend.Totals, tt.buckets)
			assert.Len(t, trend.KPIs, tt.buckets)

			rows := 0
			for _, bt := range trend.Totals {
				rows += bt.Rows
			}
			assert.Equal(t, tt.wantRows, rows)
		})
	}

	t.Run("unknown product", func(t *testing.T) {
		_, err := BuildTrend(records, entries, TrendQuery{Granularity: model.Daily, Product: "nope"})
		require.ErrorIs(t, err, common.ErrUnknownProduct)
	})

	t.Run("no records", func(t *testing.T) {
		trend, err := BuildTrend(nil, entries, TrendQuery{Granularity: model.Daily})
		require.NoError(t, err)
		assert.Empty(t, trend.Totals)
	})
}

// Package report assembles the dashboard views from parsed records. The CLI
// and the HTTP server render the same Summary and Trend values.
package report

import (
	"fmt"
	"time"

	"github.com/Veraticus/performance-dashboard/internal/common"
	"github.com/Veraticus/performance-dashboard/internal/model"
	"github.com/Veraticus/performance-dashboard/internal/products"
	"github.com/Veraticus/performance-dashboard/internal/transform"
)

// Summary compares the latest window of records against the one before it.
type Summary struct {
	Current     *transform.Period
	Previous    *transform.Period
	Deltas      []transform.Delta
	CurrentKPI  transform.KPIs
	PreviousKPI transform.KPIs
	WindowDays  int
	Available   bool
}

// BuildSummary compares windows of days over every metric column.
func BuildSummary(records []model.Record, days int) Summary {
	deltas, current, previous, ok := transform.Compare(records, days, model.Metrics)
	return Summary{
		WindowDays:  days,
		Available:   ok,
		Current:     current,
		Previous:    previous,
		Deltas:      deltas,
		CurrentKPI:  transform.PeriodKPIs(current),
		PreviousKPI: transform.PeriodKPIs(previous),
	}
}

// TrendQuery selects the records a Trend covers. Zero From or To fall back to
// the data bounds.
type TrendQuery struct {
	From        time.Time
	To          time.Time
	Granularity model.Granularity
	Product     string
}

// Trend is the bucketed view of a date range.
type Trend struct {
	Range       model.DateRange
	Granularity model.Granularity
	Product     string
	Totals      []transform.BucketTotals
	KPIs        []transform.KPIs
}

// BuildTrend filters records to the query range and aggregates them. When a
// product is named its window further bounds the range.
func BuildTrend(records []model.Record, entries []products.Entry, q TrendQuery) (Trend, error) {
	trend := Trend{Granularity: q.Granularity, Product: q.Product}

	bounds, ok := model.Span(records)
	if !ok {
		trend.Range = model.DateRange{Start: q.From, End: q.To}
		return trend, nil
	}

	if q.Product != "" {
		entry, found := products.Find(entries, q.Product)
		if !found {
			return trend, fmt.Errorf("%w: %q", common.ErrUnknownProduct, q.Product)
		}
		trend.Product = entry.Name
		window := entry.Range()
		if window.End.Before(bounds.Start) || window.Start.After(bounds.End) {
			trend.Range = window
			return trend, nil
		}
		bounds = model.DateRange{
			Start: latest(bounds.Start, window.Start),
			End:   earliest(bounds.End, window.End),
		}
	}

	var selection []time.Time
	if !q.From.IsZero() || !q.To.IsZero() {
		selection = []time.Time{q.From, q.To}
	}
	trend.Range = transform.NormalizeDateRange(selection, bounds.Start, bounds.End)
	trend.Totals = transform.Aggregate(model.FilterRange(records, trend.Range), q.Granularity)
	trend.KPIs = transform.KPISeries(trend.Totals)
	return trend, nil
}

func latest(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earliest(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

package transform

import (
	"math"
	"sort"
	"time"

	"github.com/Veraticus/performance-dashboard/internal/model"
)

// BucketTotals is the sum of every metric over one time bucket.
type BucketTotals struct {
	Bucket  time.Time
	Metrics map[string]float64
	Rows    int
}

// Aggregate buckets records by g and sums each metric per bucket. Buckets are
// returned in ascending order.
func Aggregate(records []model.Record, g model.Granularity) []BucketTotals {
	byBucket := make(map[time.Time]*BucketTotals)
	for _, r := range BucketRecords(records, g) {
		bt, ok := byBucket[r.Bucket]
		if !ok {
			bt = &BucketTotals{Bucket: r.Bucket, Metrics: make(map[string]float64, len(r.Metrics))}
			byBucket[r.Bucket] = bt
		}
		bt.Rows++
		for name, v := range r.Metrics {
			bt.Metrics[name] += v
		}
	}

	out := make([]BucketTotals, 0, len(byBucket))
	for _, bt := range byBucket {
		out = append(out, *bt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Bucket.Before(out[j].Bucket) })
	return out
}

// KPIs are the ratios the dashboard charts next to raw totals.
type KPIs struct {
	CTR  float64 // clicks / impressions
	CVR  float64 // installs / clicks
	CPI  float64 // cost / installs
	ROAS float64 // revenue / cost
}

// Revenue sums the revenue metrics in m. A metric absent from m counts as
// zero; an undefined value propagates.
func Revenue(m map[string]float64) float64 {
	total := 0.0
	for _, name := range model.RevenueMetrics {
		total += m[name]
	}
	return total
}

// KPISeries derives KPIs for every bucket.
func KPISeries(totals []BucketTotals) []KPIs {
	impressions := column(totals, model.MetricImpressions)
	clicks := column(totals, model.MetricClicks)
	installs := column(totals, model.MetricInstalls)
	cost := column(totals, model.MetricCost)
	revenue := make([]float64, len(totals))
	for i, bt := range totals {
		revenue[i] = Revenue(bt.Metrics)
	}

	ctr := SafeDivide(clicks, impressions)
	cvr := SafeDivide(installs, clicks)
	cpi := SafeDivide(cost, installs)
	roas := SafeDivide(revenue, cost)

	out := make([]KPIs, len(totals))
	for i := range totals {
		out[i] = KPIs{CTR: ctr[i], CVR: cvr[i], CPI: cpi[i], ROAS: roas[i]}
	}
	return out
}

// PeriodKPIs derives KPIs over a whole comparison window.
func PeriodKPIs(p *Period) KPIs {
	if p.Empty() {
		nan := math.NaN()
		return KPIs{CTR: nan, CVR: nan, CPI: nan, ROAS: nan}
	}
	revenue := 0.0
	for _, r := range p.Records {
		revenue += Revenue(r.Metrics)
	}
	return KPIs{
		CTR:  SafeDiv(p.Sum(model.MetricClicks), p.Sum(model.MetricImpressions)),
		CVR:  SafeDiv(p.Sum(model.MetricInstalls), p.Sum(model.MetricClicks)),
		CPI:  SafeDiv(p.Sum(model.MetricCost), p.Sum(model.MetricInstalls)),
		ROAS: SafeDiv(revenue, p.Sum(model.MetricCost)),
	}
}

func column(totals []BucketTotals, name string) []float64 {
	out := make([]float64, len(totals))
	for i, bt := range totals {
		v, ok := bt.Metrics[name]
		if !ok {
			v = math.NaN()
		}
		out[i] = v
	}
	return out
}

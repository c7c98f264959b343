package transform

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/Veraticus/performance-dashboard/internal/model"
)

// Period is one comparison window. A nil *Period means the window is
// unavailable, which is not the same as a window with no records.
type Period struct {
	Range   model.DateRange
	Records []model.Record
}

// Empty reports whether the window is absent or holds no records.
func (p *Period) Empty() bool {
	return p == nil || len(p.Records) == 0
}

// Sum adds column over the window's records. NaN cells propagate.
func (p *Period) Sum(column string) float64 {
	if p.Empty() {
		return math.NaN()
	}
	values := make(stats.Float64Data, len(p.Records))
	for i, r := range p.Records {
		values[i] = r.Metric(column)
	}
	sum, err := stats.Sum(values)
	if err != nil {
		return math.NaN()
	}
	return sum
}

// MaxWindowDays bounds user-supplied comparison windows.
const MaxWindowDays = 3660

// SplitPeriods splits records into the latest days calendar dates (current)
// and the days dates immediately before them (previous). Both are nil when
// fewer than 2*days distinct dates are present.
func SplitPeriods(records []model.Record, days int) (current, previous *Period) {
	if days < 1 {
		return nil, nil
	}
	dates := model.DistinctDates(records)
	if days > len(dates)/2 {
		return nil, nil
	}

	latest := dates[len(dates)-1]
	currentRange := model.DateRange{
		Start: latest.AddDate(0, 0, -(days - 1)),
		End:   latest,
	}
	previousRange := model.DateRange{
		Start: latest.AddDate(0, 0, -(2*days - 1)),
		End:   latest.AddDate(0, 0, -days),
	}

	return &Period{Range: currentRange, Records: model.FilterRange(records, currentRange)},
		&Period{Range: previousRange, Records: model.FilterRange(records, previousRange)}
}

// PercentageDelta returns (current - previous) / previous over the column
// sums. It is NaN when either window is unavailable or empty, or when the
// previous sum is zero.
func PercentageDelta(current, previous *Period, column string) float64 {
	if current.Empty() || previous.Empty() {
		return math.NaN()
	}
	cur := current.Sum(column)
	prev := previous.Sum(column)
	return SafeDiv(cur-prev, prev)
}

// Delta is the period-over-period comparison of one metric.
type Delta struct {
	Metric   string
	Current  float64
	Previous float64
	Change   float64
}

// Compare splits records into windows of days and computes a Delta per
// column. When the windows are unavailable every value is NaN and ok is false.
func Compare(records []model.Record, days int, columns []string) (deltas []Delta, current, previous *Period, ok bool) {
	current, previous = SplitPeriods(records, days)
	ok = current != nil && previous != nil

	deltas = make([]Delta, 0, len(columns))
	for _, c := range columns {
		deltas = append(deltas, Delta{
			Metric:   c,
			Current:  current.Sum(c),
			Previous: previous.Sum(c),
			Change:   PercentageDelta(current, previous, c),
		})
	}
	return deltas, current, previous, ok
}

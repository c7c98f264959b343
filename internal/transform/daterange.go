package transform

import (
	"time"

	"github.com/Veraticus/performance-dashboard/internal/model"
)

// NormalizeDateRange turns a date-picker selection into a range inside
// [minDate, maxDate]. Two dates are (start, end), one date is a single day,
// and any other length selects the full range. Zero dates default to the
// bounds, inverted input is swapped, and both ends are clamped.
func NormalizeDateRange(selection []time.Time, minDate, maxDate time.Time) model.DateRange {
	if maxDate.Before(minDate) {
		minDate, maxDate = maxDate, minDate
	}

	var start, end time.Time
	switch len(selection) {
	case 2:
		start, end = selection[0], selection[1]
	case 1:
		start, end = selection[0], selection[0]
	default:
		start, end = minDate, maxDate
	}

	if start.IsZero() {
		start = minDate
	}
	if end.IsZero() {
		end = maxDate
	}
	if start.After(end) {
		start, end = end, start
	}

	return model.DateRange{
		Start: clamp(start, minDate, maxDate),
		End:   clamp(end, minDate, maxDate),
	}
}

// NormalizeDate is NormalizeDateRange for a single selected day.
func NormalizeDate(d, minDate, maxDate time.Time) model.DateRange {
	return NormalizeDateRange([]time.Time{d}, minDate, maxDate)
}

func clamp(t, lo, hi time.Time) time.Time {
	if t.Before(lo) {
		return lo
	}
	if t.After(hi) {
		return hi
	}
	return t
}

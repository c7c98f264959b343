package model

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical day format used in output and config files.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	"2006/01/02",
	"2006.01.02",
	"01/02/2006",
	"1/2/2006",
	"2006-1-2",
	time.RFC3339,
}

// sheetsEpoch is day zero of the Sheets serial date system.
var sheetsEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// maxSerial is the serial of 9999-12-31, the last day Sheets can represent.
const maxSerial = 2958465

// DateRange represents an inclusive span of calendar days.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls on a day within the range.
func (r DateRange) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(Day(r.Start)) && !d.After(Day(r.End))
}

// Days returns the number of calendar days covered, counting both ends.
func (r DateRange) Days() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return int(Day(r.End).Sub(Day(r.Start)).Hours()/24) + 1
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s to %s", r.Start.Format(DateLayout), r.End.Format(DateLayout))
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate converts a sheet cell into a calendar day. Strings are tried
// against the known layouts; numbers are Sheets serial day counts.
func ParseDate(v any) (time.Time, error) {
	switch val := v.(type) {
	case time.Time:
		return Day(val), nil
	case float64:
		return fromSerial(val)
	case int:
		return fromSerial(float64(val))
	case int64:
		return fromSerial(float64(val))
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return time.Time{}, fmt.Errorf("empty date")
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return Day(t), nil
			}
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return fromSerial(f)
		}
		return time.Time{}, fmt.Errorf("unrecognized date %q", s)
	default:
		return time.Time{}, fmt.Errorf("unsupported date value %v (%T)", v, v)
	}
}

func fromSerial(f float64) (time.Time, error) {
	if math.IsNaN(f) || f < 1 || f > maxSerial {
		return time.Time{}, fmt.Errorf("invalid serial date %v", f)
	}
	return sheetsEpoch.AddDate(0, 0, int(f)), nil
}

// DistinctDates returns the unique record days in ascending order.
func DistinctDates(records []Record) []time.Time {
	seen := make(map[time.Time]struct{}, len(records))
	dates := make([]time.Time, 0, len(records))
	for _, r := range records {
		d := Day(r.Date)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// Span returns the earliest and latest record days. ok is false when
// records is empty.
func Span(records []Record) (r DateRange, ok bool) {
	dates := DistinctDates(records)
	if len(dates) == 0 {
		return DateRange{}, false
	}
	return DateRange{Start: dates[0], End: dates[len(dates)-1]}, true
}

// FilterRange keeps the records whose day lies inside r.
func FilterRange(records []Record, r DateRange) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if r.Contains(rec.Date) {
			out = append(out, rec)
		}
	}
	return out
}

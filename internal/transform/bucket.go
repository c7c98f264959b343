package transform

import (
	"fmt"
	"time"

	"github.com/Veraticus/performance-dashboard/internal/common"
	"github.com/Veraticus/performance-dashboard/internal/model"
)

// Bucket maps a date onto its aggregation key: the calendar day for Daily,
// the Monday starting its ISO week for Weekly, and the first of the month
// for anything else.
func Bucket(date time.Time, g model.Granularity) time.Time {
	d := model.Day(date)
	switch g {
	case model.Daily:
		return d
	case model.Weekly:
		offset := (int(d.Weekday()) + 6) % 7
		return d.AddDate(0, 0, -offset)
	default:
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
}

// BucketRecords returns copies of records with Bucket set for g.
func BucketRecords(records []model.Record, g model.Granularity) []model.Record {
	out := make([]model.Record, len(records))
	for i, r := range records {
		r.Bucket = Bucket(r.Date, g)
		out[i] = r
	}
	return out
}

// AddTimeBucket returns a copy of t with a bucket column derived from dateCol.
// Rows whose date cannot be parsed get a nil bucket.
func AddTimeBucket(t *model.Table, g model.Granularity, dateCol string) (*model.Table, error) {
	out := t.Clone()
	if out.Empty() {
		return out, nil
	}
	if !out.HasColumn(dateCol) {
		return nil, fmt.Errorf("%w: %s", common.ErrMissingColumn, dateCol)
	}

	if !out.HasColumn(model.BucketColumn) {
		out.Columns = append(out.Columns, model.BucketColumn)
	}
	for _, row := range out.Rows {
		date, err := model.ParseDate(row[dateCol])
		if err != nil {
			row[model.BucketColumn] = nil
			continue
		}
		row[model.BucketColumn] = Bucket(date, g)
	}
	return out, nil
}

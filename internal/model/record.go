package model

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/performance-dashboard/internal/common"
)

// Record is one performance row for a (date, source, campaign, creative,
// sub-campaign) combination.
type Record struct {
	Date            time.Time          `json:"date"`
	Bucket          time.Time          `json:"bucket"`
	Metrics         map[string]float64 `json:"metrics"`
	Source          string             `json:"source"`
	CampaignName    string             `json:"campaign_name"`
	CreativeName    string             `json:"creative_name"`
	SubCampaignName string             `json:"sub_campaign_name"`
}

// Metric returns the named metric, or NaN when the record does not carry it.
func (r Record) Metric(name string) float64 {
	v, ok := r.Metrics[name]
	if !ok {
		return math.NaN()
	}
	return v
}

// ParseRecords converts a sheet table into typed records. Rows whose date
// cannot be parsed are skipped. Metric cells that are empty count as zero and
// cells that are not numeric become NaN.
func ParseRecords(t *Table, dateCol string) ([]Record, error) {
	if t.Empty() {
		return []Record{}, nil
	}
	if !t.HasColumn(dateCol) {
		return nil, fmt.Errorf("%w: %s", common.ErrMissingColumn, dateCol)
	}

	present := make([]string, 0, len(Metrics))
	for _, m := range Metrics {
		if t.HasColumn(m) {
			present = append(present, m)
		}
	}

	records := make([]Record, 0, len(t.Rows))
	skipped := 0
	for i, row := range t.Rows {
		date, err := ParseDate(row[dateCol])
		if err != nil {
			skipped++
			slog.Debug("skipping row with unparseable date", "row", i+2, "error", err)
			continue
		}

		rec := Record{
			Date:            date,
			Source:          cellString(row[ColSource]),
			CampaignName:    cellString(row[ColCampaignName]),
			CreativeName:    cellString(row[ColCreativeName]),
			SubCampaignName: cellString(row[ColSubCampaignName]),
			Metrics:         make(map[string]float64, len(present)),
		}
		for _, m := range present {
			rec.Metrics[m] = ParseNumber(row[m])
		}
		records = append(records, rec)
	}

	if skipped > 0 {
		slog.Warn("rows skipped while parsing records", "skipped", skipped, "parsed", len(records))
	}
	return records, nil
}

// ParseNumber converts a sheet cell into a float. Empty cells are zero and
// anything non-numeric is NaN.
func ParseNumber(v any) float64 {
	switch val := v.(type) {
	case nil:
		return 0
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case bool:
		if val {
			return 1
		}
		return 0
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0
		}
		s = strings.ReplaceAll(s, ",", "")
		sign := ""
		if s != "" && (s[0] == '-' || s[0] == '+') {
			sign, s = s[:1], s[1:]
		}
		s = sign + strings.TrimPrefix(s, "$")
		if strings.HasSuffix(s, "%") {
			f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
			if err != nil {
				return math.NaN()
			}
			return f / 100
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func cellString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

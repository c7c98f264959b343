package httpx

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/Veraticus/performance-dashboard/internal/model"
	"github.com/Veraticus/performance-dashboard/internal/report"
	"github.com/Veraticus/performance-dashboard/internal/transform"
)

// Number is a float64 that encodes undefined values as null.
type Number float64

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

type kpiJSON struct {
	CTR  Number `json:"ctr"`
	CVR  Number `json:"cvr"`
	CPI  Number `json:"cpi"`
	ROAS Number `json:"roas"`
}

func toKPIJSON(k transform.KPIs) kpiJSON {
	return kpiJSON{CTR: Number(k.CTR), CVR: Number(k.CVR), CPI: Number(k.CPI), ROAS: Number(k.ROAS)}
}

type rangeJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func toRangeJSON(r model.DateRange) *rangeJSON {
	if r.Start.IsZero() && r.End.IsZero() {
		return nil
	}
	return &rangeJSON{Start: r.Start.Format(model.DateLayout), End: r.End.Format(model.DateLayout)}
}

type deltaJSON struct {
	Metric   string `json:"metric"`
	Current  Number `json:"current"`
	Previous Number `json:"previous"`
	Change   Number `json:"change"`
}

type summaryJSON struct {
	Current     *rangeJSON  `json:"current"`
	Previous    *rangeJSON  `json:"previous"`
	Deltas      []deltaJSON `json:"deltas"`
	CurrentKPI  kpiJSON     `json:"current_kpis"`
	PreviousKPI kpiJSON     `json:"previous_kpis"`
	WindowDays  int         `json:"window_days"`
	Available   bool        `json:"available"`
}

func toSummaryJSON(s report.Summary) summaryJSON {
	out := summaryJSON{
		WindowDays:  s.WindowDays,
		Available:   s.Available,
		Deltas:      make([]deltaJSON, 0, len(s.Deltas)),
		CurrentKPI:  toKPIJSON(s.CurrentKPI),
		PreviousKPI: toKPIJSON(s.PreviousKPI),
	}
	if s.Current != nil {
		out.Current = toRangeJSON(s.Current.Range)
	}
	if s.Previous != nil {
		out.Previous = toRangeJSON(s.Previous.Range)
	}
	for _, d := range s.Deltas {
		out.Deltas = append(out.Deltas, deltaJSON{
			Metric:   d.Metric,
			Current:  Number(d.Current),
			Previous: Number(d.Previous),
			Change:   Number(d.Change),
		})
	}
	return out
}

type bucketJSON struct {
	Metrics map[string]Number `json:"metrics"`
	Bucket  string            `json:"bucket"`
	KPIs    kpiJSON           `json:"kpis"`
	Rows    int               `json:"rows"`
}

type trendJSON struct {
	Range       *rangeJSON   `json:"range"`
	Granularity string       `json:"granularity"`
	Product     string       `json:"product,omitempty"`
	Buckets     []bucketJSON `json:"buckets"`
}

func toTrendJSON(t report.Trend) trendJSON {
	out := trendJSON{
		Range:       toRangeJSON(t.Range),
		Granularity: string(t.Granularity),
		Product:     t.Product,
		Buckets:     make([]bucketJSON, 0, len(t.Totals)),
	}
	for i, bt := range t.Totals {
		metrics := make(map[string]Number, len(bt.Metrics))
		for name, v := range bt.Metrics {
			metrics[name] = Number(v)
		}
		b := bucketJSON{
			Bucket:  bt.Bucket.Format(model.DateLayout),
			Rows:    bt.Rows,
			Metrics: metrics,
		}
		if i < len(t.KPIs) {
			b.KPIs = toKPIJSON(t.KPIs[i])
		}
		out.Buckets = append(out.Buckets, b)
	}
	return out
}

type errorJSON struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorJSON{Error: err.Error()})
}

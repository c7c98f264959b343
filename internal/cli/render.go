package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Veraticus/performance-dashboard/internal/model"
	"github.com/Veraticus/performance-dashboard/internal/products"
	"github.com/Veraticus/performance-dashboard/internal/report"
	"github.com/Veraticus/performance-dashboard/internal/transform"
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtleStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		})
}

// RenderSummary writes the comparison table for s.
func RenderSummary(w io.Writer, s report.Summary) error {
	if !s.Available {
		_, err := fmt.Fprintln(w, FormatWarning(fmt.Sprintf(
			"Not enough data to compare two %d-day windows (need at least %d distinct dates).",
			s.WindowDays, 2*s.WindowDays)))
		return err
	}

	t := newTable("Metric", "Previous", "Current", "Change")
	for _, d := range s.Deltas {
		t.Row(d.Metric, FormatNumber(d.Previous, 0), FormatNumber(d.Current, 0), StyleDelta(d.Change))
	}

	kpis := newTable("KPI", "Previous", "Current")
	kpis.Row("CTR", FormatRatio(s.PreviousKPI.CTR), FormatRatio(s.CurrentKPI.CTR))
	kpis.Row("CVR", FormatRatio(s.PreviousKPI.CVR), FormatRatio(s.CurrentKPI.CVR))
	kpis.Row("CPI", FormatNumber(s.PreviousKPI.CPI, 2), FormatNumber(s.CurrentKPI.CPI, 2))
	kpis.Row("ROAS", FormatNumber(s.PreviousKPI.ROAS, 2), FormatNumber(s.CurrentKPI.ROAS, 2))

	header := fmt.Sprintf("Last %d days (%s) vs previous (%s)",
		s.WindowDays, s.Current.Range, s.Previous.Range)

	_, err := fmt.Fprintln(w, RenderBox(header, lipgloss.JoinVertical(lipgloss.Left, t.Render(), kpis.Render())))
	return err
}

// RenderTrend writes the trend's bucket totals for metrics alongside its KPIs.
func RenderTrend(w io.Writer, tr report.Trend, metrics []string) error {
	if len(tr.Totals) == 0 {
		_, err := fmt.Fprintln(w, FormatWarning("No data in "+tr.Range.String()))
		return err
	}

	headers := append([]string{string(tr.Granularity)}, metrics...)
	headers = append(headers, "CTR", "CPI", "ROAS")
	t := newTable(headers...)

	kpis := tr.KPIs
	if len(kpis) != len(tr.Totals) {
		kpis = transform.KPISeries(tr.Totals)
	}
	for i, bt := range tr.Totals {
		row := make([]string, 0, len(headers))
		row = append(row, bt.Bucket.Format(model.DateLayout))
		for _, m := range metrics {
			v, ok := bt.Metrics[m]
			if !ok {
				row = append(row, NotAvailable)
				continue
			}
			row = append(row, FormatNumber(v, 0))
		}
		row = append(row, FormatRatio(kpis[i].CTR), FormatNumber(kpis[i].CPI, 2), FormatNumber(kpis[i].ROAS, 2))
		t.Row(row...)
	}

	title := fmt.Sprintf("%s trend, %s", tr.Granularity, tr.Range)
	if tr.Product != "" {
		title += " (" + tr.Product + ")"
	}
	_, err := fmt.Fprintln(w, RenderBox(title, t.Render()))
	return err
}

// RenderProducts writes the product date windows.
func RenderProducts(w io.Writer, entries []products.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, SubtleStyle.Render("No products configured."))
		return err
	}

	t := newTable("Product", "Start", "End", "Days")
	for _, e := range entries {
		r := e.Range()
		t.Row(e.Name, r.Start.Format(model.DateLayout), r.End.Format(model.DateLayout), fmt.Sprint(r.Days()))
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// RenderSwatches writes one coloured block per hex colour.
func RenderSwatches(w io.Writer, title string, colors []string) error {
	var b strings.Builder
	for _, c := range colors {
		swatch := lipgloss.NewStyle().
			Background(lipgloss.Color(c)).
			Render("      ")
		b.WriteString(swatch + " " + c + "\n")
	}
	_, err := fmt.Fprintln(w, RenderBox(title, strings.TrimSuffix(b.String(), "\n")))
	return err
}

package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NotAvailable is printed wherever a value is undefined.
const NotAvailable = "N/A"

// FormatNumber renders v with thousands separators and the given decimals.
func FormatNumber(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NotAvailable
	}

	s := strconv.FormatFloat(math.Abs(v), 'f', decimals, 64)
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	if v < 0 {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// FormatPercent renders a ratio as a signed percentage.
func FormatPercent(ratio float64) string {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return NotAvailable
	}
	return fmt.Sprintf("%+.1f%%", ratio*100)
}

// FormatRatio renders a ratio as an unsigned percentage.
func FormatRatio(ratio float64) string {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return NotAvailable
	}
	return fmt.Sprintf("%.2f%%", ratio*100)
}

// StyleDelta colours a percentage change by its direction.
func StyleDelta(ratio float64) string {
	text := FormatPercent(ratio)
	switch {
	case math.IsNaN(ratio):
		return SubtleStyle.Render(text)
	case ratio > 0:
		return PositiveStyle.Render(UpIcon + " " + text)
	case ratio < 0:
		return NegativeStyle.Render(DownIcon + " " + text)
	default:
		return text
	}
}

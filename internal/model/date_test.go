package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   any
		want    time.Time
		name    string
		wantErr bool
	}{
		{name: "iso", input: "2024-03-05", want: day("2024-03-05")},
		{name: "slashes", input: "2024/03/05", want: day("2024-03-05")},
		{name: "dots", input: "2024.03.05", want: day("2024-03-05")},
		{name: "us format", input: "03/05/2024", want: day("2024-03-05")},
		{name: "us format unpadded", input: "1/15/2024", want: day("2024-01-15")},
		{name: "iso unpadded", input: "2024-1-5", want: day("2024-01-05")},
		{name: "serial number", input: float64(45356), want: day("2024-03-05")},
		{name: "serial string", input: "45356", want: day("2024-03-05")},
		{name: "time value", input: time.Date(2024, 3, 5, 17, 30, 0, 0, time.UTC), want: day("2024-03-05")},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "yesterday", wantErr: true},
		{name: "negative serial", input: float64(-1), wantErr: true},
		{name: "zero serial", input: float64(0), wantErr: true},
		{name: "compact date is not a serial", input: "20240101", wantErr: true},
		{name: "serial past year 9999", input: float64(2958466), wantErr: true},
		{name: "last representable serial", input: float64(2958465), want: day("9999-12-31")},
		{name: "unsupported", input: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestDateRange(t *testing.T) {
	r := DateRange{Start: day("2024-01-10"), End: day("2024-01-12")}

	assert.Equal(t, 3, r.Days())
	assert.True(t, r.Contains(day("2024-01-10")))
	assert.True(t, r.Contains(day("2024-01-12").Add(23*time.Hour)))
	assert.False(t, r.Contains(day("2024-01-13")))
	assert.Equal(t, "2024-01-10 to 2024-01-12", r.String())
	assert.Equal(t, 0, DateRange{Start: day("2024-01-12"), End: day("2024-01-10")}.Days())
}

func TestDistinctDatesAndFilter(t *testing.T) {
	records := []Record{
		{Date: day("2024-01-03")},
		{Date: day("2024-01-01")},
		{Date: day("2024-01-03")},
		{Date: day("2024-01-02")},
	}

	dates := DistinctDates(records)
	require.Len(t, dates, 3)
	assert.Equal(t, day("2024-01-01"), dates[0])
	assert.Equal(t, day("2024-01-03"), dates[2])

	span, ok := Span(records)
	require.True(t, ok)
	assert.Equal(t, day("2024-01-01"), span.Start)
	assert.Equal(t, day("2024-01-03"), span.End)

	_, ok = Span(nil)
	assert.False(t, ok)

	filtered := FilterRange(records, DateRange{Start: day("2024-01-02"), End: day("2024-01-03")})
	assert.Len(t, filtered, 3)
}

package model

import (
	"fmt"
	"strings"

	"github.com/Veraticus/performance-dashboard/internal/common"
)

// Granularity selects the time bucket used for trend aggregation.
type Granularity string

// Supported granularities.
const (
	Daily   Granularity = "Daily"
	Weekly  Granularity = "Weekly"
	Monthly Granularity = "Monthly"
)

// Granularities lists the values accepted by ParseGranularity.
var Granularities = []Granularity{Daily, Weekly, Monthly}

// ParseGranularity matches s case-insensitively against the supported
// granularities. Unlike the bucketing helpers, which treat any unknown value
// as Monthly, it rejects anything else.
func ParseGranularity(s string) (Granularity, error) {
	for _, g := range Granularities {
		if strings.EqualFold(strings.TrimSpace(s), string(g)) {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: unknown granularity %q (want Daily, Weekly or Monthly)", common.ErrInvalidConfig, s)
}

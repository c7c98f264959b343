package model

// DateColumn is the header of the date column in the raw sheet.
const DateColumn = "Date"

// BucketColumn is the column AddTimeBucket writes.
const BucketColumn = "bucket"

// Dimension columns.
const (
	ColSource          = "source"
	ColCampaignName    = "campaign_name"
	ColCreativeName    = "creative_name"
	ColSubCampaignName = "sub_campaign_name"
)

// Metric columns used by the derived KPIs.
const (
	MetricImpressions               = "impressions"
	MetricClicks                    = "clicks"
	MetricInstalls                  = "installs"
	MetricCost                      = "cost"
	MetricDepositRevenue1d          = "deposit_revenue_1d"
	MetricDepositRevenue30d         = "deposit_revenue_30d"
	MetricInitialOfferingRevenue30d = "initial_offering_revenue_30d"
)

// Dimensions lists the grouping columns of a raw record.
var Dimensions = []string{
	ColSource,
	ColCampaignName,
	ColCreativeName,
	ColSubCampaignName,
}

// Metrics lists the numeric columns of a raw record, in sheet order.
var Metrics = []string{
	MetricImpressions, MetricClicks, MetricInstalls, MetricCost,
	"create_account_7d", "deposit_1d", "deposit_30d",
	"initial_offering_30d", "integration_account_7d", "signup_7d",
	"trade_buy_1d", "trade_buy_7d",
	MetricDepositRevenue1d, MetricDepositRevenue30d, MetricInitialOfferingRevenue30d,
}

// RevenueMetrics are summed into total revenue for ROAS.
var RevenueMetrics = []string{
	MetricDepositRevenue30d,
	MetricInitialOfferingRevenue30d,
}

// RequiredColumns is the full header a performance sheet is expected to carry.
func RequiredColumns() []string {
	cols := make([]string, 0, 1+len(Dimensions)+len(Metrics))
	cols = append(cols, DateColumn)
	cols = append(cols, Dimensions...)
	cols = append(cols, Metrics...)
	return cols
}

// MissingColumns returns the required columns absent from t, in schema order.
func MissingColumns(t *Table) []string {
	var missing []string
	for _, c := range RequiredColumns() {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

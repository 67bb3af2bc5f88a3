package domain

import "strings"

// Billable categories used by the charts aggregation.
const (
	BillableTrue    = "True"
	BillableFalse   = "False"
	BillableUnknown = "Unknown"
)

// BillableCategory maps a raw Billable field value onto one of the three
// chart categories.
func BillableCategory(v any) string {
	switch b := v.(type) {
	case bool:
		if b {
			return BillableTrue
		}
		return BillableFalse
	case string:
		if strings.EqualFold(b, "true") {
			return BillableTrue
		}
		if strings.EqualFold(b, "false") {
			return BillableFalse
		}
	}
	return BillableUnknown
}

// PieChart feeds the billable-hours pie: parallel label/value/color slices.
type PieChart struct {
	Labels []string
	Data   []float64
	Colors []string
}

// MonthlyTrend feeds the per-month stacked chart.
type MonthlyTrend struct {
	Labels      []string
	Billable    []float64
	NonBillable []float64
	Total       []float64
}

// ChartData is the full charts payload.
type ChartData struct {
	Pie           PieChart
	Monthly       MonthlyTrend
	Authors       []string
	TotalItems    int
	TotalHours    float64
	BillableHours map[string]float64
}

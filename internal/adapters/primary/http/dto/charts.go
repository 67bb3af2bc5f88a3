package dto

import "m365-dashboard/internal/core/domain"

// ChartsResponse feeds the billable pie and monthly trend charts.
type ChartsResponse struct {
	Pie           PieChartData       `json:"pie"`
	Monthly       MonthlyTrendData   `json:"monthly"`
	Authors       []string           `json:"authors"`
	TotalItems    int                `json:"total_items"`
	TotalHours    float64            `json:"total_hours"`
	BillableHours map[string]float64 `json:"billable_hours"`
}

type PieChartData struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
	Colors []string  `json:"colors"`
}

type MonthlyTrendData struct {
	Labels      []string  `json:"labels"`
	Billable    []float64 `json:"billable"`
	NonBillable []float64 `json:"non_billable"`
	Total       []float64 `json:"total"`
}

func ToChartsResponse(data *domain.ChartData) ChartsResponse {
	return ChartsResponse{
		Pie: PieChartData{
			Labels: data.Pie.Labels,
			Data:   data.Pie.Data,
			Colors: data.Pie.Colors,
		},
		Monthly: MonthlyTrendData{
			Labels:      data.Monthly.Labels,
			Billable:    data.Monthly.Billable,
			NonBillable: data.Monthly.NonBillable,
			Total:       data.Monthly.Total,
		},
		Authors:       data.Authors,
		TotalItems:    data.TotalItems,
		TotalHours:    data.TotalHours,
		BillableHours: data.BillableHours,
	}
}

package dto

import "m365-dashboard/internal/core/domain"

// TimesheetResponse is one page of timesheet rows plus the filter options
// derived from the full item set.
type TimesheetResponse struct {
	Columns    []string               `json:"columns"`
	Rows       []domain.TimesheetRow  `json:"rows"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"page_size"`
	Total      int                    `json:"total"`
	TotalPages int                    `json:"total_pages"`
	HasPrev    bool                   `json:"has_prev"`
	HasNext    bool                   `json:"has_next"`
	TotalHours float64                `json:"total_hours"`
	Filters    TimesheetFilterOptions `json:"filters"`
}

// TimesheetFilterOptions feeds the dropdowns.
type TimesheetFilterOptions struct {
	Authors   []string `json:"authors"`
	Customers []string `json:"customers"`
	Codes     []string `json:"codes"`
	Billable  []string `json:"billable"`
}

func ToTimesheetResponse(page *domain.TimesheetPage) TimesheetResponse {
	return TimesheetResponse{
		Columns:    page.Columns,
		Rows:       page.Rows,
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		HasPrev:    page.HasPrev,
		HasNext:    page.HasNext,
		TotalHours: page.TotalHours,
		Filters: TimesheetFilterOptions{
			Authors:   page.Authors,
			Customers: page.Customers,
			Codes:     page.Codes,
			Billable:  page.BillableOptions,
		},
	}
}

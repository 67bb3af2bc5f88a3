package dto

import (
	"m365-dashboard/internal/core/domain"
	"m365-dashboard/internal/core/services"
)

// ColumnResponse is the full metadata of one list column.
type ColumnResponse struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Hidden      bool   `json:"hidden"`
	ReadOnly    bool   `json:"read_only"`
	ColumnGroup string `json:"column_group,omitempty"`
	Description string `json:"description,omitempty"`
}

// ColumnsResponse is the debug-columns payload.
type ColumnsResponse struct {
	ListName string           `json:"list_name"`
	SitePath string           `json:"site_path"`
	Columns  []ColumnResponse `json:"columns"`
}

func ToColumnsResponse(report *services.ColumnReport) ColumnsResponse {
	columns := make([]ColumnResponse, 0, len(report.Columns))
	for _, col := range report.Columns {
		columns = append(columns, toColumnResponse(col))
	}
	return ColumnsResponse{
		ListName: report.ListName,
		SitePath: report.SitePath,
		Columns:  columns,
	}
}

func toColumnResponse(col domain.ColumnDefinition) ColumnResponse {
	return ColumnResponse{
		Name:        col.Name,
		DisplayName: col.DisplayName,
		Hidden:      col.Hidden,
		ReadOnly:    col.ReadOnly,
		ColumnGroup: col.ColumnGroup,
		Description: col.Description,
	}
}

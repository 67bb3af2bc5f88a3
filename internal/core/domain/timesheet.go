package domain

import (
	"strconv"
	"strings"
	"time"
)

// WorkDateField is the internal name SharePoint assigns to the "Work Date"
// column ("_x0020_" is the encoded space).
const WorkDateField = "Work_x0020_Date"

// TimesheetQuery holds the listing parameters accepted by the timesheet
// endpoint. Zero values mean "no filter".
type TimesheetQuery struct {
	Page     int
	PageSize int
	Search   string
	SortBy   string
	SortDesc bool
	Author   string
	Customer string
	Codes    []string
	Billable string
	DateFrom string
	DateTo   string
}

// Normalize clamps paging to the supported ranges.
func (q *TimesheetQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 10
	}
	if q.PageSize > 100 {
		q.PageSize = 100
	}
	if q.SortBy == "" {
		q.SortBy = "Id"
	}
}

// TimesheetRow is one display row, keyed by column name.
type TimesheetRow map[string]any

// TimesheetPage is the materialized result of a timesheet query.
type TimesheetPage struct {
	Columns         []string
	Rows            []TimesheetRow
	Page            int
	PageSize        int
	Total           int
	TotalPages      int
	HasPrev         bool
	HasNext         bool
	TotalHours      float64
	Authors         []string
	Customers       []string
	Codes           []string
	BillableOptions []string
}

// AuthorText extracts a display name from an Author field value, which is a
// lookup object in Graph responses and a plain string in SharePoint REST ones.
func AuthorText(v any) string {
	switch a := v.(type) {
	case map[string]any:
		if s, ok := a["LookupValue"].(string); ok {
			return s
		}
		return ""
	case string:
		return a
	case nil:
		return ""
	default:
		return ""
	}
}

// Hours converts an Hours field value to a float, returning 0 for anything
// unparseable.
func Hours(v any) float64 {
	switch h := v.(type) {
	case float64:
		return h
	case int:
		return float64(h)
	case string:
		s := strings.TrimSpace(h)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// dateLayouts covers the formats SharePoint emits for date columns.
var dateLayouts = []string{
	"2006-01-02T15:04:05Z",
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
}

// ParseWorkDate parses a date field value, returning the zero time when the
// value is empty or in an unknown format.
func ParseWorkDate(v any) time.Time {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Time{}
	}
	if strings.Contains(s, "T") {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	if len(s) >= 10 {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return t
		}
	}
	return time.Time{}
}

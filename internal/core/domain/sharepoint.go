package domain

// Site is a SharePoint site resolved through Microsoft Graph.
type Site struct {
	ID          string
	DisplayName string
	WebURL      string
}

// SharePointList is a list on a SharePoint site.
type SharePointList struct {
	ID          string
	DisplayName string
	Description string
	WebURL      string
}

// ListView is a saved view of a SharePoint list. Fields are normalized across
// the Graph beta representation and the SharePoint REST one.
type ListView struct {
	ID            string
	DisplayName   string
	IsDefaultView bool
	ViewType      string
}

// ColumnDefinition describes one column of a list schema.
type ColumnDefinition struct {
	Name        string
	DisplayName string
	Hidden      bool
	ReadOnly    bool
	ColumnGroup string
	Description string
}

// ListItem is a single row of a SharePoint list. Field values keep their raw
// JSON shapes: strings, numbers, booleans, or lookup objects.
type ListItem struct {
	ID     string
	Fields map[string]any
}

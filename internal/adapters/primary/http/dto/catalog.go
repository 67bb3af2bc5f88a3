package dto

import "m365-dashboard/internal/core/domain"

// ListResponse is one SharePoint list.
type ListResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Description string `json:"description,omitempty"`
	WebURL      string `json:"web_url,omitempty"`
}

// ListsResponse wraps the lists of a site.
type ListsResponse struct {
	Items []ListResponse `json:"items"`
	Total int            `json:"total"`
}

// ViewResponse is one saved list view.
type ViewResponse struct {
	ID            string `json:"id"`
	DisplayName   string `json:"display_name"`
	IsDefaultView bool   `json:"is_default_view"`
	ViewType      string `json:"view_type,omitempty"`
}

// ViewsResponse wraps the views of a list.
type ViewsResponse struct {
	Items []ViewResponse `json:"items"`
	Total int            `json:"total"`
}

func ToListsResponse(lists []domain.SharePointList) ListsResponse {
	items := make([]ListResponse, 0, len(lists))
	for _, l := range lists {
		items = append(items, ListResponse{
			ID:          l.ID,
			DisplayName: l.DisplayName,
			Description: l.Description,
			WebURL:      l.WebURL,
		})
	}
	return ListsResponse{Items: items, Total: len(items)}
}

func ToViewsResponse(views []domain.ListView) ViewsResponse {
	items := make([]ViewResponse, 0, len(views))
	for _, v := range views {
		items = append(items, ViewResponse{
			ID:            v.ID,
			DisplayName:   v.DisplayName,
			IsDefaultView: v.IsDefaultView,
			ViewType:      v.ViewType,
		})
	}
	return ViewsResponse{Items: items, Total: len(items)}
}

package dto

// QuickLink is a sortable shortcut tile.
type QuickLink struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	IconURL     *string `json:"iconUrl"`
	IsActive    bool    `json:"isActive"`
	SortOrder   *int    `json:"sortOrder"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// QuickLinksListQuery carries the recognized query parameters of the
// quick-link list endpoint.
type QuickLinksListQuery struct {
	Category string
	IsActive string // "true", "false" or "all"
}

// CreateQuickLinkRequest creates a quick link.
type CreateQuickLinkRequest struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	IconURL     *string `json:"iconUrl,omitempty"`
	SortOrder   *int    `json:"sortOrder,omitempty"`
}

// UpdateQuickLinkRequest patches a quick link.
type UpdateQuickLinkRequest struct {
	Title       *string `json:"title,omitempty"`
	URL         *string `json:"url,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	IconURL     *string `json:"iconUrl,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
	SortOrder   *int    `json:"sortOrder,omitempty"`
}

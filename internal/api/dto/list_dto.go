package dto

// ListQuery captures admin list view parameters: the upstream page number,
// the search term applied within the fetched page, and the optional role
// filter the user list forwards upstream.
type ListQuery struct {
	Page   int    `query:"page"`
	Search string `query:"q"`
	Role   string `query:"role"`
}

// Normalize clamps the page to at least 1.
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
}

// ListMeta describes one rendered list page. Total and TotalPages come from
// upstream; Matched is the row count after the in-page search filter.
type ListMeta struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	Total      int `json:"total"`
	Matched    int `json:"matched"`
}

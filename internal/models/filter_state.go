package models

// FilterState is viewer-session-local and never persisted.
type FilterState struct {
	SortOrder      SortOrder      `json:"sort_order"`
	CategoryFilter CategoryFilter `json:"category_filter"`
	ShowFilter     ShowFilter     `json:"show_filter"`
	// SearchTerm case-insensitive substring over poll titles
	SearchTerm string `json:"search_term"`
}

func DefaultFilterState() FilterState {
	return FilterState{
		SortOrder:      SortMaisRecentes,
		CategoryFilter: FilterTudo,
		ShowFilter:     ShowTudo,
	}
}

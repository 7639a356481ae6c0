package models

// FieldMatch records a single field that contributed to a search hit, for
// UI highlighting.
type FieldMatch struct {
	Field string  `json:"field"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// StackSearchResult wraps a ranked stack with its total score and the list of
// contributing field matches.
type StackSearchResult struct {
	Item    *Stack       `json:"item"`
	Score   float64      `json:"score"`
	Matches []FieldMatch `json:"matches"`
}

// SearchResponse is the response for an interactive search request.
type SearchResponse struct {
	Results   []*StackSearchResult `json:"results"`
	Total     int                  `json:"total"`
	Query     string               `json:"query"`
	QueryTime int64                `json:"query_time_ms"`
}

// SuggestResponse is the response for an autocomplete request.
type SuggestResponse struct {
	Suggestions []string `json:"suggestions"`
	Query       string   `json:"query"`
}

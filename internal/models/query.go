package models

import "fmt"

// Sort keys accepted by the stack listing.
const (
	SortNewest   = "newest"
	SortOldest   = "oldest"
	SortTrending = "trending"
	SortPopular  = "popular"
)

// StackQuery describes listing criteria for podcast stacks. Tags is a
// comma-separated list; MinInsights filters out stacks with fewer constituent
// insights (0 = no minimum).
type StackQuery struct {
	ChannelID   string `json:"channel_id,omitempty"`
	Category    string `json:"category,omitempty"`
	Tags        string `json:"tags,omitempty"`
	Search      string `json:"search,omitempty"`
	Sort        string `json:"sort,omitempty"`
	Limit       int    `json:"limit,omitempty"`
	Offset      int    `json:"offset,omitempty"`
	MinInsights int    `json:"min_insights,omitempty"`
}

// Validate normalizes the query against the configured limits. A zero or
// negative limit falls back to defaultLimit; limits above maxLimit are capped.
// A negative offset is a caller error.
func (q *StackQuery) Validate(defaultLimit, maxLimit int) error {
	if q.Offset < 0 {
		return fmt.Errorf("offset must not be negative, got %d", q.Offset)
	}
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	if q.Sort == "" {
		q.Sort = SortNewest
	}
	return nil
}

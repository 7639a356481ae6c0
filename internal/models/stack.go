package models

import "time"

// Stack is a derived grouping of all insights believed to originate from the
// same podcast episode. It is rebuilt from scratch on every request cycle and
// never persisted; its identifier is the grouping key.
type Stack struct {
	ID           string     `json:"id"`
	ThumbnailURL string     `json:"thumbnail_url"`
	PodcastName  string     `json:"podcast_name"`
	EpisodeTitle string     `json:"episode_title"`
	ChannelID    string     `json:"channel_id"`
	Insights     []*Insight `json:"insights"`
	InsightCount int        `json:"insight_count"`
	Categories   []string   `json:"categories"`
	Tags         []string   `json:"tags"`
	CreatedAt    time.Time  `json:"created_at"`
}

// StackListResponse is the response for a stack listing. Total is the
// filtered-but-unpaginated count.
type StackListResponse struct {
	Data  []*Stack `json:"data"`
	Total int      `json:"total"`
}

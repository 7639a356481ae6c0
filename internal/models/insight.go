// Package models defines core data structures for insights, stacks, and search results.
package models

import "time"

// SourceContext identifies the podcast episode an insight was extracted from.
type SourceContext struct {
	PodcastName  string `bson:"podcast_name" json:"podcast_name"`
	EpisodeTitle string `bson:"episode_title" json:"episode_title"`
}

// Insight represents one extracted business idea record. Insights are created
// by an external ingestion pipeline and are read-only here.
type Insight struct {
	ID               string        `bson:"_id" json:"id"`
	ChannelID        string        `bson:"channelId" json:"channel_id"`
	InsightType      string        `bson:"insight_type" json:"insight_type"`
	Title            string        `bson:"title" json:"title"`
	ProblemAddressed string        `bson:"problem_addressed" json:"problem_addressed"`
	Description      string        `bson:"description" json:"description"`
	Category         string        `bson:"category" json:"category"`
	Tags             []string      `bson:"tags" json:"tags"`
	SourceContext    SourceContext `bson:"source_context" json:"source_context"`
	ThumbnailURL     string        `bson:"thumbnail_url" json:"thumbnail_url"`
	CreatedAt        time.Time     `bson:"createdAt" json:"created_at"`
}

// InsightListResponse is the response for a flat insight listing.
type InsightListResponse struct {
	Data  []*Insight `json:"data"`
	Total int64      `json:"total"`
}

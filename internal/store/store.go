// Package store defines read access to the insight document collection.
package store

import (
	"context"
	"errors"

	"github.com/insightstack/insightstack/internal/models"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("not found")

// Query is a strongly-typed filter descriptor for insight listings. Each
// implementation translates it into its own query form; the rest of the
// system never assembles raw query syntax. Category, Tags, and Search are
// matched case-insensitively as substrings.
type Query struct {
	ChannelID string
	Category  string
	Tags      []string
	Search    string
	Limit     int // 0 = no limit
	Offset    int
}

// ChannelInfo pairs a channel identifier with the podcast name observed on
// its insights.
type ChannelInfo struct {
	ChannelID   string `json:"channel_id"`
	ChannelName string `json:"channel_name"`
}

// Store provides access to the insight collection. Listings are always
// ordered newest-first by creation time.
type Store interface {
	ListInsights(ctx context.Context, q Query) ([]*models.Insight, error)
	CountInsights(ctx context.Context, q Query) (int64, error)
	GetInsight(ctx context.Context, id string) (*models.Insight, error)
	// InsightsByThumbnail returns the insights sharing one episode thumbnail,
	// ordered by title ascending.
	InsightsByThumbnail(ctx context.Context, thumbnailURL string) ([]*models.Insight, error)
	// DistinctCategories returns the distinct non-empty category strings.
	DistinctCategories(ctx context.Context) ([]string, error)
	// TopTags returns the most frequent non-empty tags, most common first.
	TopTags(ctx context.Context, limit int) ([]string, error)
	// Channels returns the distinct channels with a representative podcast name.
	Channels(ctx context.Context) ([]ChannelInfo, error)
	// InsertInsights bulk-inserts records; used by seeding tooling and tests,
	// never by the read-only API surface.
	InsertInsights(ctx context.Context, insights []*models.Insight) error
	Close(ctx context.Context) error
}

package store

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/insightstack/insightstack/internal/models"
)

// MongoStore implements Store over a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB at uri and binds to the given database
// and collection.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// buildFilter translates the typed query descriptor into a BSON filter.
// User-supplied strings are regex-quoted so no pattern syntax can be injected.
func buildFilter(q Query) bson.M {
	filter := bson.M{}

	if q.ChannelID != "" {
		filter["channelId"] = q.ChannelID
	}

	if q.Category != "" {
		filter["category"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Category), Options: "i"}
	}

	if len(q.Tags) > 0 {
		patterns := make(bson.A, 0, len(q.Tags))
		for _, tag := range q.Tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			patterns = append(patterns, primitive.Regex{Pattern: regexp.QuoteMeta(tag), Options: "i"})
		}
		if len(patterns) > 0 {
			filter["tags"] = bson.M{"$in": patterns}
		}
	}

	if q.Search != "" {
		words := strings.Fields(q.Search)
		quoted := make([]string, 0, len(words))
		for _, w := range words {
			quoted = append(quoted, regexp.QuoteMeta(w))
		}
		re := primitive.Regex{Pattern: strings.Join(quoted, "|"), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"description": re},
			bson.M{"problem_addressed": re},
			bson.M{"category": re},
			bson.M{"tags": bson.M{"$in": bson.A{re}}},
			bson.M{"source_context.podcast_name": re},
			bson.M{"source_context.episode_title": re},
		}
	}

	return filter
}

// ListInsights returns insights matching q, newest first.
func (s *MongoStore) ListInsights(ctx context.Context, q Query) ([]*models.Insight, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if q.Limit > 0 {
		opts = opts.SetLimit(int64(q.Limit)).SetSkip(int64(q.Offset))
	}

	cursor, err := s.coll.Find(ctx, buildFilter(q), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list insights: %w", err)
	}
	var insights []*models.Insight
	if err := cursor.All(ctx, &insights); err != nil {
		return nil, fmt.Errorf("failed to decode insights: %w", err)
	}
	return insights, nil
}

// CountInsights returns the number of insights matching q, ignoring limit
// and offset.
func (s *MongoStore) CountInsights(ctx context.Context, q Query) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, buildFilter(q))
	if err != nil {
		return 0, fmt.Errorf("failed to count insights: %w", err)
	}
	return count, nil
}

// GetInsight returns a single insight by ID.
func (s *MongoStore) GetInsight(ctx context.Context, id string) (*models.Insight, error) {
	var insight models.Insight
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&insight)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get insight %s: %w", id, err)
	}
	return &insight, nil
}

// InsightsByThumbnail returns the insights sharing one episode thumbnail,
// title ascending.
func (s *MongoStore) InsightsByThumbnail(ctx context.Context, thumbnailURL string) ([]*models.Insight, error) {
	opts := options.Find().SetSort(bson.D{{Key: "title", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{"thumbnail_url": thumbnailURL}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find insights by thumbnail: %w", err)
	}
	var insights []*models.Insight
	if err := cursor.All(ctx, &insights); err != nil {
		return nil, fmt.Errorf("failed to decode insights: %w", err)
	}
	return insights, nil
}

// DistinctCategories returns the distinct non-empty category strings.
func (s *MongoStore) DistinctCategories(ctx context.Context) ([]string, error) {
	raw, err := s.coll.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to get distinct categories: %w", err)
	}
	categories := make([]string, 0, len(raw))
	for _, v := range raw {
		if c, ok := v.(string); ok && strings.TrimSpace(c) != "" {
			categories = append(categories, c)
		}
	}
	return categories, nil
}

// TopTags returns the most frequent tags, most common first.
func (s *MongoStore) TopTags(ctx context.Context, limit int) ([]string, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$tags"}},
		{{Key: "$group", Value: bson.M{"_id": "$tags", "count": bson.M{"$sum": 1}}}},
		{{Key: "$match", Value: bson.M{"_id": bson.M{"$nin": bson.A{nil, ""}}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
	}
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate tags: %w", err)
	}
	var rows []struct {
		Tag string `bson:"_id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	tags := make([]string, 0, len(rows))
	for _, row := range rows {
		tags = append(tags, row.Tag)
	}
	return tags, nil
}

// Channels returns the distinct channels with the podcast name first seen on
// their insights, ordered by name.
func (s *MongoStore) Channels(ctx context.Context) ([]ChannelInfo, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":         "$channelId",
			"channelName": bson.M{"$first": "$source_context.podcast_name"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "channelName", Value: 1}}}},
	}
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate channels: %w", err)
	}
	var rows []struct {
		ChannelID   string `bson:"_id"`
		ChannelName string `bson:"channelName"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode channels: %w", err)
	}
	channels := make([]ChannelInfo, 0, len(rows))
	for _, row := range rows {
		channels = append(channels, ChannelInfo{ChannelID: row.ChannelID, ChannelName: row.ChannelName})
	}
	return channels, nil
}

// InsertInsights bulk-inserts records.
func (s *MongoStore) InsertInsights(ctx context.Context, insights []*models.Insight) error {
	if len(insights) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(insights))
	for _, in := range insights {
		docs = append(docs, in)
	}
	if _, err := s.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert insights: %w", err)
	}
	return nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

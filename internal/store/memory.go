package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/insightstack/insightstack/internal/models"
)

// MemoryStore is an in-process Store used by tests and the seed path when no
// database is available. Matching follows the same case-insensitive substring
// semantics as the MongoDB adapter.
type MemoryStore struct {
	mu       sync.RWMutex
	insights []*models.Insight
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func matchesQuery(in *models.Insight, q Query) bool {
	if q.ChannelID != "" && in.ChannelID != q.ChannelID {
		return false
	}
	if q.Category != "" && !strings.Contains(strings.ToLower(in.Category), strings.ToLower(q.Category)) {
		return false
	}
	if len(q.Tags) > 0 {
		found := false
		for _, want := range q.Tags {
			want = strings.ToLower(strings.TrimSpace(want))
			if want == "" {
				continue
			}
			for _, tag := range in.Tags {
				if strings.Contains(strings.ToLower(tag), want) {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.Search != "" {
		if !matchesAnyWord(in, strings.Fields(q.Search)) {
			return false
		}
	}
	return true
}

func matchesAnyWord(in *models.Insight, words []string) bool {
	fields := []string{
		in.Title,
		in.Description,
		in.ProblemAddressed,
		in.Category,
		in.SourceContext.PodcastName,
		in.SourceContext.EpisodeTitle,
	}
	fields = append(fields, in.Tags...)
	for _, w := range words {
		w = strings.ToLower(w)
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), w) {
				return true
			}
		}
	}
	return false
}

func (s *MemoryStore) ListInsights(ctx context.Context, q Query) ([]*models.Insight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*models.Insight, 0, len(s.insights))
	for _, in := range s.insights {
		if matchesQuery(in, q) {
			matched = append(matched, in)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if q.Limit > 0 {
		offset := q.Offset
		if offset > len(matched) {
			offset = len(matched)
		}
		end := offset + q.Limit
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[offset:end]
	}
	return matched, nil
}

func (s *MemoryStore) CountInsights(ctx context.Context, q Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, in := range s.insights {
		if matchesQuery(in, q) {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) GetInsight(ctx context.Context, id string) (*models.Insight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, in := range s.insights {
		if in.ID == id {
			return in, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) InsightsByThumbnail(ctx context.Context, thumbnailURL string) ([]*models.Insight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*models.Insight, 0)
	for _, in := range s.insights {
		if in.ThumbnailURL == thumbnailURL {
			matched = append(matched, in)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Title < matched[j].Title
	})
	return matched, nil
}

func (s *MemoryStore) DistinctCategories(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, in := range s.insights {
		c := strings.TrimSpace(in.Category)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories, nil
}

func (s *MemoryStore) TopTags(ctx context.Context, limit int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, in := range s.insights {
		for _, tag := range in.Tags {
			if tag == "" {
				continue
			}
			counts[tag]++
		}
	}
	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if counts[tags[i]] != counts[tags[j]] {
			return counts[tags[i]] > counts[tags[j]]
		}
		return tags[i] < tags[j]
	})
	if limit > 0 && len(tags) > limit {
		tags = tags[:limit]
	}
	return tags, nil
}

func (s *MemoryStore) Channels(ctx context.Context) ([]ChannelInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	channels := make([]ChannelInfo, 0)
	for _, in := range s.insights {
		if in.ChannelID == "" {
			continue
		}
		if _, ok := seen[in.ChannelID]; ok {
			continue
		}
		seen[in.ChannelID] = struct{}{}
		channels = append(channels, ChannelInfo{
			ChannelID:   in.ChannelID,
			ChannelName: in.SourceContext.PodcastName,
		})
	}
	sort.Slice(channels, func(i, j int) bool {
		return channels[i].ChannelName < channels[j].ChannelName
	})
	return channels, nil
}

func (s *MemoryStore) InsertInsights(ctx context.Context, insights []*models.Insight) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.insights = append(s.insights, insights...)
	return nil
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

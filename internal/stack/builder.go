// Package stack derives podcast stacks from flat insight records and provides
// filtering, sorting, and pagination over them.
package stack

import (
	"sort"

	"github.com/insightstack/insightstack/internal/models"
	"github.com/insightstack/insightstack/pkg/utils"
)

// Sentinels for insights with missing source context. A single malformed
// record must not abort the grouping pass.
const (
	UnknownPodcast = "Unknown Podcast"
	UnknownEpisode = "Unknown Episode"
)

// GroupKey returns the episode-identity key used to cluster insights into a
// stack: the episode thumbnail URL, falling back to a podcast|episode
// composite when the thumbnail is absent. An empty return value means the
// insight cannot be grouped and is excluded from stack formation.
func GroupKey(in *models.Insight) string {
	if in.ThumbnailURL != "" {
		return in.ThumbnailURL
	}
	if in.SourceContext.PodcastName == "" && in.SourceContext.EpisodeTitle == "" {
		return ""
	}
	return in.SourceContext.PodcastName + "|" + in.SourceContext.EpisodeTitle
}

// BuildStacks groups insights by episode identity and computes aggregate
// metadata per stack. Constituent insights are ordered by title ascending so
// that the representative first insight is stable across calls. Output stacks
// are ordered newest-first by creation time; stacks with missing timestamps
// sort by episode title.
func BuildStacks(insights []*models.Insight) []*models.Stack {
	groups := make(map[string][]*models.Insight)
	keys := make([]string, 0)
	for _, in := range insights {
		key := GroupKey(in)
		if key == "" {
			continue
		}
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], in)
	}

	stacks := make([]*models.Stack, 0, len(keys))
	for _, key := range keys {
		group := append([]*models.Insight(nil), groups[key]...)
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Title < group[j].Title
		})

		first := group[0]
		podcastName := first.SourceContext.PodcastName
		if podcastName == "" {
			podcastName = UnknownPodcast
		}
		episodeTitle := first.SourceContext.EpisodeTitle
		if episodeTitle == "" {
			episodeTitle = UnknownEpisode
		}

		categories := utils.NewOrderedSet()
		tags := utils.NewOrderedSet()
		for _, in := range group {
			categories.Add(in.Category)
			for _, t := range in.Tags {
				tags.Add(t)
			}
		}

		stacks = append(stacks, &models.Stack{
			ID:           key,
			ThumbnailURL: first.ThumbnailURL,
			PodcastName:  podcastName,
			EpisodeTitle: episodeTitle,
			ChannelID:    first.ChannelID,
			Insights:     group,
			InsightCount: len(group),
			Categories:   categories.Values(),
			Tags:         tags.Values(),
			CreatedAt:    first.CreatedAt,
		})
	}

	sort.SliceStable(stacks, func(i, j int) bool {
		a, b := stacks[i], stacks[j]
		if !a.CreatedAt.IsZero() && !b.CreatedAt.IsZero() && !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.EpisodeTitle < b.EpisodeTitle
	})

	return stacks
}

// Categories returns all distinct categories across stacks, sorted.
func Categories(stacks []*models.Stack) []string {
	set := utils.NewOrderedSet()
	for _, s := range stacks {
		for _, c := range s.Categories {
			set.Add(c)
		}
	}
	out := set.Values()
	sort.Strings(out)
	return out
}

// Tags returns all distinct tags across stacks, sorted.
func Tags(stacks []*models.Stack) []string {
	set := utils.NewOrderedSet()
	for _, s := range stacks {
		for _, t := range s.Tags {
			set.Add(t)
		}
	}
	out := set.Values()
	sort.Strings(out)
	return out
}

// Related returns the other insights sharing an episode key with in, in their
// original order. Insights without a usable key have no related set.
func Related(in *models.Insight, all []*models.Insight) []*models.Insight {
	key := GroupKey(in)
	if key == "" {
		return nil
	}
	var related []*models.Insight
	for _, other := range all {
		if other.ID != in.ID && GroupKey(other) == key {
			related = append(related, other)
		}
	}
	return related
}

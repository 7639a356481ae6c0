package stack

import (
	"sort"
	"strings"

	"github.com/insightstack/insightstack/internal/models"
)

// Filters holds the predicates applied to a stack collection. Zero values
// mean "no constraint".
type Filters struct {
	// ChannelID matches the stack's channel identifier exactly.
	ChannelID string
	// Category matches case-insensitively as a substring of any stack category.
	Category string
	// Tags is a comma-separated list; a stack matches if any requested tag is
	// a case-insensitive substring of any stack tag.
	Tags string
	// Search matches case-insensitively as a substring of the episode title,
	// podcast name, or any constituent insight's title, problem, or description.
	Search string
	// MinInsights drops stacks with fewer constituent insights.
	MinInsights int
}

// Filter returns the stacks matching all of the given predicates, preserving
// their relative order.
func Filter(stacks []*models.Stack, f Filters) []*models.Stack {
	out := make([]*models.Stack, 0, len(stacks))
	for _, s := range stacks {
		if matches(s, f) {
			out = append(out, s)
		}
	}
	return out
}

func matches(s *models.Stack, f Filters) bool {
	if f.ChannelID != "" && s.ChannelID != f.ChannelID {
		return false
	}

	if f.Category != "" {
		want := strings.ToLower(f.Category)
		found := false
		for _, c := range s.Categories {
			if strings.Contains(strings.ToLower(c), want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.Tags != "" {
		if !matchesAnyTag(s.Tags, f.Tags) {
			return false
		}
	}

	if f.Search != "" {
		if !matchesSearch(s, f.Search) {
			return false
		}
	}

	if f.MinInsights > 0 && s.InsightCount < f.MinInsights {
		return false
	}

	return true
}

// matchesAnyTag implements OR semantics both across the requested tags and
// across the stack's tags.
func matchesAnyTag(stackTags []string, requested string) bool {
	for _, raw := range strings.Split(requested, ",") {
		want := strings.ToLower(strings.TrimSpace(raw))
		if want == "" {
			continue
		}
		for _, t := range stackTags {
			if strings.Contains(strings.ToLower(t), want) {
				return true
			}
		}
	}
	return false
}

func matchesSearch(s *models.Stack, search string) bool {
	want := strings.ToLower(search)
	if strings.Contains(strings.ToLower(s.EpisodeTitle), want) {
		return true
	}
	if strings.Contains(strings.ToLower(s.PodcastName), want) {
		return true
	}
	for _, in := range s.Insights {
		if strings.Contains(strings.ToLower(in.Title), want) ||
			strings.Contains(strings.ToLower(in.ProblemAddressed), want) ||
			strings.Contains(strings.ToLower(in.Description), want) {
			return true
		}
	}
	return false
}

// Sort orders stacks in place by the given sort key. Unknown keys fall back
// to newest-first. Stacks with missing timestamps sort last for the
// time-based keys.
func Sort(stacks []*models.Stack, key string) {
	switch key {
	case models.SortOldest:
		sort.SliceStable(stacks, func(i, j int) bool {
			a, b := stacks[i], stacks[j]
			if a.CreatedAt.IsZero() != b.CreatedAt.IsZero() {
				return !a.CreatedAt.IsZero()
			}
			return a.CreatedAt.Before(b.CreatedAt)
		})
	case models.SortTrending, models.SortPopular:
		sort.SliceStable(stacks, func(i, j int) bool {
			return stacks[i].InsightCount > stacks[j].InsightCount
		})
	default: // models.SortNewest
		sort.SliceStable(stacks, func(i, j int) bool {
			a, b := stacks[i], stacks[j]
			if a.CreatedAt.IsZero() != b.CreatedAt.IsZero() {
				return !a.CreatedAt.IsZero()
			}
			return a.CreatedAt.After(b.CreatedAt)
		})
	}
}

// Paginate slices the page [offset, offset+limit) out of stacks. Total always
// reflects the unpaginated count so callers can render "X of Y" displays.
func Paginate(stacks []*models.Stack, limit, offset int) *models.StackListResponse {
	start := offset
	if start < 0 {
		start = 0
	}
	if start > len(stacks) {
		start = len(stacks)
	}
	end := start + limit
	if limit <= 0 || end > len(stacks) {
		end = len(stacks)
	}
	return &models.StackListResponse{
		Data:  stacks[start:end],
		Total: len(stacks),
	}
}

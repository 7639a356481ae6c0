package search

import (
	"sort"
	"strings"

	"github.com/insightstack/insightstack/internal/models"
)

// Field weights for stack search scoring. Only the single best category, the
// single best tag, and the single best insight field contribute, so stacks
// with many tags or insights gain no score inflation.
const (
	weightInsightTitle = 10
	weightEpisodeTitle = 8
	weightTag          = 7
	weightPodcastName  = 6
	weightProblem      = 5
	weightDescription  = 3
	weightCategory     = 4
)

// SearchStacks ranks stacks against a free-text query. A blank query is the
// identity: every stack is returned with score 1 and no match records. A
// stack appears in the output only when its total score is positive. Results
// are ordered by score descending; ties keep their original relative order.
func SearchStacks(stacks []*models.Stack, query string) []*models.StackSearchResult {
	if strings.TrimSpace(query) == "" {
		results := make([]*models.StackSearchResult, 0, len(stacks))
		for _, s := range stacks {
			results = append(results, &models.StackSearchResult{
				Item:    s,
				Score:   1,
				Matches: []models.FieldMatch{},
			})
		}
		return results
	}

	results := make([]*models.StackSearchResult, 0)
	for _, s := range stacks {
		matches := make([]models.FieldMatch, 0, 4)
		total := 0.0

		if score := Similarity(s.EpisodeTitle, query) * weightEpisodeTitle; score > 0 {
			matches = append(matches, models.FieldMatch{Field: "episode_title", Text: s.EpisodeTitle, Score: score})
			total += score
		}

		if score := Similarity(s.PodcastName, query) * weightPodcastName; score > 0 {
			matches = append(matches, models.FieldMatch{Field: "podcast_name", Text: s.PodcastName, Score: score})
			total += score
		}

		if m, ok := bestMatch("category", s.Categories, query, weightCategory); ok {
			matches = append(matches, m)
			total += m.Score
		}

		if m, ok := bestMatch("tag", s.Tags, query, weightTag); ok {
			matches = append(matches, m)
			total += m.Score
		}

		if m, ok := bestInsightMatch(s.Insights, query); ok {
			matches = append(matches, m)
			total += m.Score
		}

		if total > 0 {
			results = append(results, &models.StackSearchResult{
				Item:    s,
				Score:   total,
				Matches: matches,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

// bestMatch scores every candidate and keeps only the single highest-scoring
// one.
func bestMatch(field string, candidates []string, query string, weight float64) (models.FieldMatch, bool) {
	best := models.FieldMatch{Field: field}
	for _, c := range candidates {
		if score := Similarity(c, query) * weight; score > best.Score {
			best.Text = c
			best.Score = score
		}
	}
	return best, best.Score > 0
}

// bestInsightMatch finds the single best-scoring field across all constituent
// insights, among title, problem-addressed, and description.
func bestInsightMatch(insights []*models.Insight, query string) (models.FieldMatch, bool) {
	var best models.FieldMatch
	for _, in := range insights {
		if score := Similarity(in.Title, query) * weightInsightTitle; score > best.Score {
			best = models.FieldMatch{Field: "insight_title", Text: in.Title, Score: score}
		}
		if score := Similarity(in.ProblemAddressed, query) * weightProblem; score > best.Score {
			best = models.FieldMatch{Field: "problem", Text: in.ProblemAddressed, Score: score}
		}
		if score := Similarity(in.Description, query) * weightDescription; score > best.Score {
			best = models.FieldMatch{Field: "description", Text: in.Description, Score: score}
		}
	}
	return best, best.Score > 0
}

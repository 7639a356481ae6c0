package search

import (
	"strings"

	"github.com/insightstack/insightstack/internal/models"
	"github.com/insightstack/insightstack/pkg/utils"
)

// Suggestions longer than this are truncated with an ellipsis.
const maxSuggestionLen = 50

// Suggest derives autocomplete strings for a partial query from the stack
// collection. Candidates are scanned in order (episode title, podcast name,
// categories, tags, insight titles) and collected until maxSuggestions
// distinct suggestions are found. A candidate is suggested when it starts
// with the query; for multi-word queries a candidate word completing the last
// query word also yields a suggestion with that word substituted in.
func Suggest(query string, stacks []*models.Stack, maxSuggestions int) []string {
	if maxSuggestions <= 0 {
		return []string{}
	}
	normalizedQuery := Normalize(query)
	if normalizedQuery == "" {
		return []string{}
	}
	queryWords := strings.Split(normalizedQuery, " ")

	suggestions := utils.NewOrderedSet()

	add := func(text string) {
		if text == "" || suggestions.Len() >= maxSuggestions {
			return
		}
		normalized := Normalize(text)
		// Never suggest the query itself
		if normalized == "" || normalized == normalizedQuery {
			return
		}
		if strings.HasPrefix(normalized, normalizedQuery) {
			suggestions.Add(utils.Truncate(text, maxSuggestionLen))
			return
		}
		// Word completion for multi-word queries: replace the last query word
		// with a candidate word that extends it.
		if len(queryWords) > 1 {
			last := queryWords[len(queryWords)-1]
			for _, word := range strings.Split(normalized, " ") {
				if word != last && strings.HasPrefix(word, last) {
					if suggestions.Len() >= maxSuggestions {
						return
					}
					completed := make([]string, 0, len(queryWords))
					completed = append(completed, queryWords[:len(queryWords)-1]...)
					completed = append(completed, word)
					suggestions.Add(strings.Join(completed, " "))
				}
			}
		}
	}

	for _, s := range stacks {
		if suggestions.Len() >= maxSuggestions {
			break
		}
		add(s.EpisodeTitle)
		add(s.PodcastName)
		for _, c := range s.Categories {
			if suggestions.Len() >= maxSuggestions {
				break
			}
			add(c)
		}
		for _, t := range s.Tags {
			if suggestions.Len() >= maxSuggestions {
				break
			}
			add(t)
		}
		for _, in := range s.Insights {
			if suggestions.Len() >= maxSuggestions {
				break
			}
			add(in.Title)
		}
	}

	values := suggestions.Values()
	if len(values) > maxSuggestions {
		values = values[:maxSuggestions]
	}
	return values
}

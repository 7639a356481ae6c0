// Package category folds the free-form category strings found on insights
// into a small set of display names.
package category

import "strings"

type mapping struct {
	key   string
	value string
}

// Ordered so partial matching is deterministic. More specific keys must come
// before any key they contain.
var categoryMappings = []mapping{
	{"tech", "Technology"},
	{"technology", "Technology"},
	{"software as a service", "SaaS"},
	{"software", "Technology"},
	{"artificial intelligence", "AI & Machine Learning"},
	{"machine learning", "AI & Machine Learning"},
	{"ai", "AI & Machine Learning"},

	{"business", "Business"},
	{"entrepreneurship", "Entrepreneurship"},
	{"startups", "Startups"},
	{"startup", "Startups"},

	{"digital marketing", "Marketing"},
	{"social media marketing", "Social Media"},
	{"social media", "Social Media"},
	{"content marketing", "Content Creation"},
	{"content creation", "Content Creation"},
	{"content", "Content Creation"},
	{"marketing", "Marketing"},

	{"finance", "Finance"},
	{"investing", "Investing"},
	{"investment", "Investing"},
	{"cryptocurrency", "Cryptocurrency"},
	{"crypto", "Cryptocurrency"},
	{"blockchain", "Cryptocurrency"},

	{"health", "Health & Wellness"},
	{"wellness", "Health & Wellness"},
	{"fitness", "Health & Wellness"},

	{"education", "Education"},
	{"e-learning", "Education"},
	{"elearning", "Education"},
	{"learning", "Education"},

	{"e-commerce", "E-commerce"},
	{"ecommerce", "E-commerce"},
	{"retail", "E-commerce"},

	{"saas", "SaaS"},

	{"real estate", "Real Estate"},
	{"property", "Real Estate"},

	{"miscellaneous", "Other"},
	{"misc", "Other"},
	{"other", "Other"},
}

var exactMappings = buildExact()

func buildExact() map[string]string {
	m := make(map[string]string, len(categoryMappings))
	for _, cm := range categoryMappings {
		if _, ok := m[cm.key]; !ok {
			m[cm.key] = cm.value
		}
	}
	return m
}

// Normalize maps a raw category to its canonical display name. Empty input
// becomes "Uncategorized"; unknown categories are title-cased as-is.
func Normalize(category string) string {
	if strings.TrimSpace(category) == "" {
		return "Uncategorized"
	}

	lower := strings.ToLower(strings.TrimSpace(category))
	if v, ok := exactMappings[lower]; ok {
		return v
	}
	for _, cm := range categoryMappings {
		if strings.Contains(lower, cm.key) {
			return cm.value
		}
	}

	return titleCase(category)
}

func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		runes := []rune(w)
		words[i] = strings.ToUpper(string(runes[0])) + strings.ToLower(string(runes[1:]))
	}
	return strings.Join(words, " ")
}

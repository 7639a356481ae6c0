package stack

import (
	"reflect"
	"testing"
	"time"

	"github.com/insightstack/insightstack/internal/models"
)

func insight(id, title, thumbnail, podcast, episode string) *models.Insight {
	return &models.Insight{
		ID:    id,
		Title: title,
		SourceContext: models.SourceContext{
			PodcastName:  podcast,
			EpisodeTitle: episode,
		},
		ThumbnailURL: thumbnail,
	}
}

func TestGroupKey(t *testing.T) {
	tests := []struct {
		name string
		in   *models.Insight
		want string
	}{
		{"thumbnail wins", insight("1", "t", "https://img/a.jpg", "Show", "Ep"), "https://img/a.jpg"},
		{"composite fallback", insight("2", "t", "", "Show", "Ep"), "Show|Ep"},
		{"partial context still groups", insight("3", "t", "", "Show", ""), "Show|"},
		{"no identity at all", insight("4", "t", "", "", ""), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GroupKey(tt.in); got != tt.want {
				t.Errorf("GroupKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildStacksGroupsByThumbnail(t *testing.T) {
	insights := []*models.Insight{
		insight("1", "Zed idea", "https://img/a.jpg", "Show", "Episode One"),
		insight("2", "Alpha idea", "https://img/a.jpg", "Show", "Episode One"),
		insight("3", "Other idea", "https://img/b.jpg", "Show", "Episode Two"),
	}

	stacks := BuildStacks(insights)
	if len(stacks) != 2 {
		t.Fatalf("got %d stacks, want 2", len(stacks))
	}

	var a *models.Stack
	for _, s := range stacks {
		if s.ID == "https://img/a.jpg" {
			a = s
		}
	}
	if a == nil {
		t.Fatal("stack for thumbnail a.jpg missing")
	}
	if a.InsightCount != 2 {
		t.Errorf("InsightCount = %d, want 2", a.InsightCount)
	}
	// Constituents sorted by title, so "Alpha idea" is the representative.
	if a.Insights[0].Title != "Alpha idea" {
		t.Errorf("first constituent = %q, want title order", a.Insights[0].Title)
	}
}

func TestBuildStacksDropsKeylessInsights(t *testing.T) {
	insights := []*models.Insight{
		insight("1", "Groupable", "https://img/a.jpg", "Show", "Ep"),
		insight("2", "Orphan", "", "", ""),
	}

	stacks := BuildStacks(insights)
	if len(stacks) != 1 {
		t.Fatalf("got %d stacks, want 1", len(stacks))
	}

	total := 0
	for _, s := range stacks {
		total += s.InsightCount
	}
	if total != 1 {
		t.Errorf("grouped %d insights, want 1 (orphan dropped)", total)
	}
}

func TestBuildStacksSentinels(t *testing.T) {
	in := insight("1", "Idea", "https://img/a.jpg", "", "")
	stacks := BuildStacks([]*models.Insight{in})
	if len(stacks) != 1 {
		t.Fatalf("got %d stacks, want 1", len(stacks))
	}
	if stacks[0].PodcastName != UnknownPodcast {
		t.Errorf("PodcastName = %q, want %q", stacks[0].PodcastName, UnknownPodcast)
	}
	if stacks[0].EpisodeTitle != UnknownEpisode {
		t.Errorf("EpisodeTitle = %q, want %q", stacks[0].EpisodeTitle, UnknownEpisode)
	}
}

func TestBuildStacksAggregatesDistinctCategoriesAndTags(t *testing.T) {
	a := insight("1", "A", "https://img/a.jpg", "Show", "Ep")
	a.Category = "saas"
	a.Tags = []string{"pricing", "growth"}
	b := insight("2", "B", "https://img/a.jpg", "Show", "Ep")
	b.Category = "saas"
	b.Tags = []string{"growth", "sales"}

	stacks := BuildStacks([]*models.Insight{a, b})
	if len(stacks) != 1 {
		t.Fatalf("got %d stacks, want 1", len(stacks))
	}
	if got, want := stacks[0].Categories, []string{"saas"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Categories = %v, want %v", got, want)
	}
	// First-seen order follows the title-sorted constituents.
	if got, want := stacks[0].Tags, []string{"pricing", "growth", "sales"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Tags = %v, want %v", got, want)
	}
}

func TestBuildStacksOrdersNewestFirst(t *testing.T) {
	old := insight("1", "A", "https://img/old.jpg", "Show", "Old Episode")
	old.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := insight("2", "B", "https://img/new.jpg", "Show", "New Episode")
	recent.CreatedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	undated := insight("3", "C", "https://img/undated.jpg", "Show", "A Timeless Episode")

	stacks := BuildStacks([]*models.Insight{old, undated, recent})
	got := make([]string, 0, len(stacks))
	for _, s := range stacks {
		got = append(got, s.EpisodeTitle)
	}
	// Undated stacks fall back to title comparison against everything.
	want := []string{"A Timeless Episode", "New Episode", "Old Episode"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("stack order = %v, want %v", got, want)
	}
}

func TestBuildStacksDeterministic(t *testing.T) {
	insights := make([]*models.Insight, 0, 20)
	for i := 0; i < 20; i++ {
		in := insight(
			string(rune('a'+i)),
			"Idea "+string(rune('a'+i)),
			"https://img/"+string(rune('a'+i%5))+".jpg",
			"Show", "Ep "+string(rune('a'+i%5)),
		)
		insights = append(insights, in)
	}

	first := BuildStacks(insights)
	for run := 0; run < 5; run++ {
		again := BuildStacks(insights)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("BuildStacks not deterministic on run %d", run)
		}
	}
}

func TestRelated(t *testing.T) {
	a := insight("1", "A", "https://img/a.jpg", "Show", "Ep")
	b := insight("2", "B", "https://img/a.jpg", "Show", "Ep")
	c := insight("3", "C", "https://img/b.jpg", "Show", "Other")
	orphan := insight("4", "D", "", "", "")
	all := []*models.Insight{a, b, c, orphan}

	related := Related(a, all)
	if len(related) != 1 || related[0].ID != "2" {
		t.Errorf("Related(a) = %v, want just insight 2", related)
	}
	if got := Related(orphan, all); got != nil {
		t.Errorf("Related(orphan) = %v, want nil", got)
	}
}

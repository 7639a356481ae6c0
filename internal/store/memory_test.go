package store

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/insightstack/insightstack/internal/models"
)

func seededStore(t *testing.T) *MemoryStore {
	t.Helper()
	st := NewMemoryStore()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	insights := []*models.Insight{
		{
			ID: "i1", ChannelID: "ch1", Title: "Charge for outcomes",
			Category: "saas", Tags: []string{"pricing", "sales"},
			SourceContext: models.SourceContext{PodcastName: "My First Million", EpisodeTitle: "Building a SaaS"},
			ThumbnailURL:  "https://img/ep1.jpg", CreatedAt: now,
		},
		{
			ID: "i2", ChannelID: "ch1", Title: "Always be shipping",
			Category: "startup", Tags: []string{"validation"},
			SourceContext: models.SourceContext{PodcastName: "My First Million", EpisodeTitle: "Building a SaaS"},
			ThumbnailURL:  "https://img/ep1.jpg", CreatedAt: now.Add(-time.Hour),
		},
		{
			ID: "i3", ChannelID: "ch2", Title: "Narrow agent tasks",
			Category: "ai", Tags: []string{"agents"},
			SourceContext: models.SourceContext{PodcastName: "a16z", EpisodeTitle: "State of AI"},
			ThumbnailURL:  "https://img/ep2.jpg", CreatedAt: now.Add(-2 * time.Hour),
		},
	}
	if err := st.InsertInsights(context.Background(), insights); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return st
}

func TestMemoryStoreListInsights(t *testing.T) {
	st := seededStore(t)
	ctx := context.Background()

	all, err := st.ListInsights(ctx, Query{})
	if err != nil {
		t.Fatalf("ListInsights failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d insights, want 3", len(all))
	}
	if all[0].ID != "i1" {
		t.Errorf("first insight = %s, want newest (i1)", all[0].ID)
	}
}

func TestMemoryStoreQueryFilters(t *testing.T) {
	st := seededStore(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		query   Query
		wantIDs []string
	}{
		{"by channel", Query{ChannelID: "ch2"}, []string{"i3"}},
		{"by category substring", Query{Category: "SAAS"}, []string{"i1"}},
		{"by tag substring", Query{Tags: []string{"agent"}}, []string{"i3"}},
		{"by tag any-of", Query{Tags: []string{"validation", "agents"}}, []string{"i2", "i3"}},
		{"by search word", Query{Search: "shipping"}, []string{"i2"}},
		{"search covers podcast name", Query{Search: "a16z"}, []string{"i3"}},
		{"no match", Query{Search: "zzz"}, []string{}},
		{"paging", Query{Limit: 1, Offset: 1}, []string{"i2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := st.ListInsights(ctx, tt.query)
			if err != nil {
				t.Fatalf("ListInsights failed: %v", err)
			}
			ids := make([]string, 0, len(got))
			for _, in := range got {
				ids = append(ids, in.ID)
			}
			if !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Errorf("got %v, want %v", ids, tt.wantIDs)
			}
		})
	}
}

func TestMemoryStoreCountIgnoresPaging(t *testing.T) {
	st := seededStore(t)

	n, err := st.CountInsights(context.Background(), Query{Limit: 1})
	if err != nil {
		t.Fatalf("CountInsights failed: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
}

func TestMemoryStoreGetInsight(t *testing.T) {
	st := seededStore(t)
	ctx := context.Background()

	in, err := st.GetInsight(ctx, "i2")
	if err != nil {
		t.Fatalf("GetInsight failed: %v", err)
	}
	if in.Title != "Always be shipping" {
		t.Errorf("got %q", in.Title)
	}

	if _, err := st.GetInsight(ctx, "missing"); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreInsightsByThumbnail(t *testing.T) {
	st := seededStore(t)

	got, err := st.InsightsByThumbnail(context.Background(), "https://img/ep1.jpg")
	if err != nil {
		t.Fatalf("InsightsByThumbnail failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d insights, want 2", len(got))
	}
	// Ordered by title ascending.
	if got[0].ID != "i2" || got[1].ID != "i1" {
		t.Errorf("order = [%s %s], want title ascending", got[0].ID, got[1].ID)
	}
}

func TestMemoryStoreDistinctCategories(t *testing.T) {
	st := seededStore(t)

	got, err := st.DistinctCategories(context.Background())
	if err != nil {
		t.Fatalf("DistinctCategories failed: %v", err)
	}
	want := []string{"ai", "saas", "startup"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMemoryStoreTopTags(t *testing.T) {
	st := seededStore(t)

	got, err := st.TopTags(context.Background(), 2)
	if err != nil {
		t.Fatalf("TopTags failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d tags, want limit 2", len(got))
	}
}

func TestMemoryStoreChannels(t *testing.T) {
	st := seededStore(t)

	got, err := st.Channels(context.Background())
	if err != nil {
		t.Fatalf("Channels failed: %v", err)
	}
	want := []ChannelInfo{
		{ChannelID: "ch1", ChannelName: "My First Million"},
		{ChannelID: "ch2", ChannelName: "a16z"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

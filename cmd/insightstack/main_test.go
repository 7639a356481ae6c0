package main

import (
	"reflect"
	"testing"
)

func TestBuildSearchQuery(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"single word", []string{"pricing"}, "pricing"},
		{"multiple words joined", []string{"cold", "email"}, "cold email"},
		{"empty args", nil, ""},
		{"trims whitespace", []string{" pricing "}, "pricing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildSearchQuery(tt.args); got != tt.want {
				t.Errorf("buildSearchQuery(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestSearchArgsReorder(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"flags already first", []string{"-limit", "5", "query"}, []string{"-limit", "5", "query"}},
		{"flags after query moved first", []string{"cold", "email", "-limit", "5"}, []string{"-limit", "5", "cold", "email"}},
		{"no flags", []string{"cold", "email"}, []string{"cold", "email"}},
		{"empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := searchArgsReorder(tt.args); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("searchArgsReorder(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestSeedInsightsShapes(t *testing.T) {
	insights := seedInsights()
	if len(insights) == 0 {
		t.Fatal("no seed insights")
	}

	seenIDs := make(map[string]bool)
	for _, in := range insights {
		if in.ID == "" || seenIDs[in.ID] {
			t.Errorf("insight ID %q missing or duplicated", in.ID)
		}
		seenIDs[in.ID] = true
		if in.ThumbnailURL == "" {
			t.Errorf("insight %q has no thumbnail, would be dropped from stacks", in.Title)
		}
		if in.SourceContext.PodcastName == "" || in.SourceContext.EpisodeTitle == "" {
			t.Errorf("insight %q has incomplete source context", in.Title)
		}
	}
}

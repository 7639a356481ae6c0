package store

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildFilterEmpty(t *testing.T) {
	filter := buildFilter(Query{})
	if len(filter) != 0 {
		t.Errorf("empty query produced filter %v", filter)
	}
}

func TestBuildFilterChannelExact(t *testing.T) {
	filter := buildFilter(Query{ChannelID: "UC123"})
	if filter["channelId"] != "UC123" {
		t.Errorf("channelId = %v, want exact string match", filter["channelId"])
	}
}

func TestBuildFilterQuotesRegexMetacharacters(t *testing.T) {
	filter := buildFilter(Query{Category: "c++ (advanced)"})
	re, ok := filter["category"].(primitive.Regex)
	if !ok {
		t.Fatalf("category filter is %T, want primitive.Regex", filter["category"])
	}
	if re.Options != "i" {
		t.Errorf("regex options = %q, want case-insensitive", re.Options)
	}
	want := `c\+\+ \(advanced\)`
	if re.Pattern != want {
		t.Errorf("pattern = %q, want quoted %q", re.Pattern, want)
	}
}

func TestBuildFilterTags(t *testing.T) {
	filter := buildFilter(Query{Tags: []string{"ai", " saas ", ""}})
	clause, ok := filter["tags"].(bson.M)
	if !ok {
		t.Fatalf("tags filter is %T, want bson.M", filter["tags"])
	}
	patterns, ok := clause["$in"].(bson.A)
	if !ok {
		t.Fatalf("tags clause missing $in: %v", clause)
	}
	if len(patterns) != 2 {
		t.Fatalf("got %d tag patterns, want 2 (blank dropped)", len(patterns))
	}
	if patterns[1].(primitive.Regex).Pattern != "saas" {
		t.Errorf("tag not trimmed: %v", patterns[1])
	}
}

func TestBuildFilterSearchSpansFields(t *testing.T) {
	filter := buildFilter(Query{Search: "cold email"})
	or, ok := filter["$or"].(bson.A)
	if !ok {
		t.Fatalf("search filter missing $or: %v", filter)
	}
	if len(or) != 7 {
		t.Errorf("search spans %d fields, want 7", len(or))
	}
	title := or[0].(bson.M)["title"].(primitive.Regex)
	if title.Pattern != "cold|email" {
		t.Errorf("pattern = %q, want word alternation", title.Pattern)
	}
}

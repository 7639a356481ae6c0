package favorites

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "favorites.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreAddAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Add(ctx, "i1"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := s.Add(ctx, "i2"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	favs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(favs) != 2 {
		t.Fatalf("got %d favorites, want 2", len(favs))
	}
	if favs[0].InsightID != "i1" {
		t.Errorf("first favorite = %s, want oldest first", favs[0].InsightID)
	}
}

func TestStoreAddIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := s.Add(ctx, "i1"); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Count = %d after repeated adds, want 1", n)
	}
}

func TestStoreRejectsEmptyID(t *testing.T) {
	s := newTestStore(t)
	if err := s.Add(context.Background(), ""); err == nil {
		t.Error("Add with empty id succeeded")
	}
}

func TestStoreRemove(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Add(ctx, "i1"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := s.Remove(ctx, "i1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := s.Remove(ctx, "i1"); err != nil {
		t.Errorf("removing an absent id should be a no-op, got %v", err)
	}

	ok, err := s.IsFavorite(ctx, "i1")
	if err != nil {
		t.Fatalf("IsFavorite failed: %v", err)
	}
	if ok {
		t.Error("insight still favorite after Remove")
	}
}

func TestStoreIsFavorite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Add(ctx, "i1"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	ok, err := s.IsFavorite(ctx, "i1")
	if err != nil || !ok {
		t.Errorf("IsFavorite(i1) = %v, %v; want true", ok, err)
	}
	ok, err = s.IsFavorite(ctx, "i2")
	if err != nil || ok {
		t.Errorf("IsFavorite(i2) = %v, %v; want false", ok, err)
	}
}

package utils

import (
	"reflect"
	"testing"
)

func TestOrderedSet(t *testing.T) {
	s := NewOrderedSet()

	if !s.Add("b") || !s.Add("a") || !s.Add("c") {
		t.Fatal("first insertions should return true")
	}
	if s.Add("a") {
		t.Error("duplicate insertion should return false")
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if !s.Contains("b") || s.Contains("z") {
		t.Error("Contains gave wrong answer")
	}

	want := []string{"b", "a", "c"}
	if got := s.Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("Values() = %v, want insertion order %v", got, want)
	}
}

func TestOrderedSetValuesIsCopy(t *testing.T) {
	s := NewOrderedSet()
	s.Add("x")
	s.Add("y")

	values := s.Values()
	values[0] = "mutated"

	if got := s.Values()[0]; got != "x" {
		t.Errorf("internal state mutated through Values(): got %q", got)
	}
}

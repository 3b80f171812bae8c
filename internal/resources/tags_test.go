package resources

import (
	"slices"
	"testing"
)

func TestTagSetAddDeduplicates(t *testing.T) {
	var s TagSet
	s.Add("math")
	s.Add("science")
	s.Add("math")

	want := []string{"math", "science"}
	if got := s.Tags(); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTagSetIsCaseSensitive(t *testing.T) {
	var s TagSet
	s.Add("Math")
	s.Add("math")

	if got := s.Tags(); len(got) != 2 {
		t.Errorf("got %v, want both Math and math", got)
	}
}

func TestTagSetIgnoresEmpty(t *testing.T) {
	var s TagSet
	s.Add("")
	if got := s.Tags(); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestTagSetRemove(t *testing.T) {
	var s TagSet
	s.Add("math")
	s.Add("science")
	s.Remove("math")
	s.Remove("absent")

	want := []string{"science"}
	if got := s.Tags(); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTagSetNeverNil(t *testing.T) {
	var s TagSet
	if s.Tags() == nil {
		t.Error("Tags() should never return nil")
	}
}

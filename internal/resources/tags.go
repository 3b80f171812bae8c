package resources

import "slices"

// TagSet accumulates resource tags, preserving insertion order and
// rejecting exact duplicates. Comparison is case-sensitive, so "Math" and
// "math" are distinct tags.
type TagSet struct {
	tags []string
}

// Add appends a tag unless it is empty or already present.
func (s *TagSet) Add(tag string) {
	if tag == "" || slices.Contains(s.tags, tag) {
		return
	}
	s.tags = append(s.tags, tag)
}

// Remove deletes a tag if present.
func (s *TagSet) Remove(tag string) {
	s.tags = slices.DeleteFunc(s.tags, func(t string) bool { return t == tag })
}

// Tags returns the current tags in insertion order. Never nil.
func (s *TagSet) Tags() []string {
	if s.tags == nil {
		return []string{}
	}
	return slices.Clone(s.tags)
}

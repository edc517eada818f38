package patternlock

// Selection is the ordered, duplicate-free list of point ids visited by the
// in-progress gesture. The zero value is empty and ready to use.
type Selection struct {
	ids []int
}

// Append adds id to the end of the selection. It reports false and leaves the
// selection unchanged if id is already present.
func (s *Selection) Append(id int) bool {
	if s.Contains(id) {
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

// Contains reports whether id has been visited.
func (s *Selection) Contains(id int) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Reset empties the selection, keeping its backing array.
func (s *Selection) Reset() {
	s.ids = s.ids[:0]
}

// Len returns the number of selected ids.
func (s *Selection) Len() int {
	return len(s.ids)
}

// Last returns the most recently appended id.
func (s *Selection) Last() (int, bool) {
	if len(s.ids) == 0 {
		return 0, false
	}
	return s.ids[len(s.ids)-1], true
}

// Snapshot returns a copy of the selection in visitation order. The result is
// never nil and never aliases internal state.
func (s *Selection) Snapshot() []int {
	out := make([]int, len(s.ids))
	copy(out, s.ids)
	return out
}

// view returns the live slice for read-only internal use.
func (s *Selection) view() []int {
	return s.ids
}

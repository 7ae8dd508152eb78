package vlist

import "sort"

// Range is a contiguous run of layout entries [Start, Start+Count).
type Range struct {
	Start int
	Count int
}

// End returns the exclusive end index.
func (r Range) End() int { return r.Start + r.Count }

// Empty reports whether the range holds no entries.
func (r Range) Empty() bool { return r.Count == 0 }

// Contains reports whether index i is inside the range.
func (r Range) Contains(i int) bool { return i >= r.Start && i < r.End() }

// Window returns the entries intersecting [scrollOffset, scrollOffset+viewportHeight).
// Entry tops are non-decreasing, so the start is found by binary search and
// scroll jumps of any distance cost the same.
func Window(l Layout, scrollOffset, viewportHeight int) Range {
	entries := l.Entries
	if len(entries) == 0 || viewportHeight <= 0 {
		return Range{}
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}

	// no entry before lo can reach the offset: its top plus the tallest
	// entry height is still above it.
	lo := sort.Search(len(entries), func(i int) bool {
		return entries[i].Y+l.tallest > scrollOffset
	})
	start := lo
	for start < len(entries) && entries[start].Bottom() <= scrollOffset {
		start++
	}
	if start == len(entries) {
		return Range{}
	}

	limit := scrollOffset + viewportHeight
	end := start
	for end < len(entries) && entries[end].Y < limit {
		end++
	}
	return Range{Start: start, Count: end - start}
}

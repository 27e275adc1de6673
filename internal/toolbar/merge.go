package toolbar

import "slices"

// Merge inserts entries into a copy of base and returns the result. base is
// not modified.
//
// Entries are applied in order, and each position is resolved against the
// sequence as grown by the entries before it. Two entries both asking for
// position 0 therefore end up with the later one first, and -1 always means
// "just before whatever is currently last".
func Merge(base []Unit, entries []Entry) []Unit {
	return merge(base, entries, nil)
}

// merge is Merge with the wrapped units reporting failures to registry.
func merge(base []Unit, entries []Entry, registry *Registry) []Unit {
	seq := slices.Clone(base)
	for _, e := range entries {
		idx := ResolveIndex(e.Contribution.Position, len(seq))
		wrapped := Isolate(e.ID, e.Contribution.Unit, e.Contribution.Isolation)
		wrapped.failures = registry
		seq = slices.Insert(seq, idx, Unit(wrapped))
	}
	return seq
}

// ResolveIndex maps a requested position onto an insertion index for a
// sequence of the given length.
//
//	nil        -> length (append)
//	p >= 0     -> p, or length when p is past the end
//	p < 0      -> length+p, or 0 when that is negative
func ResolveIndex(position *int, length int) int {
	if position == nil {
		return length
	}
	p := *position
	if p >= 0 {
		return min(p, length)
	}
	return max(length+p, 0)
}

package engine

import (
	"sort"
	"strings"
)

// Edit replaces Deleted bytes at Position with Inserted. Offsets are
// byte positions in the source the edit was computed against.
type Edit struct {
	Position int
	Deleted  int
	Inserted string
}

// Apply splices edits into source left to right. Edits are processed
// in position order; an edit that starts inside a region an earlier
// edit already consumed is dropped. Positions beyond the end of the
// source are ignored, and a deletion running past the end is trimmed.
func Apply(source string, edits []Edit) string {
	if len(edits) == 0 {
		return source
	}
	sorted := append([]Edit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})

	var sb strings.Builder
	start := 0
	for _, e := range sorted {
		if e.Position < start || e.Position > len(source) {
			continue
		}
		sb.WriteString(source[start:e.Position])
		sb.WriteString(e.Inserted)
		start = e.Position + e.Deleted
		if start > len(source) {
			start = len(source)
		}
	}
	sb.WriteString(source[start:])
	return sb.String()
}

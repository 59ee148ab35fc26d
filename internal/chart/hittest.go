package chart

import (
	"math"

	"lifescore/internal/core"
)

// DefaultHitRadius is the tap tolerance in screen-space units, independent
// of data density.
const DefaultHitRadius = 12.0

// HitTest resolves a pointer coordinate to a plotted point carrying a note.
// Candidates are scanned in ascending date order and the first point within
// radius wins. This is deliberately first-match, not nearest-match: when
// two note-bearing points sit inside the same radius, the earlier date
// wins regardless of distance. A miss returns ok=false, which callers
// treat as "clear selection".
func HitTest(points []Point, x, y, radius float64) (Point, bool) {
	for _, pt := range points {
		if !core.HasNote(pt.Note) {
			continue
		}
		if math.Hypot(x-pt.X, y-pt.Y) <= radius {
			return pt, true
		}
	}
	return Point{}, false
}

package chart

import "testing"

func TestHitTestFirstMatchWinsOverNearest(t *testing.T) {
	// Two note-bearing points 4 units apart, tap exactly equidistant at 2
	// units from both, radius 12. First-match means the earlier date wins
	// even though both are equally close. This is deliberate behavior, not
	// a missing nearest-neighbor search.
	points := []Point{
		{Date: "2025-08-10", Note: "earlier", X: 100, Y: 50},
		{Date: "2025-08-11", Note: "later", X: 104, Y: 50},
	}

	got, ok := HitTest(points, 102, 50, DefaultHitRadius)
	if !ok {
		t.Fatal("expected a hit")
	}
	if got.Date != "2025-08-10" {
		t.Fatalf("hit %s, want the earlier date 2025-08-10", got.Date)
	}
}

func TestHitTestSkipsNotelessPoints(t *testing.T) {
	// A blank note is no note, same policy as core.HasNote.
	points := []Point{
		{Date: "2025-08-10", Note: "", X: 100, Y: 50},
		{Date: "2025-08-11", Note: "   ", X: 100, Y: 50},
		{Date: "2025-08-12", Note: "noted", X: 101, Y: 50},
	}

	got, ok := HitTest(points, 100, 50, DefaultHitRadius)
	if !ok {
		t.Fatal("expected a hit on the note-bearing point")
	}
	if got.Date != "2025-08-12" {
		t.Fatalf("hit %s, want 2025-08-12", got.Date)
	}
}

func TestHitTestMissClearsSelection(t *testing.T) {
	points := []Point{
		{Date: "2025-08-10", Note: "noted", X: 100, Y: 50},
	}

	if _, ok := HitTest(points, 200, 200, DefaultHitRadius); ok {
		t.Fatal("tap far from every point must return no selection")
	}
	if _, ok := HitTest(nil, 0, 0, DefaultHitRadius); ok {
		t.Fatal("no candidates must return no selection")
	}
}

func TestHitTestRadiusBoundary(t *testing.T) {
	points := []Point{{Date: "2025-08-10", Note: "edge", X: 0, Y: 0}}

	if _, ok := HitTest(points, 12, 0, 12); !ok {
		t.Fatal("distance exactly equal to radius is a hit")
	}
	if _, ok := HitTest(points, 12.01, 0, 12); ok {
		t.Fatal("distance past the radius is a miss")
	}
}

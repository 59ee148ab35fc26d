// Package chart projects monthly score records onto 2D chart geometry and
// resolves pointer taps back to records. All functions are pure; rendering
// belongs to the consuming surface.
package chart

import (
	"log/slog"
	"sort"
	"strconv"

	"lifescore/internal/core"
)

// Fixed value-axis bounds. Scores outside this range never reach the
// projector because the service rejects them at save time.
const (
	minScore = core.MinScore
	maxScore = core.MaxScore
)

// PointRadius is the plotted dot radius in screen-space units.
const PointRadius = 4.5

// Size is the drawable surface in screen-space units.
type Size struct {
	Width  float64
	Height float64
}

// Insets reserve space for axis labels inside the surface.
type Insets struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// DefaultInsets match a 30-unit gutter for the value axis and a 20-unit
// gutter above and below, with a half gutter on the right.
func DefaultInsets() Insets {
	return Insets{Left: 30, Top: 20, Right: 15, Bottom: 20}
}

// Frame is the graph rectangle after insets are applied.
type Frame struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

func (f Frame) Width() float64  { return f.Right - f.Left }
func (f Frame) Height() float64 { return f.Bottom - f.Top }

// Point is one projected record. Ratios are normalized to [0,1]; X and Y
// are screen-space coordinates inside the frame. Y grows downward, so a
// higher score yields a smaller Y.
type Point struct {
	Date   string  `json:"date"`
	Day    int     `json:"day"`
	Score  int     `json:"score"`
	Note   string  `json:"note,omitempty"`
	XRatio float64 `json:"xRatio"`
	YRatio float64 `json:"yRatio"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// Tick is an axis mark with its label anchor position.
type Tick struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Projection is the full chart geometry for one month. Points are sorted by
// date ascending and double as the polyline path. Empty reports the
// no-data state the caller must render explicitly.
type Projection struct {
	Frame       Frame   `json:"frame"`
	Points      []Point `json:"points"`
	PointRadius float64 `json:"pointRadius"`
	ValueTicks  []Tick  `json:"valueTicks"`
	DayTicks    []Tick  `json:"dayTicks"`
	Empty       bool    `json:"empty"`
}

// Project maps the month's records into chart geometry. Records whose
// stored date fails calendar parsing are excluded from the plot rather
// than aborting the render.
func Project(records []core.ScoreRecord, month core.YearMonth, size Size, in Insets) Projection {
	frame := Frame{
		Left:   in.Left,
		Top:    in.Top,
		Right:  size.Width - in.Right,
		Bottom: size.Height - in.Bottom,
	}
	p := Projection{Frame: frame, PointRadius: PointRadius}

	days := month.DaysInMonth()
	span := days - 1
	if span < 1 {
		span = 1 // degenerate single-day month collapses to xRatio 0
	}

	for _, r := range records {
		t, err := core.ParseDate(r.Date)
		if err != nil {
			slog.Warn("Skipping record with malformed date", "date", r.Date)
			continue
		}
		day := t.Day()
		xr := float64(day-1) / float64(span)
		yr := float64(r.Score-minScore) / float64(maxScore-minScore)
		p.Points = append(p.Points, Point{
			Date:   r.Date,
			Day:    day,
			Score:  r.Score,
			Note:   r.Note,
			XRatio: xr,
			YRatio: yr,
			X:      frame.Left + xr*frame.Width(),
			Y:      frame.Bottom - yr*frame.Height(),
		})
	}

	if len(p.Points) == 0 {
		p.Empty = true
		return p
	}

	sort.Slice(p.Points, func(i, j int) bool {
		return p.Points[i].Date < p.Points[j].Date
	})

	for s := minScore; s <= maxScore; s++ {
		yr := float64(s-minScore) / float64(maxScore-minScore)
		p.ValueTicks = append(p.ValueTicks, Tick{
			Label: strconv.Itoa(s),
			X:     frame.Left,
			Y:     frame.Bottom - yr*frame.Height(),
		})
	}

	// One tick per distinct plotted date, not per calendar day. Sparse
	// data yields sparse ticks.
	lastDate := ""
	for _, pt := range p.Points {
		if pt.Date == lastDate {
			continue
		}
		lastDate = pt.Date
		p.DayTicks = append(p.DayTicks, Tick{
			Label: strconv.Itoa(pt.Day),
			X:     pt.X,
			Y:     frame.Bottom,
		})
	}

	return p
}

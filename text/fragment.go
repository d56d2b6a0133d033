package text

import (
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/zabl/finextract/font"
	"github.com/zabl/finextract/model"
	"github.com/zabl/finextract/reader"
)

// Fragment is a run of text on a single baseline.
type Fragment struct {
	Text      string
	X, Y      float64 // left edge, baseline
	Width     float64
	Height    float64
	FontName  string
	FontSize  float64
	Direction Direction
}

// Right returns the fragment's right edge
func (f Fragment) Right() float64 {
	return f.X + f.Width
}

// BBox returns the box from the baseline up one font height
func (f Fragment) BBox() model.BBox {
	return model.BBox{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height}
}

// Center returns the centre of the fragment's box
func (f Fragment) Center() model.Point {
	return f.BBox().Center()
}

// Merger builds fragments from glyphs.
type Merger struct {
	// MaxGap is the largest horizontal gap, in font sizes, bridged inside
	// a fragment.
	MaxGap float64

	// BaselineTolerance is the largest baseline shift, in font sizes, still
	// treated as the same line.
	BaselineTolerance float64

	// EstimatedAdvance is the per-character advance, in font sizes, used
	// for glyphs whose font reports no width and is not a standard font.
	EstimatedAdvance float64
}

// NewMerger creates a merger with default thresholds.
func NewMerger() *Merger {
	return &Merger{
		MaxGap:            0.6,
		BaselineTolerance: 0.2,
		EstimatedAdvance:  0.5,
	}
}

// run is a fragment under construction.
type run struct {
	sb      strings.Builder
	first   reader.Glyph
	last    reader.Glyph
	cursor  float64 // right edge so far
	solid   float64 // right edge of the last non-blank glyph
	spaces  int     // trailing whitespace glyphs
	started bool
}

// Merge turns glyphs, in content-stream order, into fragments. Empty and
// whitespace-only fragments are dropped.
func (m *Merger) Merge(glyphs []reader.Glyph) []Fragment {
	var out []Fragment
	var cur run

	flush := func() {
		if !cur.started {
			return
		}
		if f, ok := m.finish(&cur); ok {
			out = append(out, f)
		}
		cur = run{}
	}

	for _, g := range glyphs {
		size := fontSize(g)
		blank := strings.TrimSpace(g.Text) == ""

		if cur.started && !m.continues(&cur, g, size) {
			flush()
		}

		if blank {
			if !cur.started {
				continue
			}
			cur.spaces++
			if cur.spaces >= 2 {
				flush()
				continue
			}
		} else {
			cur.spaces = 0
		}

		if !cur.started {
			cur.first = g
			cur.cursor = g.X
			cur.started = true
		}
		cur.sb.WriteString(g.Text)
		cur.cursor = math.Max(cur.cursor, g.X) + m.advance(g, size)
		if !blank {
			cur.solid = cur.cursor
		}
		cur.last = g
	}
	flush()

	return out
}

// continues reports whether g extends the current run.
func (m *Merger) continues(cur *run, g reader.Glyph, size float64) bool {
	tol := m.BaselineTolerance * math.Max(size, fontSize(cur.last))
	if math.Abs(g.Y-cur.last.Y) > tol {
		return false
	}
	// Backwards jumps mean a new text position, not the next glyph.
	if g.X < cur.last.X-tol {
		return false
	}
	return g.X-cur.cursor <= m.MaxGap*size
}

func (m *Merger) advance(g reader.Glyph, size float64) float64 {
	if g.Width > 0 {
		return g.Width
	}
	if w, ok := font.StringWidth(g.Font, g.Text); ok {
		return w * size / 1000
	}
	return m.EstimatedAdvance * size * float64(utf8.RuneCountInString(g.Text))
}

func (m *Merger) finish(cur *run) (Fragment, bool) {
	s := strings.TrimSpace(norm.NFKC.String(cur.sb.String()))
	if s == "" {
		return Fragment{}, false
	}
	size := fontSize(cur.first)
	return Fragment{
		Text:      s,
		X:         cur.first.X,
		Y:         cur.first.Y,
		Width:     cur.solid - cur.first.X,
		Height:    size,
		FontName:  cur.first.Font,
		FontSize:  size,
		Direction: DetectDirection(s),
	}, true
}

// fontSize guards against zero sizes from degenerate text matrices.
func fontSize(g reader.Glyph) float64 {
	if g.FontSize <= 0 {
		return 1
	}
	return g.FontSize
}

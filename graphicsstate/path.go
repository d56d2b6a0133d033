package graphicsstate

import (
	"math"

	"github.com/zabl/finextract/model"
)

// SegmentKind identifies a path segment
type SegmentKind int

const (
	SegMoveTo SegmentKind = iota
	SegLineTo
	SegCurveTo
	SegClose
)

// Segment is one piece of a path, in user space before the CTM. A curve
// keeps only its end point; ruling detection never needs the control points.
type Segment struct {
	Kind SegmentKind
	To   model.Point
}

// Path is the path under construction between painting operators.
type Path struct {
	Segments []Segment

	current      model.Point
	subpathStart model.Point
	hasCurrent   bool
}

// MoveTo starts a new subpath (m operator)
func (p *Path) MoveTo(x, y float64) {
	pt := model.Point{X: x, Y: y}
	p.Segments = append(p.Segments, Segment{Kind: SegMoveTo, To: pt})
	p.current = pt
	p.subpathStart = pt
	p.hasCurrent = true
}

// LineTo appends a straight segment (l operator). Without a current point
// it behaves as MoveTo.
func (p *Path) LineTo(x, y float64) {
	if !p.hasCurrent {
		p.MoveTo(x, y)
		return
	}
	pt := model.Point{X: x, Y: y}
	p.Segments = append(p.Segments, Segment{Kind: SegLineTo, To: pt})
	p.current = pt
}

// CurveTo appends a curve ending at (x, y) (c, v and y operators)
func (p *Path) CurveTo(x, y float64) {
	if !p.hasCurrent {
		p.MoveTo(x, y)
		return
	}
	pt := model.Point{X: x, Y: y}
	p.Segments = append(p.Segments, Segment{Kind: SegCurveTo, To: pt})
	p.current = pt
}

// Close closes the current subpath (h operator)
func (p *Path) Close() {
	if !p.hasCurrent {
		return
	}
	p.Segments = append(p.Segments, Segment{Kind: SegClose, To: p.subpathStart})
	p.current = p.subpathStart
}

// Rectangle appends a closed rectangular subpath (re operator). Negative
// width or height are allowed and describe the same rectangle.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Reset discards the path
func (p *Path) Reset() {
	p.Segments = p.Segments[:0]
	p.hasCurrent = false
}

// IsEmpty returns true if the path has no segments
func (p *Path) IsEmpty() bool {
	return len(p.Segments) == 0
}

// subpaths splits the path at each MoveTo.
func (p *Path) subpaths() [][]Segment {
	var out [][]Segment
	start := -1
	for i, seg := range p.Segments {
		if seg.Kind == SegMoveTo {
			if start >= 0 {
				out = append(out, p.Segments[start:i])
			}
			start = i
		}
	}
	if start >= 0 {
		out = append(out, p.Segments[start:])
	}
	return out
}

// Line is a painted straight segment in user space.
type Line struct {
	Start model.Point
	End   model.Point
	Width float64
	Color [3]float64
}

// Length returns the Euclidean length of the line
func (l Line) Length() float64 {
	return math.Hypot(l.End.X-l.Start.X, l.End.Y-l.Start.Y)
}

// IsHorizontal reports whether the line's vertical drift is within tol.
func (l Line) IsHorizontal(tol float64) bool {
	return math.Abs(l.End.Y-l.Start.Y) <= tol
}

// IsVertical reports whether the line's horizontal drift is within tol.
func (l Line) IsVertical(tol float64) bool {
	return math.Abs(l.End.X-l.Start.X) <= tol
}

// BBox returns the line's bounding box (zero width or height for axis lines)
func (l Line) BBox() model.BBox {
	return model.NewBBoxFromPoints(l.Start, l.End)
}

// Rect is a painted axis-aligned rectangle in user space.
type Rect struct {
	BBox        model.BBox
	Stroked     bool
	Filled      bool
	StrokeWidth float64
	StrokeColor [3]float64
	FillColor   [3]float64
}

// Edges returns the four sides of the rectangle: bottom, right, top, left.
func (r Rect) Edges() []Line {
	b := r.BBox
	bl := model.Point{X: b.Left(), Y: b.Bottom()}
	br := model.Point{X: b.Right(), Y: b.Bottom()}
	tr := model.Point{X: b.Right(), Y: b.Top()}
	tl := model.Point{X: b.Left(), Y: b.Top()}
	return []Line{
		{Start: bl, End: br, Width: r.StrokeWidth, Color: r.StrokeColor},
		{Start: br, End: tr, Width: r.StrokeWidth, Color: r.StrokeColor},
		{Start: tl, End: tr, Width: r.StrokeWidth, Color: r.StrokeColor},
		{Start: bl, End: tl, Width: r.StrokeWidth, Color: r.StrokeColor},
	}
}

// asRectangle reports whether a subpath is a closed axis-aligned
// quadrilateral after the CTM, and returns its box.
func asRectangle(sub []Segment, ctm model.Matrix, tol float64) (model.BBox, bool) {
	var corners []model.Point
	closed := false
	for _, seg := range sub {
		switch seg.Kind {
		case SegMoveTo, SegLineTo:
			corners = append(corners, ctm.Transform(seg.To))
		case SegClose:
			closed = true
		default:
			return model.BBox{}, false
		}
	}

	if len(corners) == 5 && pointsEqual(corners[0], corners[4], tol) {
		corners = corners[:4]
		closed = true
	}
	if len(corners) != 4 || !closed {
		return model.BBox{}, false
	}

	for i := 0; i < 4; i++ {
		a, b := corners[i], corners[(i+1)%4]
		if math.Abs(a.X-b.X) > tol && math.Abs(a.Y-b.Y) > tol {
			return model.BBox{}, false
		}
	}

	box := boundingBox(corners)
	return box, true
}

func pointsEqual(a, b model.Point, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

func boundingBox(points []model.Point) model.BBox {
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return model.BBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

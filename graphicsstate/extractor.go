package graphicsstate

import "github.com/zabl/finextract/model"

// Extractor consumes content-stream operators and collects painted lines
// and rectangles.
type Extractor struct {
	gs   *GraphicsState
	path Path

	Lines []Line
	Rects []Rect

	// AngleTolerance is the drift, in points, still considered horizontal
	// or vertical.
	AngleTolerance float64

	// MinLineLength drops shorter rulings
	MinLineLength float64

	// HairlineWidth is the largest thickness of a filled rectangle that is
	// treated as a ruling line rather than a shaded area.
	HairlineWidth float64

	// Underflows counts Q operators without a matching q.
	Underflows int
}

// NewExtractor creates an extractor with default tolerances.
func NewExtractor() *Extractor {
	return &Extractor{
		gs:             NewGraphicsState(),
		AngleTolerance: 0.5,
		MinLineLength:  1.0,
		HairlineWidth:  2.0,
	}
}

// State returns the live graphics state
func (ex *Extractor) State() *GraphicsState {
	return ex.gs
}

// Apply processes one operator with its numeric operands. Unknown
// operators and operators with the wrong operand count are ignored.
func (ex *Extractor) Apply(op string, args []float64) {
	switch op {
	case "q":
		ex.gs.Save()
	case "Q":
		if err := ex.gs.Restore(); err != nil {
			ex.Underflows++
		}
	case "cm":
		if len(args) == 6 {
			ex.gs.Concat(model.Matrix{args[0], args[1], args[2], args[3], args[4], args[5]})
		}
	case "w":
		if len(args) == 1 {
			ex.gs.LineWidth = args[0]
		}

	case "RG":
		if len(args) == 3 {
			ex.gs.StrokeColor = [3]float64{args[0], args[1], args[2]}
		}
	case "rg":
		if len(args) == 3 {
			ex.gs.FillColor = [3]float64{args[0], args[1], args[2]}
		}
	case "G":
		if len(args) == 1 {
			ex.gs.SetStrokeGray(args[0])
		}
	case "g":
		if len(args) == 1 {
			ex.gs.SetFillGray(args[0])
		}
	case "K":
		if len(args) == 4 {
			ex.gs.SetStrokeCMYK(args[0], args[1], args[2], args[3])
		}
	case "k":
		if len(args) == 4 {
			ex.gs.SetFillCMYK(args[0], args[1], args[2], args[3])
		}

	case "m":
		if len(args) == 2 {
			ex.path.MoveTo(args[0], args[1])
		}
	case "l":
		if len(args) == 2 {
			ex.path.LineTo(args[0], args[1])
		}
	case "c":
		if len(args) == 6 {
			ex.path.CurveTo(args[4], args[5])
		}
	case "v", "y":
		if len(args) == 4 {
			ex.path.CurveTo(args[2], args[3])
		}
	case "h":
		ex.path.Close()
	case "re":
		if len(args) == 4 {
			ex.path.Rectangle(args[0], args[1], args[2], args[3])
		}

	case "S":
		ex.paint(true, false)
	case "s":
		ex.path.Close()
		ex.paint(true, false)
	case "f", "F", "f*":
		ex.paint(false, true)
	case "B", "B*":
		ex.paint(true, true)
	case "b", "b*":
		ex.path.Close()
		ex.paint(true, true)
	case "n":
		ex.path.Reset()
	}
}

// paint consumes the current path.
func (ex *Extractor) paint(stroked, filled bool) {
	defer ex.path.Reset()
	if ex.path.IsEmpty() {
		return
	}

	for _, sub := range ex.path.subpaths() {
		if box, ok := asRectangle(sub, ex.gs.CTM, ex.AngleTolerance); ok {
			r := Rect{BBox: box, Stroked: stroked, Filled: filled}
			if stroked {
				r.StrokeWidth = ex.gs.LineWidth
				r.StrokeColor = ex.gs.StrokeColor
			}
			if filled {
				r.FillColor = ex.gs.FillColor
			}
			ex.Rects = append(ex.Rects, r)
			continue
		}

		if stroked {
			ex.strokeSegments(sub)
		}
	}
}

func (ex *Extractor) strokeSegments(sub []Segment) {
	var cur model.Point
	for _, seg := range sub {
		to := ex.gs.CTM.Transform(seg.To)
		if seg.Kind != SegMoveTo && !pointsEqual(cur, to, 0.1) {
			ex.Lines = append(ex.Lines, Line{
				Start: cur,
				End:   to,
				Width: ex.gs.LineWidth,
				Color: ex.gs.StrokeColor,
			})
		}
		cur = to
	}
}

// Rulings returns the horizontal and vertical rules on the page: stroked
// lines, the edges of stroked rectangles, and filled rectangles no thicker
// than HairlineWidth. Lines are normalized so Start is the left (or lower)
// end. Diagonals and rules shorter than MinLineLength are dropped.
func (ex *Extractor) Rulings() (horizontal, vertical []Line) {
	candidates := make([]Line, 0, len(ex.Lines)+4*len(ex.Rects))
	candidates = append(candidates, ex.Lines...)

	for _, r := range ex.Rects {
		b := r.BBox
		switch {
		case r.Filled && b.Height <= ex.HairlineWidth && b.Width > b.Height:
			y := b.Y + b.Height/2
			candidates = append(candidates, Line{
				Start: model.Point{X: b.Left(), Y: y},
				End:   model.Point{X: b.Right(), Y: y},
				Width: b.Height,
				Color: r.FillColor,
			})
		case r.Filled && b.Width <= ex.HairlineWidth && b.Height > b.Width:
			x := b.X + b.Width/2
			candidates = append(candidates, Line{
				Start: model.Point{X: x, Y: b.Bottom()},
				End:   model.Point{X: x, Y: b.Top()},
				Width: b.Width,
				Color: r.FillColor,
			})
		case r.Stroked:
			candidates = append(candidates, r.Edges()...)
		}
	}

	for _, l := range candidates {
		if l.Length() < ex.MinLineLength {
			continue
		}
		switch {
		case l.IsHorizontal(ex.AngleTolerance):
			if l.Start.X > l.End.X {
				l.Start, l.End = l.End, l.Start
			}
			horizontal = append(horizontal, l)
		case l.IsVertical(ex.AngleTolerance):
			if l.Start.Y > l.End.Y {
				l.Start, l.End = l.End, l.Start
			}
			vertical = append(vertical, l)
		}
	}
	return horizontal, vertical
}

// Reset clears collected geometry and the graphics state for the next page.
func (ex *Extractor) Reset() {
	ex.gs = NewGraphicsState()
	ex.path.Reset()
	ex.Lines = nil
	ex.Rects = nil
	ex.Underflows = 0
}

package tables

import (
	"math"
	"sort"

	"github.com/zabl/finextract/graphicsstate"
	"github.com/zabl/finextract/model"
	"github.com/zabl/finextract/text"
)

// GridDetector detects table grids from ruling lines
type GridDetector struct {
	// Tolerance for considering lines aligned (in points)
	AlignmentTolerance float64

	// Minimum number of aligned lines to form a grid axis
	MinAlignedLines int

	// Minimum line length to consider (in points)
	MinLineLength float64
}

// NewGridDetector creates a new grid detector with default settings
func NewGridDetector() *GridDetector {
	return &GridDetector{
		AlignmentTolerance: 3.0,
		MinAlignedLines:    2,
		MinLineLength:      10.0,
	}
}

// GridHypothesis represents a potential table grid detected from lines
type GridHypothesis struct {
	BBox model.BBox

	// Horizontal line positions (Y coordinates, sorted descending)
	HorizontalLines []float64

	// Vertical line positions (X coordinates, sorted ascending)
	VerticalLines []float64

	// Confidence score (0-1)
	Confidence float64

	Rows int
	Cols int

	HasTopBorder    bool
	HasBottomBorder bool
	HasLeftBorder   bool
	HasRightBorder  bool
}

// ToTableGrid converts a grid hypothesis to a model.TableGrid
func (h *GridHypothesis) ToTableGrid() *model.TableGrid {
	return &model.TableGrid{
		Rows: append([]float64(nil), h.HorizontalLines...),
		Cols: append([]float64(nil), h.VerticalLines...),
	}
}

// AlignedLineGroup represents a group of lines aligned on an axis
type AlignedLineGroup struct {
	// Position on the alignment axis (X for vertical lines, Y for horizontal)
	Position float64

	Lines []graphicsstate.Line

	// Sum of line lengths
	TotalLength float64

	// Span of the lines on the perpendicular axis
	MinExtent float64
	MaxExtent float64
}

// Detect finds grids in the given rulings, one per connected cluster of
// lines, ordered top to bottom.
func (gd *GridDetector) Detect(horizontals, verticals []graphicsstate.Line) []*GridHypothesis {
	horizontals = gd.filterByLength(horizontals)
	verticals = gd.filterByLength(verticals)

	var hypotheses []*GridHypothesis
	for _, c := range gd.clusters(horizontals, verticals) {
		if h := gd.detectInCluster(c.h, c.v); h != nil {
			hypotheses = append(hypotheses, h)
		}
	}

	sort.SliceStable(hypotheses, func(i, j int) bool {
		return hypotheses[i].BBox.Top() > hypotheses[j].BBox.Top()
	})
	return hypotheses
}

// Fill builds a Table from a grid, placing each fragment in the cell that
// contains its centre. A fragment whose centre misses every cell (text
// wider than its cell) falls back to its left baseline point.
func (gd *GridDetector) Fill(h *GridHypothesis, frags []text.Fragment) *Table {
	grid := h.ToTableGrid()
	table := newTable(grid)
	table.Confidence = h.Confidence

	cells := make(map[[2]int][]text.Fragment)
	for _, f := range frags {
		row, col := grid.Locate(f.Center())
		if row < 0 {
			row, col = grid.Locate(model.Point{X: f.X + 0.5, Y: f.Y + 0.5})
		}
		if row < 0 {
			continue
		}
		cells[[2]int{row, col}] = append(cells[[2]int{row, col}], f)
	}
	table.fill(cells)

	return table
}

func (gd *GridDetector) detectInCluster(horizontals, verticals []graphicsstate.Line) *GridHypothesis {
	if len(horizontals) < gd.MinAlignedLines || len(verticals) < gd.MinAlignedLines {
		return nil
	}

	hGroups := gd.groupAlignedLines(horizontals, true)
	vGroups := gd.groupAlignedLines(verticals, false)
	if len(hGroups) < gd.MinAlignedLines || len(vGroups) < gd.MinAlignedLines {
		return nil
	}

	return gd.findGrid(hGroups, vGroups)
}

func (gd *GridDetector) filterByLength(lines []graphicsstate.Line) []graphicsstate.Line {
	result := make([]graphicsstate.Line, 0, len(lines))
	for _, line := range lines {
		if line.Length() >= gd.MinLineLength {
			result = append(result, line)
		}
	}
	return result
}

type lineCluster struct {
	h, v []graphicsstate.Line
}

// clusters splits rulings into groups of lines that touch, so that two
// ruled tables on one page are detected separately.
func (gd *GridDetector) clusters(horizontals, verticals []graphicsstate.Line) []lineCluster {
	n := len(horizontals) + len(verticals)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(a, b int) {
		if ra, rb := find(a), find(b); ra != rb {
			parent[ra] = rb
		}
	}

	tol := gd.AlignmentTolerance
	nh := len(horizontals)
	boxes := make([]model.BBox, n)
	for i, l := range horizontals {
		boxes[i] = grow(l.BBox(), tol)
	}
	for i, l := range verticals {
		boxes[nh+i] = grow(l.BBox(), tol)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if boxes[i].Intersects(boxes[j]) {
				union(i, j)
			}
		}
	}

	index := make(map[int]int)
	var out []lineCluster
	for i := 0; i < n; i++ {
		root := find(i)
		k, ok := index[root]
		if !ok {
			k = len(out)
			index[root] = k
			out = append(out, lineCluster{})
		}
		if i < nh {
			out[k].h = append(out[k].h, horizontals[i])
		} else {
			out[k].v = append(out[k].v, verticals[i-nh])
		}
	}
	return out
}

func grow(b model.BBox, d float64) model.BBox {
	return model.BBox{X: b.X - d, Y: b.Y - d, Width: b.Width + 2*d, Height: b.Height + 2*d}
}

// groupAlignedLines groups lines that are aligned on the same axis
func (gd *GridDetector) groupAlignedLines(lines []graphicsstate.Line, isHorizontal bool) []AlignedLineGroup {
	if len(lines) == 0 {
		return nil
	}

	position := func(l graphicsstate.Line) float64 {
		if isHorizontal {
			return (l.Start.Y + l.End.Y) / 2
		}
		return (l.Start.X + l.End.X) / 2
	}

	sorted := make([]graphicsstate.Line, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		return position(sorted[i]) < position(sorted[j])
	})

	var groups []AlignedLineGroup
	current := AlignedLineGroup{Position: position(sorted[0]), Lines: sorted[:1:1]}

	for _, line := range sorted[1:] {
		pos := position(line)
		if pos-current.Position <= gd.AlignmentTolerance {
			current.Lines = append(current.Lines, line)
			n := float64(len(current.Lines))
			current.Position = (current.Position*(n-1) + pos) / n
			continue
		}
		gd.finalizeGroup(&current, isHorizontal)
		groups = append(groups, current)
		current = AlignedLineGroup{Position: pos, Lines: []graphicsstate.Line{line}}
	}

	gd.finalizeGroup(&current, isHorizontal)
	return append(groups, current)
}

// finalizeGroup calculates final metrics for an aligned line group
func (gd *GridDetector) finalizeGroup(group *AlignedLineGroup, isHorizontal bool) {
	group.TotalLength = 0
	group.MinExtent = math.MaxFloat64
	group.MaxExtent = -math.MaxFloat64

	for _, line := range group.Lines {
		group.TotalLength += line.Length()

		lo, hi := line.Start.Y, line.End.Y
		if isHorizontal {
			lo, hi = line.Start.X, line.End.X
		}
		group.MinExtent = math.Min(group.MinExtent, math.Min(lo, hi))
		group.MaxExtent = math.Max(group.MaxExtent, math.Max(lo, hi))
	}
}

// findGrid builds a hypothesis from the aligned groups of one cluster.
func (gd *GridDetector) findGrid(hGroups, vGroups []AlignedLineGroup) *GridHypothesis {
	// Left/right come from vertical positions, top/bottom from horizontal ones.
	gridLeft, gridRight := positionRange(vGroups)
	gridBottom, gridTop := positionRange(hGroups)
	if gridRight <= gridLeft || gridTop <= gridBottom {
		return nil
	}

	relevantH := filterGroupsByExtent(hGroups, gridLeft, gridRight)
	relevantV := filterGroupsByExtent(vGroups, gridBottom, gridTop)
	if len(relevantH) < gd.MinAlignedLines || len(relevantV) < gd.MinAlignedLines {
		return nil
	}

	sort.Slice(relevantH, func(i, j int) bool { return relevantH[i].Position > relevantH[j].Position })
	sort.Slice(relevantV, func(i, j int) bool { return relevantV[i].Position < relevantV[j].Position })

	h := &GridHypothesis{
		BBox: model.BBox{
			X:      gridLeft,
			Y:      gridBottom,
			Width:  gridRight - gridLeft,
			Height: gridTop - gridBottom,
		},
		HorizontalLines: make([]float64, len(relevantH)),
		VerticalLines:   make([]float64, len(relevantV)),
		Rows:            len(relevantH) - 1,
		Cols:            len(relevantV) - 1,
	}
	for i, g := range relevantH {
		h.HorizontalLines[i] = g.Position
	}
	for i, g := range relevantV {
		h.VerticalLines[i] = g.Position
	}

	tol := gd.AlignmentTolerance
	h.HasTopBorder = math.Abs(relevantH[0].Position-gridTop) < tol
	h.HasBottomBorder = math.Abs(relevantH[len(relevantH)-1].Position-gridBottom) < tol
	h.HasLeftBorder = math.Abs(relevantV[0].Position-gridLeft) < tol
	h.HasRightBorder = math.Abs(relevantV[len(relevantV)-1].Position-gridRight) < tol

	h.Confidence = gd.calculateConfidence(h, len(hGroups)+len(vGroups))

	if h.Rows <= 0 || h.Cols <= 0 {
		return nil
	}
	return h
}

func positionRange(groups []AlignedLineGroup) (lo, hi float64) {
	lo, hi = groups[0].Position, groups[0].Position
	for _, g := range groups[1:] {
		lo = math.Min(lo, g.Position)
		hi = math.Max(hi, g.Position)
	}
	return lo, hi
}

// filterGroupsByExtent keeps groups covering at least half of [lo, hi].
func filterGroupsByExtent(groups []AlignedLineGroup, lo, hi float64) []AlignedLineGroup {
	var result []AlignedLineGroup
	required := (hi - lo) * 0.5
	for _, g := range groups {
		if g.MaxExtent-g.MinExtent < required {
			continue
		}
		if math.Min(g.MaxExtent, hi) > math.Max(g.MinExtent, lo) {
			result = append(result, g)
		}
	}
	return result
}

// calculateConfidence scores cell count, regularity, borders and line
// coverage.
func (gd *GridDetector) calculateConfidence(h *GridHypothesis, groupCount int) float64 {
	score := 0.0

	cells := h.Rows * h.Cols
	if cells >= 4 {
		score += 0.2
	}
	if cells >= 9 {
		score += 0.1
	}

	score += regularity(h) * 0.3

	borders := 0.0
	for _, b := range []bool{h.HasTopBorder, h.HasBottomBorder, h.HasLeftBorder, h.HasRightBorder} {
		if b {
			borders += 0.25
		}
	}
	score += borders * 0.2

	expected := float64(len(h.HorizontalLines) + len(h.VerticalLines))
	score += math.Min(1.0, float64(groupCount)/expected) * 0.2

	return math.Min(1.0, score)
}

// regularity is 1 for evenly spaced rows and columns, falling with the
// coefficient of variation.
func regularity(h *GridHypothesis) float64 {
	rowScore, colScore := 1.0, 1.0
	if h.Rows > 1 {
		heights := make([]float64, h.Rows)
		for i := range heights {
			heights[i] = h.HorizontalLines[i] - h.HorizontalLines[i+1]
		}
		rowScore = math.Max(0, 1-coefficientOfVariation(heights))
	}
	if h.Cols > 1 {
		widths := make([]float64, h.Cols)
		for i := range widths {
			widths[i] = h.VerticalLines[i+1] - h.VerticalLines[i]
		}
		colScore = math.Max(0, 1-coefficientOfVariation(widths))
	}
	return (rowScore + colScore) / 2
}

// coefficientOfVariation calculates CV (std dev / mean)
func coefficientOfVariation(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := 0.0
	for _, v := range values {
		m += v
	}
	m /= float64(len(values))
	if m == 0 {
		return 0
	}

	v := 0.0
	for _, val := range values {
		v += (val - m) * (val - m)
	}
	v /= float64(len(values))

	return math.Sqrt(v) / m
}

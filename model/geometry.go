package model

import "math"

// Point is a position in PDF user space, in points, origin bottom-left.
type Point struct {
	X, Y float64
}

// BBox is an axis-aligned rectangle anchored at its bottom-left corner.
type BBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewBBoxFromPoints spans the rectangle with corners p1 and p2, in any order.
func NewBBoxFromPoints(p1, p2 Point) BBox {
	lo := Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)}
	return BBox{
		X:      lo.X,
		Y:      lo.Y,
		Width:  math.Max(p1.X, p2.X) - lo.X,
		Height: math.Max(p1.Y, p2.Y) - lo.Y,
	}
}

func (b BBox) Left() float64   { return b.X }
func (b BBox) Right() float64  { return b.X + b.Width }
func (b BBox) Bottom() float64 { return b.Y }
func (b BBox) Top() float64    { return b.Y + b.Height }

func (b BBox) Center() Point {
	return Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

// Contains reports whether p lies in b. Edges count as inside, so a
// fragment sitting exactly on a ruling still lands in a cell.
func (b BBox) Contains(p Point) bool {
	return within(p.X, b.Left(), b.Right()) && within(p.Y, b.Bottom(), b.Top())
}

// Intersects reports whether b and other overlap or touch.
func (b BBox) Intersects(other BBox) bool {
	return b.Left() <= other.Right() && other.Left() <= b.Right() &&
		b.Bottom() <= other.Top() && other.Bottom() <= b.Top()
}

// Union is the smallest box covering both b and other.
func (b BBox) Union(other BBox) BBox {
	return NewBBoxFromPoints(
		Point{X: math.Min(b.Left(), other.Left()), Y: math.Min(b.Bottom(), other.Bottom())},
		Point{X: math.Max(b.Right(), other.Right()), Y: math.Max(b.Top(), other.Top())},
	)
}

// IsEmpty reports a box without area; a lone ruling line is one.
func (b BBox) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

func within(v, lo, hi float64) bool { return v >= lo && v <= hi }

// Matrix is an affine transform in PDF order [a b c d e f], mapping
// (x, y) to (a*x + c*y + e, b*x + d*y + f).
type Matrix [6]float64

func Identity() Matrix { return Matrix{1, 0, 0, 1, 0, 0} }

func Translate(tx, ty float64) Matrix { return Matrix{1, 0, 0, 1, tx, ty} }

func Scale(sx, sy float64) Matrix { return Matrix{sx, 0, 0, sy, 0, 0} }

func (m Matrix) Transform(p Point) Point {
	a, b, c, d, e, f := m[0], m[1], m[2], m[3], m[4], m[5]
	return Point{X: a*p.X + c*p.Y + e, Y: b*p.X + d*p.Y + f}
}

// Multiply composes m then other. The cm operator updates the CTM as
// cm.Multiply(ctm).
func (m Matrix) Multiply(other Matrix) Matrix {
	var r Matrix
	r[0] = m[0]*other[0] + m[1]*other[2]
	r[1] = m[0]*other[1] + m[1]*other[3]
	r[2] = m[2]*other[0] + m[3]*other[2]
	r[3] = m[2]*other[1] + m[3]*other[3]
	r[4] = m[4]*other[0] + m[5]*other[2] + other[4]
	r[5] = m[4]*other[1] + m[5]*other[3] + other[5]
	return r
}

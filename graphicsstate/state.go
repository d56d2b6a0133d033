package graphicsstate

import (
	"errors"

	"github.com/zabl/finextract/model"
)

// ErrStackUnderflow is returned by Restore when no state has been saved.
var ErrStackUnderflow = errors.New("graphics state stack underflow")

// GraphicsState is the subset of the PDF graphics state that affects where
// and how paths are painted.
type GraphicsState struct {
	// Current Transformation Matrix
	CTM model.Matrix

	LineWidth   float64
	StrokeColor [3]float64 // RGB, 0-1
	FillColor   [3]float64 // RGB, 0-1

	stack []GraphicsState
}

// NewGraphicsState creates a graphics state with the PDF defaults.
func NewGraphicsState() *GraphicsState {
	return &GraphicsState{
		CTM:       model.Identity(),
		LineWidth: 1.0,
	}
}

// Save pushes a copy of the current state (q operator).
func (gs *GraphicsState) Save() {
	saved := *gs
	saved.stack = nil
	gs.stack = append(gs.stack, saved)
}

// Restore pops the most recently saved state (Q operator).
func (gs *GraphicsState) Restore() error {
	if len(gs.stack) == 0 {
		return ErrStackUnderflow
	}

	saved := gs.stack[len(gs.stack)-1]
	stack := gs.stack[:len(gs.stack)-1]
	*gs = saved
	gs.stack = stack
	return nil
}

// Depth returns the number of saved states.
func (gs *GraphicsState) Depth() int {
	return len(gs.stack)
}

// Concat prepends m to the CTM (cm operator): points are transformed by m
// first, then by the previous CTM.
func (gs *GraphicsState) Concat(m model.Matrix) {
	gs.CTM = m.Multiply(gs.CTM)
}

// SetStrokeGray sets the stroke color from a gray level (G operator)
func (gs *GraphicsState) SetStrokeGray(g float64) {
	gs.StrokeColor = [3]float64{g, g, g}
}

// SetFillGray sets the fill color from a gray level (g operator)
func (gs *GraphicsState) SetFillGray(g float64) {
	gs.FillColor = [3]float64{g, g, g}
}

// SetStrokeCMYK sets the stroke color from CMYK components (K operator)
func (gs *GraphicsState) SetStrokeCMYK(c, m, y, k float64) {
	gs.StrokeColor = cmykToRGB(c, m, y, k)
}

// SetFillCMYK sets the fill color from CMYK components (k operator)
func (gs *GraphicsState) SetFillCMYK(c, m, y, k float64) {
	gs.FillColor = cmykToRGB(c, m, y, k)
}

// cmykToRGB converts CMYK to RGB (naive, no color management)
func cmykToRGB(c, m, y, k float64) [3]float64 {
	return [3]float64{(1 - c) * (1 - k), (1 - m) * (1 - k), (1 - y) * (1 - k)}
}

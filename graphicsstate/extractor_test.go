package graphicsstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zabl/finextract/model"
)

type op struct {
	name string
	args []float64
}

func run(ex *Extractor, ops ...op) {
	for _, o := range ops {
		ex.Apply(o.name, o.args)
	}
}

func TestExtractorStrokedLines(t *testing.T) {
	ex := NewExtractor()
	run(ex,
		op{"m", []float64{0, 100}},
		op{"l", []float64{200, 100}},
		op{"S", nil},
		op{"m", []float64{50, 0}},
		op{"l", []float64{50, 300}},
		op{"S", nil},
	)

	require.Len(t, ex.Lines, 2)
	h, v := ex.Rulings()
	require.Len(t, h, 1)
	require.Len(t, v, 1)
	assert.Equal(t, model.Point{X: 0, Y: 100}, h[0].Start)
	assert.Equal(t, model.Point{X: 50, Y: 300}, v[0].End)
}

func TestExtractorNormalizesDirection(t *testing.T) {
	ex := NewExtractor()
	run(ex,
		op{"m", []float64{200, 100}},
		op{"l", []float64{0, 100}},
		op{"S", nil},
	)

	h, _ := ex.Rulings()
	require.Len(t, h, 1)
	assert.Equal(t, 0.0, h[0].Start.X)
	assert.Equal(t, 200.0, h[0].End.X)
}

func TestExtractorFillDoesNotProduceLines(t *testing.T) {
	ex := NewExtractor()
	run(ex,
		op{"m", []float64{0, 0}},
		op{"l", []float64{100, 0}},
		op{"l", []float64{50, 80}},
		op{"f", nil},
	)

	assert.Empty(t, ex.Lines)
	assert.Empty(t, ex.Rects)
}

func TestExtractorEndPathDiscards(t *testing.T) {
	ex := NewExtractor()
	run(ex,
		op{"re", []float64{0, 0, 100, 100}},
		op{"n", nil},
		op{"S", nil},
	)

	assert.Empty(t, ex.Lines)
	assert.Empty(t, ex.Rects)
}

func TestExtractorStrokedRectangleEdges(t *testing.T) {
	ex := NewExtractor()
	run(ex,
		op{"w", []float64{0.5}},
		op{"re", []float64{10, 10, 100, 20}},
		op{"S", nil},
	)

	require.Len(t, ex.Rects, 1)
	assert.True(t, ex.Rects[0].Stroked)
	assert.Equal(t, 0.5, ex.Rects[0].StrokeWidth)

	h, v := ex.Rulings()
	assert.Len(t, h, 2)
	assert.Len(t, v, 2)
}

func TestExtractorHairlineFills(t *testing.T) {
	ex := NewExtractor()
	run(ex,
		op{"re", []float64{0, 99.5, 300, 1}}, // horizontal rule
		op{"re", []float64{49.5, 0, 1, 200}}, // vertical rule
		op{"re", []float64{0, 0, 300, 50}},   // shaded band
		op{"f", nil},
	)

	require.Len(t, ex.Rects, 3)
	h, v := ex.Rulings()
	require.Len(t, h, 1)
	require.Len(t, v, 1)
	assert.Equal(t, 100.0, h[0].Start.Y)
	assert.Equal(t, 300.0, h[0].Length())
	assert.Equal(t, 50.0, v[0].Start.X)
}

func TestExtractorAppliesCTM(t *testing.T) {
	ex := NewExtractor()
	run(ex,
		op{"q", nil},
		op{"cm", []float64{1, 0, 0, 1, 100, 50}},
		op{"m", []float64{0, 0}},
		op{"l", []float64{10, 0}},
		op{"S", nil},
		op{"Q", nil},
		op{"m", []float64{0, 0}},
		op{"l", []float64{10, 0}},
		op{"S", nil},
	)

	require.Len(t, ex.Lines, 2)
	assert.Equal(t, model.Point{X: 100, Y: 50}, ex.Lines[0].Start)
	assert.Equal(t, model.Point{X: 0, Y: 0}, ex.Lines[1].Start)
}

func TestExtractorClosePathStroke(t *testing.T) {
	ex := NewExtractor()
	run(ex,
		op{"m", []float64{0, 0}},
		op{"l", []float64{100, 0}},
		op{"l", []float64{50, 80}},
		op{"s", nil},
	)

	// Triangle: three segments, one horizontal.
	assert.Len(t, ex.Lines, 3)
	h, v := ex.Rulings()
	assert.Len(t, h, 1)
	assert.Empty(t, v)
}

func TestExtractorIgnoresBadOperands(t *testing.T) {
	ex := NewExtractor()
	run(ex,
		op{"cm", []float64{1, 2}},
		op{"re", []float64{1, 2, 3}},
		op{"Tj", []float64{0}},
		op{"Q", nil},
		op{"S", nil},
	)

	assert.Equal(t, model.Identity(), ex.State().CTM)
	assert.Empty(t, ex.Lines)
	assert.Equal(t, 1, ex.Underflows)
}

func TestExtractorMinLength(t *testing.T) {
	ex := NewExtractor()
	ex.MinLineLength = 5
	run(ex,
		op{"m", []float64{0, 0}},
		op{"l", []float64{3, 0}},
		op{"S", nil},
	)

	h, _ := ex.Rulings()
	assert.Empty(t, h)
}

func TestExtractorReset(t *testing.T) {
	ex := NewExtractor()
	run(ex,
		op{"cm", []float64{2, 0, 0, 2, 0, 0}},
		op{"re", []float64{0, 0, 10, 10}},
		op{"S", nil},
	)
	require.NotEmpty(t, ex.Rects)

	ex.Reset()
	assert.Empty(t, ex.Rects)
	assert.Equal(t, model.Identity(), ex.State().CTM)
}

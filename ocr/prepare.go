package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"

	"golang.org/x/image/draw"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// DefaultLanguage is the Tesseract language used when none is given.
const DefaultLanguage = "eng"

// MinWidth is the width, in pixels, below which scans are upscaled.
// Tesseract reads small print poorly under roughly 300 dpi.
const MinWidth = 1600

// Prepare converts img to grayscale and, when it is narrower than
// minWidth, scales it up with Catmull-Rom resampling keeping the aspect
// ratio.
func Prepare(img image.Image, minWidth int) *image.Gray {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > 0 && w < minWidth {
		h = h * minWidth / w
		w = minWidth
	}

	dst := image.NewGray(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// SplitLines splits recognised text into trimmed, non-blank lines.
func SplitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

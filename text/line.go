package text

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Line is a group of fragments sharing a baseline, in reading order.
type Line struct {
	Fragments []Fragment
	Y         float64 // baseline of the first fragment
	Direction Direction
}

// GroupLines clusters fragments into lines, top of the page first. A
// fragment joins the current line when its baseline is within half the
// line's font height.
func GroupLines(frags []Fragment) []Line {
	if len(frags) == 0 {
		return nil
	}

	sorted := make([]Fragment, len(frags))
	copy(sorted, frags)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var lines []Line
	current := []Fragment{sorted[0]}
	for _, f := range sorted[1:] {
		anchor := current[0]
		if abs(anchor.Y-f.Y) <= anchor.Height*0.5 {
			current = append(current, f)
			continue
		}
		lines = append(lines, newLine(current))
		current = []Fragment{f}
	}
	lines = append(lines, newLine(current))

	return lines
}

func newLine(frags []Fragment) Line {
	dir := lineDirection(frags)
	ordered := make([]Fragment, len(frags))
	copy(ordered, frags)
	sort.SliceStable(ordered, func(i, j int) bool {
		if dir == RTL {
			return ordered[i].X > ordered[j].X
		}
		return ordered[i].X < ordered[j].X
	})
	return Line{Fragments: ordered, Y: frags[0].Y, Direction: dir}
}

// lineDirection picks the majority strong direction, LTR by default.
func lineDirection(frags []Fragment) Direction {
	ltr, rtl := 0, 0
	for _, f := range frags {
		switch f.Direction {
		case LTR:
			ltr++
		case RTL:
			rtl++
		}
	}
	if rtl > ltr {
		return RTL
	}
	return LTR
}

// Text joins the line's fragments, inserting spaces where the gaps call
// for them.
func (l Line) Text() string {
	if len(l.Fragments) == 0 {
		return ""
	}

	metrics := measure(l.Fragments, l.Direction)
	var sb strings.Builder
	for i, f := range l.Fragments {
		sb.WriteString(f.Text)
		if i == len(l.Fragments)-1 {
			break
		}
		next := l.Fragments[i+1]
		if needsSpace(f, next, gap(f, next, l.Direction), metrics) {
			sb.WriteByte(' ')
		}
	}
	return norm.NFKC.String(sb.String())
}

// Lines returns the text of each line of frags, top to bottom, skipping
// lines that are blank.
func Lines(frags []Fragment) []string {
	var out []string
	for _, l := range GroupLines(frags) {
		if s := strings.TrimSpace(l.Text()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// lineMetrics drives the spacing decision for one line.
type lineMetrics struct {
	characterLevel bool    // fragments average two characters or fewer
	explicitSpaces bool    // the stream itself carries spaces
	baselineGap    float64 // 10th percentile of positive gaps
	typicalGap     float64 // 25th percentile of positive gaps
}

func measure(frags []Fragment, dir Direction) lineMetrics {
	var m lineMetrics

	chars := 0
	for _, f := range frags {
		chars += len([]rune(f.Text))
		if strings.Contains(f.Text, " ") {
			m.explicitSpaces = true
		}
	}
	m.characterLevel = float64(chars)/float64(len(frags)) <= 2.0

	var gaps []float64
	for i := 0; i+1 < len(frags); i++ {
		if g := gap(frags[i], frags[i+1], dir); g > 0 {
			gaps = append(gaps, g)
		}
	}
	if len(gaps) > 0 {
		sort.Float64s(gaps)
		m.baselineGap = gaps[len(gaps)/10]
		m.typicalGap = gaps[len(gaps)/4]
	}
	return m
}

// gap is the distance between two fragments in reading order.
func gap(f, next Fragment, dir Direction) float64 {
	if dir == RTL {
		return f.X - next.Right()
	}
	return next.X - f.Right()
}

func needsSpace(f, next Fragment, dist float64, m lineMetrics) bool {
	if strings.HasSuffix(f.Text, " ") || strings.HasPrefix(next.Text, " ") {
		return false
	}
	if dist < f.FontSize*0.05 {
		return false
	}

	if m.characterLevel && m.explicitSpaces {
		if m.typicalGap > 0 {
			return dist >= m.typicalGap*5
		}
		return false
	}

	if m.characterLevel {
		threshold := f.FontSize * 0.8
		if g := m.baselineGap * 3; g > threshold {
			threshold = g
		}
		return dist >= threshold
	}

	spaceWidth := f.FontSize * 0.25
	return dist >= spaceWidth*0.5
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

package text

import "unicode"

// Direction is the writing direction of a run of text.
type Direction int

const (
	LTR Direction = iota
	RTL
	Neutral // digits, punctuation and spaces only
)

func (d Direction) String() string {
	switch d {
	case LTR:
		return "LTR"
	case RTL:
		return "RTL"
	case Neutral:
		return "Neutral"
	default:
		return "Unknown"
	}
}

var rtlScripts = []*unicode.RangeTable{
	unicode.Arabic,
	unicode.Hebrew,
	unicode.Syriac,
	unicode.Thaana,
	unicode.Nko,
}

// CharDirection returns the inherent direction of r.
func CharDirection(r rune) Direction {
	switch {
	case unicode.In(r, rtlScripts...):
		return RTL
	case unicode.IsLetter(r):
		return LTR
	default:
		return Neutral
	}
}

// DetectDirection returns the dominant direction of s by counting strongly
// directional characters; ties go to LTR.
func DetectDirection(s string) Direction {
	ltr, rtl := 0, 0
	for _, r := range s {
		switch CharDirection(r) {
		case LTR:
			ltr++
		case RTL:
			rtl++
		}
	}
	switch {
	case ltr == 0 && rtl == 0:
		return Neutral
	case rtl > ltr:
		return RTL
	default:
		return LTR
	}
}

package font

import "strings"

// DefaultWidth is used for characters outside the tables.
const DefaultWidth = 500.0

// family is a set of width tables for one standard font.
type family struct {
	widths    *[95]uint16
	monospace bool
}

var standardFonts = map[string]family{
	"Helvetica":             {widths: &helvetica},
	"Helvetica-Oblique":     {widths: &helvetica},
	"Helvetica-Bold":        {widths: &helveticaBold},
	"Helvetica-BoldOblique": {widths: &helveticaBold},
	"Times-Roman":           {widths: &times},
	"Times-Italic":          {widths: &times},
	"Times-Bold":            {widths: &timesBold},
	"Times-BoldItalic":      {widths: &timesBold},
	"Courier":               {monospace: true},
	"Courier-Oblique":       {monospace: true},
	"Courier-Bold":          {monospace: true},
	"Courier-BoldOblique":   {monospace: true},
}

var aliases = map[string]string{
	"Arial":                  "Helvetica",
	"Arial,Bold":             "Helvetica-Bold",
	"Arial-BoldMT":           "Helvetica-Bold",
	"ArialMT":                "Helvetica",
	"TimesNewRoman":          "Times-Roman",
	"TimesNewRoman,Bold":     "Times-Bold",
	"TimesNewRomanPSMT":      "Times-Roman",
	"TimesNewRomanPS-BoldMT": "Times-Bold",
	"CourierNew":             "Courier",
	"CourierNewPSMT":         "Courier",
}

// Canonical returns the standard font name for baseFont, with any subset
// prefix removed and aliases resolved.
func Canonical(baseFont string) string {
	name := strings.TrimPrefix(baseFont, "/")
	if i := strings.IndexByte(name, '+'); i == 6 {
		name = name[i+1:]
	}
	if std, ok := aliases[name]; ok {
		return std
	}
	return name
}

// IsStandard reports whether baseFont is one of the standard fonts with
// known metrics.
func IsStandard(baseFont string) bool {
	_, ok := standardFonts[Canonical(baseFont)]
	return ok
}

// Width returns the advance width of r in 1000ths of an em. ok is false
// when baseFont is not a standard font.
func Width(baseFont string, r rune) (w float64, ok bool) {
	f, ok := standardFonts[Canonical(baseFont)]
	if !ok {
		return 0, false
	}
	return f.width(r), true
}

// StringWidth returns the summed advance width of s in 1000ths of an em.
func StringWidth(baseFont, s string) (w float64, ok bool) {
	f, ok := standardFonts[Canonical(baseFont)]
	if !ok {
		return 0, false
	}
	for _, r := range s {
		w += f.width(r)
	}
	return w, true
}

func (f family) width(r rune) float64 {
	if f.monospace {
		return 600
	}
	if r < 32 || r > 126 {
		return DefaultWidth
	}
	if w := f.widths[r-32]; w > 0 {
		return float64(w)
	}
	return float64(helvetica[r-32])
}

// helvetica holds Helvetica advance widths for ASCII 32-126.
var helvetica = [95]uint16{
	278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333, 278, 278, //  !"#$%&'()*+,-./
	556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 278, 278, 584, 584, 584, 556, // 0123456789:;<=>?
	1015, 667, 667, 722, 722, 667, 611, 778, 722, 278, 500, 667, 556, 833, 722, 778, // @ABCDEFGHIJKLMNO
	667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 278, 278, 278, 469, 556, // PQRSTUVWXYZ[\]^_
	333, 556, 556, 500, 556, 556, 278, 556, 556, 222, 222, 500, 222, 833, 556, 556, // `abcdefghijklmno
	556, 556, 333, 500, 278, 556, 500, 722, 500, 500, 500, 334, 260, 334, 584, // pqrstuvwxyz{|}~
}

// Zero entries fall back to helvetica.
var helveticaBold = [95]uint16{
	278, 0, 0, 0, 556, 889, 0, 0, 333, 333, 0, 0, 278, 333, 278, 0, //  !"#$%&'()*+,-./
	556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 0, 0, 0, 0, 0, 0, // 0123456789:;<=>?
	0, 722, 722, 722, 722, 667, 611, 778, 722, 278, 556, 722, 611, 833, 722, 778, // @ABCDEFGHIJKLMNO
	667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 0, 0, 0, 0, 0, // PQRSTUVWXYZ[\]^_
	0, 556, 611, 556, 611, 556, 333, 611, 611, 278, 278, 556, 278, 889, 611, 611, // `abcdefghijklmno
	611, 611, 389, 556, 333, 611, 556, 778, 556, 556, 500, 0, 0, 0, 0, // pqrstuvwxyz{|}~
}

var times = [95]uint16{
	250, 0, 0, 0, 500, 833, 0, 0, 333, 333, 0, 0, 250, 333, 250, 0, //  !"#$%&'()*+,-./
	500, 500, 500, 500, 500, 500, 500, 500, 500, 500, 0, 0, 0, 0, 0, 0, // 0123456789:;<=>?
	0, 722, 667, 667, 722, 611, 556, 722, 722, 333, 389, 722, 611, 889, 722, 722, // @ABCDEFGHIJKLMNO
	556, 722, 667, 556, 611, 722, 722, 944, 722, 722, 611, 0, 0, 0, 0, 0, // PQRSTUVWXYZ[\]^_
	0, 444, 500, 444, 500, 444, 333, 500, 500, 278, 278, 500, 278, 778, 500, 500, // `abcdefghijklmno
	500, 500, 333, 389, 278, 500, 500, 722, 500, 500, 444, 0, 0, 0, 0, // pqrstuvwxyz{|}~
}

var timesBold = [95]uint16{
	250, 0, 0, 0, 500, 1000, 0, 0, 333, 333, 0, 0, 250, 333, 250, 0, //  !"#$%&'()*+,-./
	500, 500, 500, 500, 500, 500, 500, 500, 500, 500, 0, 0, 0, 0, 0, 0, // 0123456789:;<=>?
	0, 722, 667, 722, 722, 667, 611, 778, 778, 389, 500, 778, 667, 944, 722, 778, // @ABCDEFGHIJKLMNO
	611, 778, 722, 556, 667, 722, 722, 1000, 722, 722, 667, 0, 0, 0, 0, 0, // PQRSTUVWXYZ[\]^_
	0, 500, 556, 444, 556, 444, 333, 500, 556, 278, 333, 556, 278, 833, 556, 500, // `abcdefghijklmno
	556, 556, 444, 389, 333, 556, 500, 722, 500, 500, 444, 0, 0, 0, 0, // pqrstuvwxyz{|}~
}

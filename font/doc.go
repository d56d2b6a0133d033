// Package font provides advance widths for the standard 14 PDF fonts.
//
// PDF writers may reference a standard font (Helvetica, Times-Roman,
// Courier and their variants) without embedding it or listing its
// widths. Text positions inside such a run then have to be computed from
// the font's published metrics, which this package supplies:
//
//	w, ok := font.StringWidth("Helvetica", "Total")  // 1000ths of an em
//	if ok {
//	    advance := w * fontSize / 1000
//	}
//
// Widths cover printable ASCII. Subset prefixes ("ABCDEF+Helvetica") are
// ignored, and the common aliases Arial and TimesNewRoman map to their
// standard equivalents.
package font

package model

import (
	"strings"
	"unicode"
)

// CellKind tags the content of a Cell.
type CellKind int

const (
	// CellEmpty is a cell with no content, or whitespace only.
	CellEmpty CellKind = iota
	// CellText is free text.
	CellText
	// CellNumeric is text made only of digits, grouping and sign
	// characters: "1,234.56", "$ (12)", "-5".
	CellNumeric
)

func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellText:
		return "text"
	case CellNumeric:
		return "numeric"
	default:
		return "unknown"
	}
}

// Cell is a single extracted value.
type Cell struct {
	Kind CellKind
	Text string
}

// NewCell tags s with its kind.
func NewCell(s string) Cell {
	return Cell{Kind: Classify(s), Text: s}
}

// EmptyCell returns a cell with no content.
func EmptyCell() Cell {
	return Cell{Kind: CellEmpty}
}

// IsEmpty reports whether the cell carries no content.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// Classify decides the kind of a raw extracted string. A string is
// numeric-like when it holds at least one digit and otherwise only currency
// signs, grouping commas, periods, parentheses, minus signs and whitespace.
func Classify(s string) CellKind {
	if strings.TrimSpace(s) == "" {
		return CellEmpty
	}

	digits := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits = true
		case r == '$', r == ',', r == '.', r == '(', r == ')', r == '-':
		case unicode.IsSpace(r):
		default:
			return CellText
		}
	}
	if digits {
		return CellNumeric
	}
	return CellText
}

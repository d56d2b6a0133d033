package pages

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// All is the keyword selecting every page.
const All = "all"

// ParseError reports a malformed token in a page specification.
type ParseError struct {
	Token string // the offending token, trimmed
	Spec  string // the full specification
	Err   error  // underlying strconv error, if any
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid page token %q in %q: %v", e.Token, e.Spec, e.Err)
	}
	return fmt.Sprintf("invalid page token %q in %q", e.Token, e.Spec)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Set is an immutable set of zero-based page indices.
type Set struct {
	m map[int]struct{}
}

// Contains reports whether index i is in the set.
func (s Set) Contains(i int) bool {
	_, ok := s.m[i]
	return ok
}

// Len returns the number of pages in the set.
func (s Set) Len() int {
	return len(s.m)
}

// Sorted returns the indices in ascending order.
func (s Set) Sorted() []int {
	out := make([]int, 0, len(s.m))
	for i := range s.m {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// OneBased renders the set as an ascending comma list of 1-based page
// numbers, e.g. {4,0,1} -> "1,2,5".
func (s Set) OneBased() string {
	sorted := s.Sorted()
	parts := make([]string, len(sorted))
	for i, idx := range sorted {
		parts[i] = strconv.Itoa(idx + 1)
	}
	return strings.Join(parts, ",")
}

// IsAll reports whether spec is the "all" keyword.
func IsAll(spec string) bool {
	return strings.EqualFold(strings.TrimSpace(spec), All)
}

// Validate checks the syntax of spec without resolving it.
func Validate(spec string) error {
	if IsAll(spec) {
		return nil
	}
	_, err := parse(spec)
	return err
}

// Resolve turns spec into the set of zero-based indices it selects within a
// document of pageCount pages. Out-of-range indices (including the index -1
// produced by page "0") are silently dropped, so the result may be empty.
func Resolve(spec string, pageCount int) (Set, error) {
	set := Set{m: make(map[int]struct{})}

	if IsAll(spec) {
		for i := 0; i < pageCount; i++ {
			set.m[i] = struct{}{}
		}
		return set, nil
	}

	ranges, err := parse(spec)
	if err != nil {
		return Set{}, err
	}

	for _, r := range ranges {
		lo := max(r.start, 0)
		hi := min(r.end, pageCount-1)
		for i := lo; i <= hi; i++ {
			set.m[i] = struct{}{}
		}
	}
	return set, nil
}

// span is an inclusive range of zero-based indices; start > end is empty.
type span struct {
	start, end int
}

func parse(spec string) ([]span, error) {
	tokens := strings.Split(spec, ",")
	out := make([]span, 0, len(tokens))

	for _, raw := range tokens {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			return nil, &ParseError{Token: tok, Spec: spec}
		}

		parts := strings.Split(tok, "-")
		switch len(parts) {
		case 1:
			n, err := strconv.Atoi(tok)
			if err != nil {
				return nil, &ParseError{Token: tok, Spec: spec, Err: err}
			}
			out = append(out, span{start: n - 1, end: n - 1})

		case 2:
			a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
			if err != nil {
				return nil, &ParseError{Token: tok, Spec: spec, Err: err}
			}
			b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
			if err != nil {
				return nil, &ParseError{Token: tok, Spec: spec, Err: err}
			}
			out = append(out, span{start: a - 1, end: b - 1})

		default:
			return nil, &ParseError{Token: tok, Spec: spec}
		}
	}
	return out, nil
}

// Package pages resolves user page specifications into sets of zero-based
// page indices.
//
// # Specifications
//
// A specification is either the keyword "all" (case-insensitive, surrounding
// whitespace ignored) or a comma-separated list of tokens. Each token is a
// 1-based page number or an inclusive range "a-b":
//
//	set, err := pages.Resolve("1,3,5-7", 10)
//	set.Sorted()    // [0 2 4 5 6]
//	set.OneBased()  // "1,3,5,6,7"
//
// Indices outside [0, pageCount) are dropped without an error, and a
// reversed range such as "5-3" selects nothing.
//
// # Errors
//
// Tokens that are empty, not integers, or contain more than one '-' yield a
// [*ParseError]. Use [Validate] to reject a bad specification before any
// document has been opened.
package pages

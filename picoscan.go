/*
Package picoscan is a minimalist lexing engine driven by an ordered list of pattern rules.

At every step the engine finds the earliest match across all rules in the remaining input,
calls the handler of the winning rule and advances past the match. Handlers return tokens:
any value, a nil value is dropped, a token.Tokens value is spliced into the output.
A rule may also declare an end pattern. Such container rule makes the engine scan
the enclosed text as a nested token stream until the end pattern is found,
so bracket- or tag-like nested syntax can be handled without a grammar.

Consists of subpackages:
  - cmd/picoscan: console utility running bundled rule sets over files;
  - examples/css, examples/markup: rule sets for small style-sheet and markup languages;
  - pattern: compiled patterns and pure "search from offset" matching;
  - rules: rule records, handler context, and the rule compiler;
  - scan: match evaluator, recursive and flat scan engines;
  - source: source text with line and column lookup;
  - token: token sequences and the read cursor.

Typical usage is:

1. Declare rules as a list or as a name-keyed map of (pattern, handler) pairs,
(pattern, end pattern, handler) triples, or bare handlers serving as a fallback.

2. Create a scan.Scanner for the declaration.

3. Call Scanner.Nested for nested syntax or Scanner.Flat for flat syntax
and walk the resulting tokens with token.Cursor.
*/
package picoscan

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	// RuleErrors are rule declaration errors reported by rules.Compile before any text is scanned.
	RuleErrors = 1

	// ScanErrors are engine conditions reported by scan: unclosed containers,
	// nesting limit, container rules passed to the flat engine.
	ScanErrors = 101

	// ExampleErrors are input errors reported by handlers of bundled example rule sets.
	ExampleErrors = 201
)

// Error is the error type used by picoscan subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source text or 0.
	Line int

	// Col contains column number in source text or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos implements this interface.
type SourcePos interface {
	// SourceName returns source name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// line and col will be added to error message if provided (non-zero), name is added if not empty.
func NewError(code int, msg, name string, line, col int) *Error {
	if line != 0 && col != 0 {
		if name == "" {
			msg += fmt.Sprintf(" at line %d col %d", line, col)
		} else {
			msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
		}
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}

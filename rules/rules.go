// Package rules defines rule records, the handler contract, and the rule compiler.
package rules

import (
	"github.com/ava12/picoscan/pattern"
	"github.com/ava12/picoscan/source"
	"github.com/ava12/picoscan/token"
)

// Handler converts a match into tokens.
// Returned nil is dropped, returned token.Tokens is spliced into the output.
// A non-nil error stops the scan and is returned to the caller as is.
type Handler func(groups pattern.Groups, ctx *Context) (token.Token, error)

// Rule is a canonical rule record.
type Rule struct {
	// ID identifies the rule in error messages and logs.
	ID string

	// Pattern is the start pattern. Nil for default rules.
	Pattern *pattern.Pattern

	// End is the end pattern of a container rule or nil.
	End *pattern.Pattern

	// Handler is called for every match of the rule.
	Handler Handler

	// Default marks the catch-all rule claiming text no other rule matches.
	// The first default rule of a set gets the text between the scan position and the nearest
	// match of other rules (or the end of text) as its only group, so Context.Pre is always empty
	// when a set has a default rule.
	Default bool
}

// IsContainer tells whether the rule encloses a nested region.
func (r *Rule) IsContainer() bool {
	return r.End != nil
}

// Set is an ordered list of compiled rules. A Set is never modified after compilation.
type Set []*Rule

// HasContainers tells whether the set contains at least one container rule.
func (s Set) HasContainers() bool {
	for _, r := range s {
		if r.IsContainer() {
			return true
		}
	}
	return false
}

// Default returns the first default rule or nil.
func (s Set) Default() *Rule {
	for _, r := range s {
		if r.Default {
			return r
		}
	}
	return nil
}

// Context holds data passed to a handler along with capturing groups.
type Context struct {
	// Rule is the rule being handled.
	Rule *Rule

	// Match contains the whole text matched by the (start) pattern.
	Match string

	// Pre contains unmatched text between the previous consumed match and this one.
	Pre string

	// Offset contains byte offset of the match in the source.
	Offset int

	// Source is the scanned source.
	Source *source.Source

	// Tokens contains tokens already produced in the current frame.
	// Handlers must not modify it.
	Tokens token.Tokens

	// Depth contains nesting level of the current frame, 0 for the top level.
	Depth int

	// Content contains tokens produced for the enclosed region of a container rule.
	Content token.Tokens

	// EndGroups contains capturing groups of the end pattern match of a container rule.
	// Nil if the end pattern was not found.
	EndGroups pattern.Groups

	// EndMatch contains the whole text matched by the end pattern of a container rule.
	EndMatch string

	// EndOffset contains byte offset of the end pattern match of a container rule
	// or the source length if the end pattern was not found.
	EndOffset int

	// Closed tells whether the end pattern of a container rule was found.
	Closed bool
}

// Pos returns position information for the match start.
func (c *Context) Pos() source.Pos {
	return c.Source.At(c.Offset)
}

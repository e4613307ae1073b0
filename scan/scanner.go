// Package scan implements the match evaluator and two scan engines.
//
// Nested engine handles container rules by scanning enclosed regions recursively,
// flat engine handles plain rules only and memoizes pattern matches between steps.
// Both engines select at every step the match with the smallest offset,
// ties are resolved in favor of the rule declared first.
package scan

import (
	"github.com/tliron/commonlog"

	"github.com/ava12/picoscan/rules"
	"github.com/ava12/picoscan/source"
	"github.com/ava12/picoscan/token"
)

// DefaultMaxDepth is the default limit of container nesting.
const DefaultMaxDepth = 512

// UnclosedPolicy defines what nested engine does when the end pattern of a container is not found.
type UnclosedPolicy int

const (
	// UnclosedPartial makes the engine treat the end of input as implicit end of the container.
	// The handler gets partial content, nil EndGroups and Context.Closed set to false.
	UnclosedPartial UnclosedPolicy = iota

	// UnclosedError makes the engine fail with UnclosedContainerError.
	UnclosedError
)

// Option configures Scanner.
type Option func(*Scanner)

// WithMaxDepth sets the limit of container nesting, non-positive value means DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(s *Scanner) {
		if depth <= 0 {
			depth = DefaultMaxDepth
		}
		s.maxDepth = depth
	}
}

// WithUnclosed sets unclosed container policy.
func WithUnclosed(policy UnclosedPolicy) Option {
	return func(s *Scanner) {
		s.unclosed = policy
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(log commonlog.Logger) Option {
	return func(s *Scanner) {
		if log != nil {
			s.log = log
		}
	}
}

// Result contains tokens and the text left unmatched at the end of input.
type Result struct {
	// Tokens contains produced tokens.
	Tokens token.Tokens

	// Remainder contains unmatched text after the last consumed match.
	Remainder string

	// Searches contains the number of pattern searches performed.
	Searches int
}

// Scanner holds compiled rules and scan options.
// Scanner is immutable and safe for concurrent use, every scan call keeps its own state.
type Scanner struct {
	rules    rules.Set
	maxDepth int
	unclosed UnclosedPolicy
	log      commonlog.Logger
}

// New compiles rule declaration (see rules.Compile) and creates Scanner.
func New(declaration any, opts ...Option) (*Scanner, error) {
	rs, e := rules.Compile(declaration)
	if e != nil {
		return nil, e
	}

	s := &Scanner{
		rules:    rs,
		maxDepth: DefaultMaxDepth,
		unclosed: UnclosedPartial,
		log:      commonlog.GetLogger("picoscan.scan"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// MustNew is like New but panics on error.
func MustNew(declaration any, opts ...Option) *Scanner {
	s, e := New(declaration, opts...)
	if e != nil {
		panic(e)
	}
	return s
}

// Rules returns compiled rules.
func (s *Scanner) Rules() rules.Set {
	return s.rules
}

// Nested scans text using the recursive engine and returns produced tokens.
// name is used in error messages and may be empty.
func (s *Scanner) Nested(name, text string) (token.Tokens, error) {
	res, e := s.NestedResult(name, text)
	return res.Tokens, e
}

// NestedResult is like Nested but also returns unmatched text left after the last top level match.
func (s *Scanner) NestedResult(name, text string) (Result, error) {
	n := &nestedScan{Scanner: s, src: source.New(name, text), text: text}
	return n.run()
}

// Flat scans text using the memoizing flat engine.
// Returns ContainerInFlatError if rules contain a container rule.
func (s *Scanner) Flat(name, text string) (Result, error) {
	f := &flatScan{Scanner: s, src: source.New(name, text), text: text}
	return f.run()
}

// Replace applies every plain rule to the whole text in declaration order, see Replace function.
func (s *Scanner) Replace(name, text string) (string, error) {
	return replace(s.rules, source.New(name, text))
}

// Nested scans text with compiled rules using the recursive engine.
func Nested(set rules.Set, text string, opts ...Option) (token.Tokens, error) {
	s, e := New(set, opts...)
	if e != nil {
		return nil, e
	}
	return s.Nested("", text)
}

// Flat scans text with compiled rules using the memoizing flat engine.
func Flat(set rules.Set, text string, opts ...Option) (Result, error) {
	s, e := New(set, opts...)
	if e != nil {
		return Result{}, e
	}
	return s.Flat("", text)
}

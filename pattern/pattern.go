// Package pattern defines compiled patterns and pure "search from offset" matching.
package pattern

import (
	"math"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// NoMatch is the offset of a match that does not exist. It is greater than any real offset.
const NoMatch = math.MaxInt

// Group is a single capturing group of a match.
type Group struct {
	// Text contains captured text or empty string.
	Text string

	// Matched tells whether the group took part in the match.
	Matched bool
}

// Groups is an ordered list of capturing groups, the whole match is not included.
type Groups []Group

// Text returns text captured by i-th group (0-based) or empty string if the group is absent.
func (gs Groups) Text(i int) string {
	if i < 0 || i >= len(gs) {
		return ""
	}
	return gs[i].Text
}

// Has tells whether i-th group (0-based) took part in the match.
func (gs Groups) Has(i int) bool {
	return i >= 0 && i < len(gs) && gs[i].Matched
}

// Strings returns captured texts, absent groups are represented by empty strings.
func (gs Groups) Strings() []string {
	result := make([]string, len(gs))
	for i, g := range gs {
		result[i] = g.Text
	}
	return result
}

// Match is a result of pattern search.
type Match struct {
	// Text contains the whole matched text.
	Text string

	// Groups contains capturing groups.
	Groups Groups

	// Offset contains byte offset of match start or NoMatch.
	Offset int
}

// None returns the "no match" sentinel.
func None() Match {
	return Match{Offset: NoMatch}
}

// Found tells whether the match exists.
func (m Match) Found() bool {
	return m.Offset != NoMatch
}

// End returns byte offset right after the match or NoMatch.
func (m Match) End() int {
	if m.Offset == NoMatch {
		return NoMatch
	}
	return m.Offset + len(m.Text)
}

// Pattern is a compiled text-matching expression.
// Syntax is that of github.com/dlclark/regexp2 in RE2 compatibility mode.
// Pattern holds no search state and is safe for concurrent use.
type Pattern struct {
	re *regexp2.Regexp
}

// Options is the set of regexp2 options used for every compiled pattern.
const Options = regexp2.RE2

// Compile compiles regular expression.
func Compile(expr string) (*Pattern, error) {
	re, e := regexp2.Compile(expr, Options)
	if e != nil {
		return nil, e
	}
	return &Pattern{re}, nil
}

// MustCompile is like Compile but panics if the expression cannot be parsed.
func MustCompile(expr string) *Pattern {
	return &Pattern{regexp2.MustCompile(expr, Options)}
}

// Of wraps compiled regular expression, returns nil for nil argument.
func Of(re *regexp2.Regexp) *Pattern {
	if re == nil {
		return nil
	}
	return &Pattern{re}
}

// String returns source text of the expression.
func (p *Pattern) String() string {
	return p.re.String()
}

// Regexp returns wrapped regular expression.
func (p *Pattern) Regexp() *regexp2.Regexp {
	return p.re
}

// NumGroups returns the number of capturing groups.
func (p *Pattern) NumGroups() int {
	return len(p.re.GetGroupNumbers()) - 1
}

// Search returns the nearest match starting at or after byte offset from.
// The whole text is visible to the pattern: ^ matches at the start of text only,
// \b and lookbehinds see text before from.
// Offset inside a multibyte rune is moved to the next rune start.
// Returns None() if there is no match or from is outside of text.
func (p *Pattern) Search(text string, from int) Match {
	if from < 0 {
		from = 0
	}
	for from < len(text) && !utf8.RuneStart(text[from]) {
		from++
	}
	if from > len(text) {
		return None()
	}

	m, e := p.re.FindStringMatchStartingAt(text, from)
	if e != nil || m == nil {
		return None()
	}

	return makeMatch(text, from, m)
}

// SearchNonEmptyAt is like Search but rejects empty match located exactly at byte offset at.
// Such a match is skipped and the search is repeated one rune later.
// Used to make progress after an empty match was consumed.
func (p *Pattern) SearchNonEmptyAt(text string, from, at int) Match {
	m := p.Search(text, from)
	for m.Offset == at && m.Text == "" {
		if at >= len(text) {
			return None()
		}

		_, size := utf8.DecodeRuneInString(text[at:])
		from = at + size
		m = p.Search(text, from)
	}
	return m
}

func makeMatch(text string, from int, m *regexp2.Match) Match {
	ix := runeIndex{text: text, rune: utf8.RuneCountInString(text[:from]), byte: from}
	start := ix.offset(m.Index)
	end := ix.offset(m.Index + m.Length)

	groups := make(Groups, m.GroupCount()-1)
	for i := range groups {
		g := m.GroupByNumber(i + 1)
		if g == nil || len(g.Captures) == 0 {
			continue
		}
		gs := ix.offset(g.Index)
		groups[i] = Group{text[gs:ix.offset(g.Index+g.Length)], true}
	}

	return Match{
		Text:   text[start:end],
		Groups: groups,
		Offset: start,
	}
}

// runeIndex converts rune indexes reported by regexp2 to byte offsets.
// It remembers the last converted position, conversions are cheap when indexes grow.
type runeIndex struct {
	text string
	rune int
	byte int
}

func (ix *runeIndex) offset(r int) int {
	if r < ix.rune {
		ix.rune, ix.byte = 0, 0
	}
	for ix.rune < r && ix.byte < len(ix.text) {
		_, size := utf8.DecodeRuneInString(ix.text[ix.byte:])
		ix.byte += size
		ix.rune++
	}
	return ix.byte
}

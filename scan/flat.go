package scan

import (
	"github.com/tliron/commonlog"

	"github.com/ava12/picoscan/pattern"
	"github.com/ava12/picoscan/rules"
	"github.com/ava12/picoscan/source"
	"github.com/ava12/picoscan/token"
)

type flatScan struct {
	*Scanner
	src      *source.Source
	text     string
	searches int
}

// cachedMatch is the last match found for a rule.
// A match located after the scan cursor is still valid and is reused,
// a missing match stays missing until the end of scan.
type cachedMatch struct {
	match    pattern.Match
	computed bool
}

func (f *flatScan) run() (Result, error) {
	for _, r := range f.rules {
		if r.IsContainer() {
			return Result{}, containerInFlatError(r)
		}
	}

	var tokens token.Tokens
	cache := make([]cachedMatch, len(f.rules))
	def := f.rules.Default()
	cursor := 0
	noEmptyAt := -1
	debug := f.log.AllowLevel(commonlog.Debug)

	for cursor <= len(f.text) {
		best := -1
		bestOffset := pattern.NoMatch
		for i, r := range f.rules {
			if r.Default {
				continue
			}

			c := &cache[i]
			if !c.computed || c.match.Offset <= cursor {
				c.match = r.Pattern.SearchNonEmptyAt(f.text, cursor, noEmptyAt)
				c.computed = true
				f.searches++
			}
			if c.match.Offset < bestOffset {
				best = i
				bestOffset = c.match.Offset
			}
		}

		m, found := gapMatch(def, f.text, cursor, bestOffset)
		if !found {
			if best < 0 {
				break
			}
			m = Match{Match: cache[best].match, Rule: f.rules[best]}
		}

		if debug {
			f.log.Debugf("rule %q matched at offset %d", m.Rule.ID, m.Offset)
		}

		ctx := &rules.Context{
			Rule:   m.Rule,
			Match:  m.Text,
			Pre:    f.text[cursor:m.Offset],
			Offset: m.Offset,
			Source: f.src,
			Tokens: tokens,
		}
		result, e := m.Rule.Handler(m.Groups, ctx)
		if e != nil {
			return Result{}, e
		}

		tokens = tokens.Append(result)
		cursor = m.End()
		noEmptyAt = cursor
	}

	if debug {
		f.log.Debugf("flat scan finished: %d tokens, %d searches", len(tokens), f.searches)
	}
	return Result{Tokens: tokens, Remainder: f.text[cursor:], Searches: f.searches}, nil
}

package scan

import (
	"github.com/ava12/picoscan/pattern"
	"github.com/ava12/picoscan/rules"
)

// Match is a match candidate considered by the evaluator.
type Match struct {
	pattern.Match

	// Rule is the owning rule, nil for exit matches.
	Rule *rules.Rule

	// Exit tells that the match closes the current frame.
	// The "no match" sentinel is an exit match with Offset == pattern.NoMatch.
	Exit bool
}

func noMatch() Match {
	return Match{Match: pattern.None(), Exit: true}
}

// MatchAt searches for the nearest match of rule start pattern at or after byte offset from.
// Returns the "no match" sentinel for default rules and if there is no match.
func MatchAt(r *rules.Rule, text string, from int) Match {
	return matchAt(r, text, from, -1)
}

func matchAt(r *rules.Rule, text string, from, noEmptyAt int) Match {
	if r.Pattern == nil {
		return noMatch()
	}

	m := r.Pattern.SearchNonEmptyAt(text, from, noEmptyAt)
	if !m.Found() {
		return noMatch()
	}
	return Match{Match: m, Rule: r}
}

// BestMatch returns the nearest match at or after byte offset from among exit pattern and all rules.
// exit may be nil. Exit match wins a tie with any rule, rules declared earlier win ties with later ones.
// The first default rule claims non-empty text between from and the nearest match (or the end of text).
// Returns the "no match" sentinel if nothing matches.
func BestMatch(set rules.Set, text string, from int, exit *pattern.Pattern) Match {
	return bestMatch(set, text, from, exit, -1)
}

func bestMatch(set rules.Set, text string, from int, exit *pattern.Pattern, noEmptyAt int) Match {
	best := noMatch()
	if exit != nil {
		m := exit.Search(text, from)
		if m.Found() {
			best = Match{Match: m, Exit: true}
		}
	}

	for _, r := range set {
		m := matchAt(r, text, from, noEmptyAt)
		if m.Offset < best.Offset {
			best = m
		}
	}

	if gap, found := gapMatch(set.Default(), text, from, best.Offset); found {
		return gap
	}
	return best
}

func gapMatch(def *rules.Rule, text string, from, end int) (Match, bool) {
	if def == nil {
		return Match{}, false
	}

	if end > len(text) {
		end = len(text)
	}
	if end <= from {
		return Match{}, false
	}

	gap := text[from:end]
	return Match{
		Match: pattern.Match{
			Text:   gap,
			Groups: pattern.Groups{{Text: gap, Matched: true}},
			Offset: from,
		},
		Rule: def,
	}, true
}

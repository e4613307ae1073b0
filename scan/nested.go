package scan

import (
	"github.com/tliron/commonlog"

	"github.com/ava12/picoscan/pattern"
	"github.com/ava12/picoscan/rules"
	"github.com/ava12/picoscan/source"
	"github.com/ava12/picoscan/token"
)

type nestedScan struct {
	*Scanner
	src  *source.Source
	text string
}

type frameResult struct {
	tokens token.Tokens
	end    pattern.Match
	next   int
}

func (n *nestedScan) run() (Result, error) {
	fr, e := n.frame(0, nil, 0, -1)
	if e != nil {
		return Result{}, e
	}

	return Result{Tokens: fr.tokens, Remainder: n.text[fr.next:]}, nil
}

// frame scans text starting at byte offset from until boundary matches or nothing matches.
// Top level frame has nil boundary. Rule matches cannot be empty at noEmptyAt.
func (n *nestedScan) frame(from int, boundary *pattern.Pattern, depth, noEmptyAt int) (frameResult, error) {
	var tokens token.Tokens
	pos := from
	debug := n.log.AllowLevel(commonlog.Debug)

	for {
		m := bestMatch(n.rules, n.text, pos, boundary, noEmptyAt)
		if m.Exit {
			if !m.Found() {
				break
			}

			if debug {
				n.log.Debugf("frame %d closed at offset %d", depth, m.Offset)
			}
			return frameResult{tokens, m.Match, m.End()}, nil
		}

		if debug {
			n.log.Debugf("rule %q matched at offset %d, depth %d", m.Rule.ID, m.Offset, depth)
		}

		ctx := &rules.Context{
			Rule:   m.Rule,
			Match:  m.Text,
			Pre:    n.text[pos:m.Offset],
			Offset: m.Offset,
			Source: n.src,
			Tokens: tokens,
			Depth:  depth,
		}
		next := m.End()

		if m.Rule.IsContainer() {
			if depth >= n.maxDepth {
				return frameResult{}, nestingTooDeepError(m.Rule, n.src.At(m.Offset), n.maxDepth)
			}

			inner, e := n.frame(next, m.Rule.End, depth+1, next)
			if e != nil {
				return frameResult{}, e
			}

			ctx.Content = inner.tokens
			ctx.Closed = inner.end.Found()
			if ctx.Closed {
				ctx.EndGroups = inner.end.Groups
				ctx.EndMatch = inner.end.Text
				ctx.EndOffset = inner.end.Offset
			} else {
				ctx.EndOffset = len(n.text)
				if n.unclosed == UnclosedError {
					return frameResult{}, unclosedContainerError(m.Rule, n.src.At(m.Offset))
				}
				n.log.Warningf("container %q at offset %d is not closed", m.Rule.ID, m.Offset)
			}
			next = inner.next
		}

		result, e := m.Rule.Handler(m.Groups, ctx)
		if e != nil {
			return frameResult{}, e
		}

		tokens = tokens.Append(result)
		noEmptyAt = next
		pos = next
	}

	if boundary != nil {
		pos = len(n.text)
	}
	return frameResult{tokens: tokens, end: pattern.None(), next: pos}, nil
}

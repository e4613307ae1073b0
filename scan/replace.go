package scan

import (
	"fmt"
	"strings"

	"github.com/ava12/picoscan/rules"
	"github.com/ava12/picoscan/source"
	"github.com/ava12/picoscan/token"
)

// Replace applies plain rules to text one by one in declaration order,
// every rule replaces all non-overlapping matches in the text produced by previous rules.
// An empty match right after the previous match is skipped.
// Container and default rules are ignored.
// Handler result is rendered as string: nil becomes empty string, fmt.Stringer uses String(),
// other values are formatted with fmt.Sprint.
// Context.Source refers to the original text, Context.Offset refers to the text being processed.
func Replace(set rules.Set, text string) (string, error) {
	return replace(set, source.New("", text))
}

func replace(set rules.Set, src *source.Source) (string, error) {
	text := src.Content()
	for _, r := range set {
		if r.Default || r.IsContainer() {
			continue
		}

		var e error
		text, e = replaceRule(r, src, text)
		if e != nil {
			return "", e
		}
	}
	return text, nil
}

func replaceRule(r *rules.Rule, src *source.Source, text string) (string, error) {
	var sb strings.Builder
	prev := 0
	noEmptyAt := -1
	for {
		m := r.Pattern.SearchNonEmptyAt(text, prev, noEmptyAt)
		if !m.Found() {
			break
		}

		ctx := &rules.Context{
			Rule:   r,
			Match:  m.Text,
			Pre:    text[prev:m.Offset],
			Offset: m.Offset,
			Source: src,
		}
		result, e := r.Handler(m.Groups, ctx)
		if e != nil {
			return "", e
		}

		sb.WriteString(ctx.Pre)
		sb.WriteString(render(result))
		prev = m.End()
		noEmptyAt = prev
	}

	if sb.Len() == 0 && prev == 0 {
		return text, nil
	}
	sb.WriteString(text[prev:])
	return sb.String(), nil
}

func render(t token.Token) string {
	switch v := t.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

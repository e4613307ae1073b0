package rules

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/dlclark/regexp2"

	"github.com/ava12/picoscan"
	"github.com/ava12/picoscan/pattern"
	"github.com/ava12/picoscan/token"
)

// Error codes used by rule compiler:
const (
	// MalformedRuleError indicates unrecognized rule or declaration shape, bad pattern, or missing handler.
	// Error message contains offending rule id.
	MalformedRuleError = picoscan.RuleErrors + iota

	// DuplicateRuleError indicates that the same id is used twice in a Map.
	DuplicateRuleError
)

// Entry is a single named rule specification of a Map.
type Entry struct {
	ID   string
	Spec any
}

// Map is a name-keyed rule declaration that keeps declaration order.
type Map []Entry

// Compile converts rule declaration to a Set.
//
// Declaration is one of:
//   - Set, []*Rule, []Rule: already expanded records;
//   - []any: a list of specs, rule ids are list indexes unless a spec is a record with non-empty ID;
//   - Map: a list of named specs;
//   - map[string]any: named specs taken in ascending key order.
//
// Spec is one of:
//   - Handler or func(pattern.Groups, *Context) (token.Token, error): a default rule;
//   - []any{pattern, Handler}: a plain rule;
//   - []any{pattern, endPattern, Handler}: a container rule;
//   - Rule or *Rule: a record, copied.
//
// Pattern is a string, *regexp.Regexp (recompiled from its source), *regexp2.Regexp, or *pattern.Pattern.
// Compile never modifies the declaration.
func Compile(declaration any) (Set, error) {
	switch d := declaration.(type) {
	case Set:
		return compileRecords(d)
	case []*Rule:
		return compileRecords(d)
	case []Rule:
		result := make(Set, 0, len(d))
		for i := range d {
			r, e := compileSpec(strconv.Itoa(i), d[i])
			if e != nil {
				return nil, e
			}
			result = append(result, r)
		}
		return result, nil
	case []any:
		result := make(Set, 0, len(d))
		for i, spec := range d {
			r, e := compileSpec(strconv.Itoa(i), spec)
			if e != nil {
				return nil, e
			}
			result = append(result, r)
		}
		return result, nil
	case Map:
		return compileMap(d)
	case map[string]any:
		keys := make([]string, 0, len(d))
		for k := range d {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := make(Map, len(keys))
		for i, k := range keys {
			m[i] = Entry{k, d[k]}
		}
		return compileMap(m)
	default:
		return nil, picoscan.FormatError(MalformedRuleError, "unsupported rule declaration type %T", declaration)
	}
}

// MustCompile is like Compile but panics on error.
func MustCompile(declaration any) Set {
	s, e := Compile(declaration)
	if e != nil {
		panic(e)
	}
	return s
}

func compileRecords(rs []*Rule) (Set, error) {
	result := make(Set, 0, len(rs))
	for i, r := range rs {
		if r == nil {
			return nil, malformedRuleError(strconv.Itoa(i), "nil rule")
		}
		cr, e := compileSpec(strconv.Itoa(i), *r)
		if e != nil {
			return nil, e
		}
		result = append(result, cr)
	}
	return result, nil
}

func compileMap(m Map) (Set, error) {
	result := make(Set, 0, len(m))
	ids := make(map[string]bool, len(m))
	for _, entry := range m {
		if ids[entry.ID] {
			return nil, picoscan.FormatError(DuplicateRuleError, "duplicate rule id %q", entry.ID)
		}
		ids[entry.ID] = true

		r, e := compileSpec(entry.ID, entry.Spec)
		if e != nil {
			return nil, e
		}
		r.ID = entry.ID
		result = append(result, r)
	}
	return result, nil
}

func malformedRuleError(id, reason string) *picoscan.Error {
	return picoscan.FormatError(MalformedRuleError, "malformed rule %q: %s", id, reason)
}

func compileSpec(id string, spec any) (*Rule, error) {
	var r Rule
	switch s := spec.(type) {
	case *Rule:
		if s == nil {
			return nil, malformedRuleError(id, "nil rule")
		}
		r = *s
	case Rule:
		r = s
	case Handler:
		r = Rule{Handler: s, Default: true}
	case func(pattern.Groups, *Context) (token.Token, error):
		r = Rule{Handler: s, Default: true}
	case []any:
		var e error
		r, e = compileTuple(id, s)
		if e != nil {
			return nil, e
		}
	default:
		return nil, malformedRuleError(id, "unsupported rule type")
	}

	if r.ID == "" {
		r.ID = id
	}
	if r.Handler == nil {
		return nil, malformedRuleError(r.ID, "no handler")
	}
	if r.Default {
		if r.End != nil {
			return nil, malformedRuleError(r.ID, "default rule cannot have end pattern")
		}
	} else if r.Pattern == nil {
		return nil, malformedRuleError(r.ID, "no pattern")
	}

	return &r, nil
}

func compileTuple(id string, tuple []any) (Rule, error) {
	var r Rule
	if len(tuple) != 2 && len(tuple) != 3 {
		return r, malformedRuleError(id, "expecting 2 or 3 elements, got "+strconv.Itoa(len(tuple)))
	}

	var e error
	r.Pattern, e = compilePattern(id, tuple[0])
	if e != nil {
		return r, e
	}

	if len(tuple) == 3 {
		r.End, e = compilePattern(id, tuple[1])
		if e != nil {
			return r, e
		}
	}

	switch h := tuple[len(tuple)-1].(type) {
	case Handler:
		r.Handler = h
	case func(pattern.Groups, *Context) (token.Token, error):
		r.Handler = h
	default:
		return r, malformedRuleError(id, "last element is not a handler")
	}

	return r, nil
}

func compilePattern(id string, p any) (*pattern.Pattern, error) {
	switch pt := p.(type) {
	case *pattern.Pattern:
		if pt != nil {
			return pt, nil
		}
	case *regexp2.Regexp:
		if pt != nil {
			return pattern.Of(pt), nil
		}
	case *regexp.Regexp:
		if pt != nil {
			return compileString(id, pt.String())
		}
	case string:
		return compileString(id, pt)
	}
	return nil, malformedRuleError(id, "pattern expected")
}

func compileString(id, expr string) (*pattern.Pattern, error) {
	res, e := pattern.Compile(expr)
	if e != nil {
		return nil, malformedRuleError(id, e.Error())
	}
	return res, nil
}

package rules

import (
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/dlclark/regexp2"

	"github.com/ava12/picoscan/internal/test"
	"github.com/ava12/picoscan/pattern"
	"github.com/ava12/picoscan/token"
)

func constHandler(result string) Handler {
	return func(pattern.Groups, *Context) (token.Token, error) {
		return result, nil
	}
}

func plainFunc(pattern.Groups, *Context) (token.Token, error) {
	return nil, nil
}

func handlerPtr(h Handler) uintptr {
	return reflect.ValueOf(h).Pointer()
}

func patternText(p *pattern.Pattern) string {
	if p == nil {
		return ""
	}
	return p.String()
}

func expectSameSets(t *testing.T, expected, got Set) {
	test.ExpectInt(t, len(expected), len(got))
	for i, er := range expected {
		gr := got[i]
		test.ExpectString(t, er.ID, gr.ID)
		test.ExpectString(t, patternText(er.Pattern), patternText(gr.Pattern))
		test.ExpectString(t, patternText(er.End), patternText(gr.End))
		test.ExpectBool(t, er.Default, gr.Default)
		test.Assert(t, handlerPtr(er.Handler) == handlerPtr(gr.Handler), "rule %q: handler differs", er.ID)
	}
}

func TestSimpleRules(t *testing.T) {
	rs, e := Compile(Map{
		{"a", []any{"aa", constHandler("a")}},
		{"b", []any{regexp.MustCompile("bb"), plainFunc}},
		{"c", []any{regexp2.MustCompile(`\bcc`, pattern.Options), plainFunc}},
	})
	test.ExpectNoError(t, e)
	test.ExpectInt(t, 3, len(rs))

	test.ExpectString(t, "a", rs[0].ID)
	test.ExpectString(t, "aa", rs[0].Pattern.String())
	test.Assert(t, rs[0].Handler != nil, "no handler")
	test.ExpectBool(t, false, rs[0].IsContainer())

	test.ExpectString(t, "b", rs[1].ID)
	test.ExpectString(t, "bb", rs[1].Pattern.String())
	test.Assert(t, rs[1].Handler != nil, "no handler")

	test.ExpectString(t, `\bcc`, rs[2].Pattern.String())
	test.ExpectInt(t, 4, rs[2].Pattern.Search("acc cc", 0).Offset)
}

func TestDefaultRule(t *testing.T) {
	rs, e := Compile(Map{{"default", plainFunc}})
	test.ExpectNoError(t, e)
	test.ExpectString(t, "default", rs[0].ID)
	test.ExpectBool(t, true, rs[0].Default)
	test.Assert(t, rs[0].Pattern == nil, "default rule has pattern")
	test.Assert(t, rs.Default() == rs[0], "default rule not found")
}

func TestNestedRules(t *testing.T) {
	rs, e := Compile(Map{
		{"a", []any{"aa", constHandler("a")}},
		{"b", []any{"bb", constHandler("b")}},
		{"container", []any{`(.+)\{`, pattern.MustCompile(`\}`), constHandler("c")}},
	})
	test.ExpectNoError(t, e)
	test.ExpectInt(t, 3, len(rs))
	test.ExpectString(t, "container", rs[2].ID)
	test.ExpectString(t, `(.+)\{`, rs[2].Pattern.String())
	test.ExpectString(t, `\}`, rs[2].End.String())
	test.ExpectBool(t, true, rs[2].IsContainer())
	test.ExpectBool(t, true, rs.HasContainers())
	test.ExpectBool(t, false, rs[:2].HasContainers())
}

func TestListIDs(t *testing.T) {
	rs, e := Compile([]any{
		[]any{"a", plainFunc},
		Rule{ID: "named", Pattern: pattern.MustCompile("b"), Handler: plainFunc},
		&Rule{Pattern: pattern.MustCompile("c"), Handler: plainFunc},
	})
	test.ExpectNoError(t, e)
	ids := []string{"0", "named", "2"}
	for i, id := range ids {
		test.ExpectString(t, id, rs[i].ID)
	}
}

func TestGoMapOrder(t *testing.T) {
	rs, e := Compile(map[string]any{
		"zeta":  []any{"z", plainFunc},
		"alpha": []any{"a", plainFunc},
		"mid":   []any{"m", plainFunc},
	})
	test.ExpectNoError(t, e)
	ids := []string{"alpha", "mid", "zeta"}
	for i, id := range ids {
		test.ExpectString(t, id, rs[i].ID)
	}
}

func TestIdempotence(t *testing.T) {
	first, e := Compile(Map{
		{"word", []any{`\w+`, constHandler("w")}},
		{"block", []any{`\[`, `\]`, constHandler("b")}},
		{"text", constHandler("t")},
	})
	test.ExpectNoError(t, e)

	second, e := Compile(first)
	test.ExpectNoError(t, e)
	expectSameSets(t, first, second)
	test.Assert(t, first[0] != second[0], "records are not copied")

	records := make([]Rule, len(first))
	for i, r := range first {
		records[i] = *r
	}
	third, e := Compile(records)
	test.ExpectNoError(t, e)
	expectSameSets(t, first, third)
}

func TestNoMutation(t *testing.T) {
	r := &Rule{Pattern: pattern.MustCompile("x"), Handler: plainFunc}
	decl := []*Rule{r}
	rs, e := Compile(decl)
	test.ExpectNoError(t, e)
	test.ExpectString(t, "0", rs[0].ID)
	test.ExpectString(t, "", r.ID)
	test.Assert(t, decl[0] == r, "declaration modified")
}

func TestMalformedRules(t *testing.T) {
	samples := []struct {
		decl any
		id   string
	}{
		{Map{{"str", "foo"}}, "str"},
		{Map{{"one", []any{"a"}}}, "one"},
		{Map{{"four", []any{"a", "b", "c", plainFunc}}}, "four"},
		{Map{{"nohandler", []any{"a", "b"}}}, "nohandler"},
		{Map{{"badre", []any{"(", plainFunc}}}, "badre"},
		{Map{{"nopattern", []any{42, plainFunc}}}, "nopattern"},
		{Map{{"nilre", []any{(*regexp.Regexp)(nil), plainFunc}}}, "nilre"},
		{Map{{"nilre2", []any{(*regexp2.Regexp)(nil), plainFunc}}}, "nilre2"},
		{[]any{[]any{"a", plainFunc}, Rule{Handler: plainFunc}}, "1"},
		{[]any{Rule{ID: "rec", Pattern: pattern.MustCompile("a")}}, "rec"},
		{[]any{Rule{ID: "def", Default: true, End: pattern.MustCompile("a"), Handler: plainFunc}}, "def"},
		{[]*Rule{nil}, "0"},
	}

	for i, sample := range samples {
		_, e := Compile(sample.decl)
		ee := test.ExpectErrorCode(t, MalformedRuleError, e)
		if !strings.Contains(ee.Message, "\""+sample.id+"\"") {
			t.Errorf("sample #%d: expecting rule id %q in message, got %q", i, sample.id, ee.Message)
		}
	}
}

func TestBadDeclaration(t *testing.T) {
	_, e := Compile("rules")
	test.ExpectErrorCode(t, MalformedRuleError, e)
}

func TestDuplicateIDs(t *testing.T) {
	_, e := Compile(Map{{"a", plainFunc}, {"a", plainFunc}})
	test.ExpectErrorCode(t, DuplicateRuleError, e)
}

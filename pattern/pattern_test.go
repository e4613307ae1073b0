package pattern

import (
	"testing"

	"github.com/dlclark/regexp2"
)

func TestSearch(t *testing.T) {
	p := MustCompile(`bb(.)(x)?b`)
	samples := []struct {
		text, match  string
		from, offset int
		groups       Groups
	}{
		{"g bbtb bbdb", "bbtb", 0, 2, Groups{{"t", true}, {"", false}}},
		{"g bbtb bbdb", "bbtb", 2, 2, Groups{{"t", true}, {"", false}}},
		{"g bbtb bbdb", "bbdb", 3, 7, Groups{{"d", true}, {"", false}}},
		{"a bbcxb", "bbcxb", 0, 2, Groups{{"c", true}, {"x", true}}},
	}

	for i, sample := range samples {
		m := p.Search(sample.text, sample.from)
		if !m.Found() || m.Text != sample.match || m.Offset != sample.offset {
			t.Fatalf("sample #%d: expecting %q at %d, got %q at %d", i, sample.match, sample.offset, m.Text, m.Offset)
		}
		if len(m.Groups) != len(sample.groups) {
			t.Fatalf("sample #%d: expecting %d groups, got %d", i, len(sample.groups), len(m.Groups))
		}
		for j, g := range sample.groups {
			if m.Groups[j] != g {
				t.Fatalf("sample #%d: expecting group %d to be %v, got %v", i, j, g, m.Groups[j])
			}
		}
		if m.End() != sample.offset+len(sample.match) {
			t.Fatalf("sample #%d: wrong end %d", i, m.End())
		}
	}
}

func TestNoMatch(t *testing.T) {
	p := MustCompile(`foo`)
	for _, from := range []int{0, 5, 100} {
		m := p.Search("bar foo", from)
		if from == 0 {
			if m.Offset != 4 {
				t.Fatalf("expecting match at 4, got %d", m.Offset)
			}
			continue
		}
		if m.Found() || m.Offset != NoMatch || m.End() != NoMatch {
			t.Fatalf("from %d: expecting no match, got %q at %d", from, m.Text, m.Offset)
		}
	}
}

func TestSearchSeesWholeText(t *testing.T) {
	samples := []struct {
		expr, text string
		from       int
		offset     int
		match      string
	}{
		{`^a`, "ba", 1, NoMatch, ""},
		{`^b`, "ba", 0, 0, "b"},
		{`\bbar`, "foobar", 3, NoMatch, ""},
		{`\bbar`, "foo bar", 3, 4, "bar"},
		{`\Bbar`, "foobar", 3, 3, "bar"},
		{`(?<=x)y`, "xyzy", 1, 1, "y"},
		{`(?<=x)y`, "xyzy", 2, NoMatch, ""},
		{`$`, "ab", 1, 2, ""},
	}

	for i, sample := range samples {
		m := MustCompile(sample.expr).Search(sample.text, sample.from)
		if m.Offset != sample.offset || m.Text != sample.match {
			t.Errorf("sample #%d: expecting %q at %d, got %q at %d", i, sample.match, sample.offset, m.Text, m.Offset)
		}
	}
}

func TestSearchByteOffsets(t *testing.T) {
	text := "аб в бв"
	m := MustCompile(`(б)(в)`).Search(text, 0)
	if m.Offset != 8 || m.Text != "бв" || m.End() != len(text) {
		t.Fatalf("expecting %q at 8, got %q at %d", "бв", m.Text, m.Offset)
	}
	if m.Groups.Text(0) != "б" || m.Groups.Text(1) != "в" {
		t.Fatalf("unexpected groups %q", m.Groups.Strings())
	}

	m = MustCompile(`в`).Search(text, 3)
	if m.Offset != 5 {
		t.Fatalf("expecting match at 5, got %d", m.Offset)
	}
}

func TestSearchIsPure(t *testing.T) {
	p := MustCompile(`a`)
	text := "a a a"
	first := p.Search(text, 2)
	p.Search(text, 4)
	second := p.Search(text, 2)
	if first.Offset != 2 || second.Offset != 2 {
		t.Fatalf("expecting repeated search at 2, got %d and %d", first.Offset, second.Offset)
	}
}

func TestSearchNonEmptyAt(t *testing.T) {
	p := MustCompile(`x*`)
	samples := []struct {
		text             string
		from, at, offset int
		match            string
	}{
		{"abc", 0, -1, 0, ""},
		{"abc", 0, 0, 1, ""},
		{"axx", 0, 0, 1, "xx"},
		{"xxa", 0, 0, 0, "xx"},
		{"ёa", 0, 0, 2, ""},
	}

	for i, sample := range samples {
		m := p.SearchNonEmptyAt(sample.text, sample.from, sample.at)
		if m.Offset != sample.offset || m.Text != sample.match {
			t.Errorf("sample #%d: expecting %q at %d, got %q at %d", i, sample.match, sample.offset, m.Text, m.Offset)
		}
	}

	if m := p.SearchNonEmptyAt("ab", 2, 2); m.Found() {
		t.Fatalf("expecting no match at the end, got %d", m.Offset)
	}
}

func TestGroups(t *testing.T) {
	gs := Groups{{"a", true}, {"", false}}
	if gs.Text(0) != "a" || gs.Text(1) != "" || gs.Text(5) != "" || gs.Text(-1) != "" {
		t.Fatal("unexpected group text")
	}
	if !gs.Has(0) || gs.Has(1) || gs.Has(2) {
		t.Fatal("unexpected group presence")
	}
	s := gs.Strings()
	if len(s) != 2 || s[0] != "a" || s[1] != "" {
		t.Fatalf("unexpected strings %q", s)
	}
}

func TestConstructors(t *testing.T) {
	if _, e := Compile("("); e == nil {
		t.Fatal("expecting compilation error")
	}
	if Of(nil) != nil {
		t.Fatal("expecting nil pattern")
	}
	re := regexp2.MustCompile(`(a)(b)`, Options)
	p := Of(re)
	if p.Regexp() != re || p.String() != `(a)(b)` || p.NumGroups() != 2 {
		t.Fatal("wrapped regexp differs")
	}
}

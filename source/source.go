// Package source defines source text with line and column lookup.
package source

import (
	"strings"
	"unicode/utf8"
)

// Source holds immutable source text and its name.
// Source is safe for concurrent use.
type Source struct {
	name       string
	content    string
	lineStarts []int
}

// New creates new Source. name may be empty.
func New(name string, content string) *Source {
	s := &Source{name: name, content: content}
	lineCnt := strings.Count(content, "\n") + 1
	s.lineStarts = make([]int, lineCnt)
	j := 1
	for i := 0; i < len(content) && j < lineCnt; i++ {
		if content[i] == '\n' {
			s.lineStarts[j] = i + 1
			j++
		}
	}

	return s
}

// Name returns source name.
func (s *Source) Name() string {
	return s.name
}

// Content returns the whole source text.
func (s *Source) Content() string {
	return s.content
}

// Len returns source text length in bytes.
func (s *Source) Len() int {
	return len(s.content)
}

// Slice returns source text between byte offsets, offsets are clamped to text bounds.
func (s *Source) Slice(from, to int) string {
	from = s.clamp(from)
	to = s.clamp(to)
	if to < from {
		return ""
	}
	return s.content[from:to]
}

func (s *Source) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(s.content) {
		return len(s.content)
	}
	return pos
}

// LineCol converts byte offset to line and column numbers, both starting from 1.
// Column is counted in runes. Offsets outside of the text are clamped.
func (s *Source) LineCol(pos int) (line, col int) {
	pos = s.clamp(pos)
	lineIndex := s.findLineIndex(pos)
	lineStart := s.lineStarts[lineIndex]
	return lineIndex + 1, utf8.RuneCountInString(s.content[lineStart:pos]) + 1
}

// Pos converts line and column numbers to byte offset.
// Column is counted in bytes. Returns 0 for non-positive arguments, result is clamped to text length.
func (s *Source) Pos(line, col int) int {
	if line <= 0 || col <= 0 {
		return 0
	}

	l := len(s.content)
	if line > len(s.lineStarts) {
		return l
	}

	res := s.lineStarts[line-1] + col - 1
	if res > l {
		return l
	} else {
		return res
	}
}

// At returns position information for byte offset.
func (s *Source) At(pos int) Pos {
	pos = s.clamp(pos)
	line, col := s.LineCol(pos)
	return Pos{s, pos, line, col}
}

func (s *Source) findLineIndex(pos int) int {
	leftIndex := 0
	rightIndex := len(s.lineStarts) - 1
	for leftIndex < rightIndex {
		index := (leftIndex + rightIndex + 1) >> 1
		lineStart := s.lineStarts[index]
		if lineStart == pos {
			return index
		}

		if lineStart < pos {
			leftIndex = index
		} else {
			rightIndex = index - 1
		}
	}
	return leftIndex
}

// Pos describes a position in source text.
type Pos struct {
	src            *Source
	pos, line, col int
}

// Source returns the source this position belongs to.
func (p Pos) Source() *Source {
	return p.src
}

// SourceName returns source name or empty string.
func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.name
}

// Pos returns byte offset.
func (p Pos) Pos() int {
	return p.pos
}

// Line returns line number.
func (p Pos) Line() int {
	return p.line
}

// Col returns column number.
func (p Pos) Col() int {
	return p.col
}

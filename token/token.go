// Package token defines token sequences produced by scan engines and the read cursor used to walk them.
package token

// Token is any value produced by a rule handler.
type Token = any

// Tokens is an ordered append-only sequence of tokens.
// A handler returning Tokens (or []any) gets its result spliced into the output.
type Tokens []Token

// Append adds handler result to the sequence and returns updated sequence.
// nil result is dropped, Tokens and []any results are spliced one level deep,
// nil elements of spliced sequences are dropped as well.
func (ts Tokens) Append(result Token) Tokens {
	switch r := result.(type) {
	case nil:
		return ts
	case Tokens:
		return ts.appendAll(r)
	case []any:
		return ts.appendAll(r)
	default:
		return append(ts, r)
	}
}

func (ts Tokens) appendAll(items []Token) Tokens {
	for _, item := range items {
		if item != nil {
			ts = append(ts, item)
		}
	}
	return ts
}

// Len returns the number of tokens.
func (ts Tokens) Len() int {
	return len(ts)
}

// Cursor walks a token sequence.
// Cursor never modifies the sequence, the same sequence may be walked by several cursors.
type Cursor struct {
	tokens Tokens
	index  int
}

// NewCursor creates cursor positioned before the first token.
func NewCursor(ts Tokens) *Cursor {
	return &Cursor{tokens: ts, index: -1}
}

// Next advances cursor and returns the token at new position.
// Returns nil, false if cursor has moved past the last token.
func (c *Cursor) Next() (Token, bool) {
	if c.index < len(c.tokens) {
		c.index++
	}
	if c.index >= len(c.tokens) {
		return nil, false
	}
	return c.tokens[c.index], true
}

// Peek returns the token Next would return without advancing cursor.
func (c *Cursor) Peek() (Token, bool) {
	i := c.index + 1
	if i >= len(c.tokens) {
		return nil, false
	}
	return c.tokens[i], true
}

// Done tells whether cursor has reached the last token (or the sequence is empty).
func (c *Cursor) Done() bool {
	return c.index >= len(c.tokens)-1
}

// Index returns current position, -1 means "before the first token".
func (c *Cursor) Index() int {
	return c.index
}

// Len returns the length of walked sequence.
func (c *Cursor) Len() int {
	return len(c.tokens)
}

// Reset moves cursor before the first token.
func (c *Cursor) Reset() {
	c.index = -1
}

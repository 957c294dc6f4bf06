package stream

import "unicode/utf8"

// CharStream is a cursored iterator over a UTF-8 source string. The
// cursor is a byte offset that always lands on a rune boundary, mirroring
// the teacher lexer's position/readPosition bookkeeping (internal/compiler
// /lexer.Lexer in the retrieved btouchard/gmx repo) but reworked so the
// cursor can be saved and rewound from outside the stream, not just
// one token of hand-rolled backtracking at a time (see Mark/Reset,
// grounded on that lexer's trySectionTag, which saved and restored
// position/readPosition/ch/line/column by hand around a failed lookahead).
type CharStream struct {
	src string
	pos int // byte offset; always a rune boundary
}

// New builds a CharStream over src. src is held by reference, not copied.
func New(src string) *CharStream {
	return &CharStream{src: src}
}

func (c *CharStream) Cursor() int { return c.pos }

func (c *CharStream) Restore(pos int) { c.pos = pos }

// Mark and Reset are Cursor/Restore under "checkpoint, maybe rewind"
// names. The rule package itself calls Cursor/Restore.
func (c *CharStream) Mark() int       { return c.pos }
func (c *CharStream) Reset(mark int)  { c.pos = mark }

func (c *CharStream) PeekN(n int) (any, bool) {
	r, _, ok := c.peekRuneAt(n)
	if !ok {
		return nil, false
	}
	return r, true
}

func (c *CharStream) Next() (any, bool) {
	r, size, ok := c.peekRuneAt(0)
	if !ok {
		return nil, false
	}
	c.pos += size
	return r, true
}

// PeekRune is the typed equivalent of PeekN(0), returning a rune instead
// of boxed any.
func (c *CharStream) PeekRune() (rune, bool) {
	r, _, ok := c.peekRuneAt(0)
	return r, ok
}

// peekRuneAt walks n runes forward from the cursor without mutating it,
// returning the rune at that position, its byte width, and whether it
// exists. n is a rune offset, not a byte offset: PeekN(k) in the spec
// means "the k-th item ahead", which for a character stream is runes.
func (c *CharStream) peekRuneAt(n int) (rune, int, bool) {
	off := c.pos
	for i := 0; i < n; i++ {
		if off >= len(c.src) {
			return 0, 0, false
		}
		_, size := utf8.DecodeRuneInString(c.src[off:])
		off += size
	}
	if off >= len(c.src) {
		return 0, 0, false
	}
	r, size := utf8.DecodeRuneInString(c.src[off:])
	return r, size, true
}

// Tail returns the unconsumed suffix of the source as a contiguous
// slice. It never allocates: it is a re-slice of the original string.
func (c *CharStream) Tail() string { return c.src[c.pos:] }

// AtEnd reports whether the cursor has reached the end of the source.
func (c *CharStream) AtEnd() bool { return c.pos >= len(c.src) }

// Len is the byte length of the full source.
func (c *CharStream) Len() int { return len(c.src) }

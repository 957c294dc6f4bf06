// Package stream implements the cursored, peekable, buffered input
// abstraction rules consume: a character stream over a UTF-8 source
// string, and a generic token stream over an arbitrary slice.
package stream

// Source is the minimal cursor contract every input shares: an
// append-only buffer of items with a mutable integer cursor, non-mutating
// lookahead, and one-item consumption. Both CharStream and TokenStream[T]
// implement it; the combinator kernel (package rule) is written against
// this interface so sequence/choice/repeat/lookahead are item-type
// agnostic. Terminal matching (substring/regex) additionally needs
// contiguous-slice access, which only CharSource exposes.
type Source interface {
	// Cursor returns the current read position.
	Cursor() int

	// Restore resets the cursor to a previously observed position. It
	// never fails: pos must come from a prior Cursor() call on the same
	// stream.
	Restore(pos int)

	// PeekN reads the item at Cursor()+n without consuming it. ok is
	// false (EndStream) if the source is exhausted at that offset.
	PeekN(n int) (item any, ok bool)

	// Next reads and consumes the item at the cursor, advancing it by
	// one. ok is false (EndStream) at end of input.
	Next() (item any, ok bool)
}

// CharSource is a Source whose items are runes drawn from a contiguous
// UTF-8 string, and which additionally exposes the unconsumed suffix as
// a string slice for substring/regex terminal matching.
type CharSource interface {
	Source

	// Tail returns the remaining input from the cursor onward. Calling
	// it twice without an intervening consumption returns the same
	// string; the cursor is unchanged.
	Tail() string
}

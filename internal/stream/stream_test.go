package stream

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCharStreamBasicCursor(t *testing.T) {
	s := New("héllo")
	require.Equal(t, 0, s.Cursor())

	r, ok := s.PeekRune()
	require.True(t, ok)
	require.Equal(t, 'h', r)
	require.Equal(t, 0, s.Cursor(), "peek must not advance the cursor")

	item, ok := s.Next()
	require.True(t, ok)
	require.Equal(t, 'h', item)
	require.Equal(t, 1, s.Cursor())

	item, ok = s.Next()
	require.True(t, ok)
	require.Equal(t, 'é', item, "cursor stays on a rune boundary across a multi-byte rune")
	require.Equal(t, 1+len("é"), s.Cursor())
}

func TestCharStreamPeekNNeverMutates(t *testing.T) {
	s := New("abc")
	mark := s.Cursor()
	v, ok := s.PeekN(2)
	require.True(t, ok)
	require.Equal(t, 'c', v)
	require.Equal(t, mark, s.Cursor())

	_, ok = s.PeekN(3)
	require.False(t, ok, "PeekN past end reports EndStream, not a panic")
	require.Equal(t, mark, s.Cursor())
}

func TestCharStreamTailIsStableAndNonConsuming(t *testing.T) {
	s := New("hello world")
	s.Next()
	s.Next()
	first := s.Tail()
	second := s.Tail()
	require.Equal(t, first, second)
	require.Equal(t, "llo world", first)
}

func TestCharStreamMarkReset(t *testing.T) {
	s := New("abcdef")
	s.Next()
	s.Next()
	mark := s.Mark()
	s.Next()
	s.Next()
	require.Equal(t, 4, s.Cursor())
	s.Reset(mark)
	require.Equal(t, 2, s.Cursor())
}

func TestCharStreamAtEndNeverPanics(t *testing.T) {
	s := New("")
	_, ok := s.Next()
	require.False(t, ok)
	_, ok = s.PeekN(0)
	require.False(t, ok)
	require.True(t, s.AtEnd())
}

func TestTokenStreamBasics(t *testing.T) {
	ts := NewTokens([]string{"a", "b", "c"})
	v, ok := ts.PeekTyped()
	require.True(t, ok)
	require.Equal(t, "a", v)
	require.Equal(t, 0, ts.Cursor())

	item, ok := ts.Next()
	require.True(t, ok)
	require.Equal(t, "a", item)
	require.Equal(t, 1, ts.Cursor())

	require.Equal(t, []string{"b", "c"}, ts.Remaining())

	mark := ts.Cursor()
	ts.Next()
	ts.Next()
	_, ok = ts.Next()
	require.False(t, ok)
	ts.Restore(mark)
	require.Equal(t, mark, ts.Cursor())
}

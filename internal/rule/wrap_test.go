package rule_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abstractparser/pegc/internal/rule"
)

func TestWrapKeepsOnlyBodyValue(t *testing.T) {
	lparen := rule.NewSubstring("(", false, "(")
	rparen := rule.NewSubstring(")", false, ")")
	body := rule.NewRegex(`[0-9]+`, false, "digits")
	wrapped := rule.NewWrap(lparen, body, rparen, "paren_digits")

	s := newStream("(42)")
	res := s.Apply(wrapped)
	require.True(t, res.IsOk())
	require.Equal(t, "42", res.Value)
	require.Equal(t, 4, s.Cursor())
}

func TestWrapFailsAndRewindsOnMissingEnd(t *testing.T) {
	lparen := rule.NewSubstring("(", false, "(")
	rparen := rule.NewSubstring(")", false, ")")
	body := rule.NewRegex(`[0-9]+`, false, "digits")
	wrapped := rule.NewWrap(lparen, body, rparen, "paren_digits")

	s := newStream("(42]")
	res := s.Apply(wrapped)
	require.False(t, res.IsOk())
	require.Equal(t, 0, s.Cursor())
	require.Equal(t, rule.KindSeqPosition, res.Err.Kind)
	require.Equal(t, 2, res.Err.Index)
}

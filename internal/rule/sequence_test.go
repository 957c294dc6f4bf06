package rule_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abstractparser/pegc/internal/rule"
)

func TestFilteredSequenceOmitsIgnoredValues(t *testing.T) {
	a := rule.NewSubstring("a", false, "a")
	comma := rule.NewSubstring(",", false, ",")
	b := rule.NewSubstring("b", false, "b")
	fs := rule.NewFilteredSequence("a, b", []rule.Rule{a, comma, b}, []bool{false, true, false})

	s := newStream("a,b")
	res := s.Apply(fs)
	require.True(t, res.IsOk())
	require.Equal(t, []any{"a", "b"}, res.Value)
	require.Equal(t, 3, s.Cursor())
}

func TestFilteredSequenceStillFailsOnIgnoredElement(t *testing.T) {
	a := rule.NewSubstring("a", false, "a")
	comma := rule.NewSubstring(",", false, ",")
	b := rule.NewSubstring("b", false, "b")
	fs := rule.NewFilteredSequence("a, b", []rule.Rule{a, comma, b}, []bool{false, true, false})

	s := newStream("a;b")
	res := s.Apply(fs)
	require.False(t, res.IsOk())
	require.Equal(t, 0, s.Cursor())
	require.Equal(t, 1, res.Err.Index)
}

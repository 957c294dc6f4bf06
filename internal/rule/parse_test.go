package rule_test

import (
	"testing"

	"github.com/abstractparser/pegc/internal/rule"
	"github.com/stretchr/testify/require"
)

func TestParseSuccessWithResidue(t *testing.T) {
	s := newStream("aaaa")
	r := rule.RepeatCount(rule.NewSubstring("a", false, "a"), 3, "a3")

	v, perr := rule.Parse(s, r)
	require.Nil(t, perr)
	require.Equal(t, []any{"a", "a", "a"}, v)
}

func TestFullParseRejectsResidue(t *testing.T) {
	s := newStream("aaaa")
	r := rule.RepeatCount(rule.NewSubstring("a", false, "a"), 3, "a3")

	v, perr := rule.FullParse(s, r)
	require.Nil(t, v)
	require.NotNil(t, perr)
	require.True(t, perr.Result.IsOk(), "full_parse keeps the partial Ok in Result")
	require.Equal(t, "a", perr.Residue)
}

func TestFullParseAcceptsExactConsumption(t *testing.T) {
	s := newStream("aaa")
	r := rule.RepeatCount(rule.NewSubstring("a", false, "a"), 3, "a3")

	v, perr := rule.FullParse(s, r)
	require.Nil(t, perr)
	require.Equal(t, []any{"a", "a", "a"}, v)
}

func TestParseReportsFailureAndResidue(t *testing.T) {
	s := newStream("bbb")
	r := rule.NewSubstring("a", false, "a")

	v, perr := rule.Parse(s, r)
	require.Nil(t, v)
	require.NotNil(t, perr)
	require.False(t, perr.Result.IsOk())
	require.Equal(t, "bbb", perr.Residue)
}

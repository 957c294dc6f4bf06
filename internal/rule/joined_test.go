package rule_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abstractparser/pegc/internal/rule"
)

func TestMinJoinableEnforcesLowerBound(t *testing.T) {
	el := func() rule.Rule { return rule.NewSubstring("a", false, "a") }
	sep := func() rule.Rule { return rule.NewSubstring(",", false, ",") }

	atLeast3 := rule.NewMinJoinable(el(), sep(), 3, "L3")

	short := newStream("a,a")
	res := short.Apply(atLeast3)
	require.False(t, res.IsOk())
	require.Equal(t, rule.KindQuantBound, res.Err.Kind)

	enough := newStream("a,a,a")
	res = enough.Apply(atLeast3)
	require.True(t, res.IsOk())
	require.Equal(t, []any{"a", "a", "a"}, res.Value)
}

func TestNewMinJoinablePanicsOnNonPositiveMin(t *testing.T) {
	el := rule.NewSubstring("a", false, "a")
	sep := rule.NewSubstring(",", false, ",")

	require.Panics(t, func() {
		rule.NewMinJoinable(el, sep, 0, "L0")
	})
}

func TestJoinableSingleElementNoSeparator(t *testing.T) {
	el := rule.NewSubstring("a", false, "a")
	sep := rule.NewSubstring(",", false, ",")
	joined := rule.NewJoinable(el, sep, "L")

	s := newStream("a")
	res := s.Apply(joined)
	require.True(t, res.IsOk())
	require.Equal(t, []any{"a"}, res.Value)
}

func TestJoinableFailsWhenFirstElementMissing(t *testing.T) {
	el := rule.NewSubstring("a", false, "a")
	sep := rule.NewSubstring(",", false, ",")
	joined := rule.NewJoinable(el, sep, "L")

	s := newStream("b")
	res := s.Apply(joined)
	require.False(t, res.IsOk())
	require.Equal(t, 0, s.Cursor())
}

package rule_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abstractparser/pegc/internal/rule"
	"github.com/abstractparser/pegc/internal/stream"
)

func TestSubstringTerminalCaseSensitivity(t *testing.T) {
	sensitive := rule.NewSubstring("foo", false, "foo")

	s := newStream("FOO")
	res := s.Apply(sensitive)
	require.False(t, res.IsOk())
	require.Equal(t, 0, s.Cursor())

	insensitive := rule.NewSubstring("foo", true, "foo_ci")
	s2 := newStream("FOO")
	res = s2.Apply(insensitive)
	require.True(t, res.IsOk())
	require.Equal(t, 3, s2.Cursor())
}

func TestSubstringTerminalEndOfStream(t *testing.T) {
	lit := rule.NewSubstring("hello", false, "hello")
	s := newStream("hel")
	res := s.Apply(lit)
	require.False(t, res.IsOk())
	require.Equal(t, rule.KindEndStream, res.Err.Kind)
}

func TestRegexTerminalSharesCompiledPattern(t *testing.T) {
	first := rule.NewRegex(`[a-z]+`, false, "word")
	second := rule.NewRegex(`[a-z]+`, false, "word")

	s1 := newStream("hello world")
	res1 := s1.Apply(first)
	require.True(t, res1.IsOk())
	require.Equal(t, "hello", res1.Value)

	s2 := newStream("goodbye")
	res2 := s2.Apply(second)
	require.True(t, res2.IsOk())
	require.Equal(t, "goodbye", res2.Value)
}

func TestParsedTerminalConversion(t *testing.T) {
	digits := rule.NewRegex(`[0-9]+`, false, "digits")
	asInt := rule.NewParsed(digits, func(raw string) (any, bool) {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, false
		}
		return n, true
	}, "int")

	s := newStream("42abc")
	res := s.Apply(asInt)
	require.True(t, res.IsOk())
	require.Equal(t, 42, res.Value)
	require.Equal(t, 2, s.Cursor())
}

func TestParsedTerminalRejection(t *testing.T) {
	digits := rule.NewRegex(`[0-9]+`, false, "digits")
	smallInt := rule.NewParsed(digits, func(raw string) (any, bool) {
		n, err := strconv.Atoi(raw)
		if err != nil || n > 9 {
			return nil, false
		}
		return n, true
	}, "small_int")

	s := newStream("42")
	res := s.Apply(smallInt)
	require.False(t, res.IsOk())
	require.Equal(t, 0, s.Cursor())
}

func TestSelfTerminalConsumesAnyItem(t *testing.T) {
	self := rule.NewSelf("any")
	s := newStream("x")
	res := s.Apply(self)
	require.True(t, res.IsOk())
	require.Equal(t, 'x', res.Value)
	require.Equal(t, 1, s.Cursor())

	empty := newStream("")
	res = empty.Apply(self)
	require.False(t, res.IsOk())
	require.Equal(t, rule.KindEndStream, res.Err.Kind)
}

func TestEqualsTerminalOverTokenStream(t *testing.T) {
	tokens := stream.NewTokens([]string{"if", "(", "x", ")"})
	s := rule.NewTokenStream(tokens)

	ifTok := rule.NewEquals("if", "if")
	res := s.Apply(ifTok)
	require.True(t, res.IsOk())
	require.Equal(t, "if", res.Value)
	require.Equal(t, 1, s.Cursor())

	openParen := rule.NewEquals("(", "lparen")
	res = s.Apply(openParen)
	require.True(t, res.IsOk())

	mismatch := rule.NewEquals(")", "rparen")
	res = s.Apply(mismatch)
	require.False(t, res.IsOk())
	require.Equal(t, 2, s.Cursor())
}

package emitter_test

import (
	"testing"

	"github.com/abstractparser/pegc/internal/emitter"
	"github.com/abstractparser/pegc/internal/grammar"
	"github.com/abstractparser/pegc/internal/rule"
	"github.com/abstractparser/pegc/internal/stream"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, src string) *emitter.Grammar {
	t.Helper()
	f, errs := grammar.ParseFile(src)
	require.False(t, errs.HasErrors(), errs.String())
	g, err := emitter.Build(f)
	require.NoError(t, err)
	return g
}

func newCharStream(src string) *rule.Stream {
	return rule.NewCharStream(stream.New(src))
}

func TestBuildSimpleSequenceRule(t *testing.T) {
	g := compile(t, `
a = "a"s
b = "b"s
AB = a b
`)
	r, ok := g.Rule("AB")
	require.True(t, ok)

	v, perr := rule.FullParse(newCharStream("ab"), r)
	require.Nil(t, perr)
	require.Equal(t, []any{"a", "b"}, v)
}

func TestBuildChoiceEnumRule(t *testing.T) {
	g := compile(t, `
a = "a"s
b = "b"s
AB {
	First(a)
	Second(b)
}
`)
	r, ok := g.Rule("AB")
	require.True(t, ok)

	v, perr := rule.FullParse(newCharStream("b"), r)
	require.Nil(t, perr)
	require.Equal(t, rule.EnumVariant{Variant: "Second", Value: "b"}, v)
}

// A choice-enum whose two variants happen to produce the same kind of
// value (both strings, here) must still be distinguishable at runtime —
// the whole point of tagging the result with its variant name.
func TestBuildChoiceEnumRuleDistinguishesStructurallyIdenticalVariants(t *testing.T) {
	g := compile(t, `
a = "a"s
b = "b"s
AB {
	First(a)
	Second(b)
}
`)
	r, ok := g.Rule("AB")
	require.True(t, ok)

	v, perr := rule.FullParse(newCharStream("a"), r)
	require.Nil(t, perr)
	require.Equal(t, rule.EnumVariant{Variant: "First", Value: "a"}, v)
}

func TestBuildStructRuleWithIgnoredField(t *testing.T) {
	g := compile(t, `
a = "a"s
comma = ","s
b = "b"s
Pair ( a #[ignore] comma b )
`)
	r, ok := g.Rule("Pair")
	require.True(t, ok)

	v, perr := rule.FullParse(newCharStream("a,b"), r)
	require.Nil(t, perr)
	require.Equal(t, []any{"a", "b"}, v, "the ignored comma must not appear in the output")
}

// TestBuildRecursiveGrammarBalancedParens mirrors spec §8.2's general
// "rules reference each other, including recursively" requirement,
// expressed through the grammar-DSL front end rather than a hand-built
// rule.Rec tree: balanced parens, `P = "(" P? ")"`.
func TestBuildRecursiveGrammarBalancedParens(t *testing.T) {
	g := compile(t, `
open = "("s
close = ")"s
P = open P? close
`)
	r, ok := g.Rule("P")
	require.True(t, ok)

	v, perr := rule.FullParse(newCharStream("((()))"), r)
	require.Nil(t, perr)
	require.NotNil(t, v)

	_, perr = rule.FullParse(newCharStream("(()"), r)
	require.NotNil(t, perr, "unbalanced input must fail")
}

func TestBuildQuantifierOverrunOnMaxBound(t *testing.T) {
	g := compile(t, `
a = "a"s
R = a{2,3}
`)
	r, ok := g.Rule("R")
	require.True(t, ok)

	_, perr := rule.FullParse(newCharStream("aaaa"), r)
	require.NotNil(t, perr, "four a's must fail a bounded {2,3} rule even with overrun check")

	v, perr := rule.FullParse(newCharStream("aaa"), r)
	require.Nil(t, perr)
	require.Equal(t, []any{"a", "a", "a"}, v)
}

func TestBuildExactCountAllowsResidueUnderPlainParse(t *testing.T) {
	g := compile(t, `
a = "a"s
R = a{3}
`)
	r, ok := g.Rule("R")
	require.True(t, ok)

	v, perr := rule.Parse(newCharStream("aaaa"), r)
	require.Nil(t, perr)
	require.Equal(t, []any{"a", "a", "a"}, v)

	_, perr = rule.FullParse(newCharStream("aaaa"), r)
	require.NotNil(t, perr, "full_parse must reject the leftover a")
}

func TestBuildJoinedRepeat(t *testing.T) {
	g := compile(t, `
a = "a"s
comma = ","s
L = a ** comma
`)
	r, ok := g.Rule("L")
	require.True(t, ok)

	v, perr := rule.FullParse(newCharStream("a,a,a"), r)
	require.Nil(t, perr)
	require.Equal(t, []any{"a", "a", "a"}, v)
}

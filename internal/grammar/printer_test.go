package grammar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatRoundTripsSimpleGrammar(t *testing.T) {
	src := `a = "a"s
b = "b"s
AB = a b / a
R = a*
`
	f, errs := ParseFile(src)
	require.False(t, errs.HasErrors(), errs.String())

	out := Format(f)
	f2, errs2 := ParseFile(out)
	require.False(t, errs2.HasErrors(), errs2.String())
	require.Len(t, f2.Rules, len(f.Rules))

	ab := f2.Rules[2]
	choice, ok := ab.Body.(*Choice)
	require.True(t, ok)
	require.Len(t, choice.Alternatives, 2)
}

func TestFormatStructAndEnumHeads(t *testing.T) {
	src := `a = "a"s
b = "b"s
Pair {
	left: a,
	right: b
}
AB {
	First(a)
	Second(b)
}
`
	f, errs := ParseFile(src)
	require.False(t, errs.HasErrors(), errs.String())
	out := Format(f)

	f2, errs2 := ParseFile(out)
	require.False(t, errs2.HasErrors(), errs2.String())
	require.Equal(t, ShapeStruct, f2.Rules[2].Shape)
	require.Equal(t, ShapeChoiceEnum, f2.Rules[3].Shape)
	require.Equal(t, "left", f2.Rules[2].Fields[0].Name)
	require.Equal(t, "First", f2.Rules[3].Variants[0].Name)
}

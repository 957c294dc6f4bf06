package grammar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPositionString(t *testing.T) {
	require.Equal(t, "grammar.peg:10:5", Position{File: "grammar.peg", Line: 10, Column: 5}.String())
	require.Equal(t, "10:5", Position{Line: 10, Column: 5}.String())
	require.Equal(t, "1:1", Position{Line: 1, Column: 1}.String())
}

func TestCompileErrorError(t *testing.T) {
	err := &CompileError{
		Pos:     Position{File: "grammar.peg", Line: 10, Column: 5},
		Message: "unexpected token",
		Phase:   "lex",
	}
	require.Equal(t, "[lex] grammar.peg:10:5: unexpected token", err.Error())
}

func TestErrorList(t *testing.T) {
	el := NewErrorList()
	require.NotNil(t, el)
	require.Empty(t, el.Errors)
	require.False(t, el.HasErrors())

	pos := Position{Line: 5, Column: 10}
	el.Add(pos, "parse", "expected ')'")
	require.True(t, el.HasErrors())
	require.Len(t, el.Errors, 1)
	require.Equal(t, pos, el.Errors[0].Pos)
	require.Equal(t, "parse", el.Errors[0].Phase)

	el.Add(Position{Line: 3, Column: 2}, "lex", "unexpected character")
	require.Contains(t, el.String(), "[parse] 5:10: expected ')'")
	require.Contains(t, el.String(), "[lex] 3:2: unexpected character")
}

func TestErrorListStringEmpty(t *testing.T) {
	require.Equal(t, "", NewErrorList().String())
}

package grammar

import (
	"testing"

	"github.com/abstractparser/pegc/internal/grammar/token"
	"github.com/stretchr/testify/require"
)

func collectTokens(src string) []token.Token {
	l := newLexer(src)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func TestLexerOperatorsAndDelimiters(t *testing.T) {
	toks := collectTokens(`= ! ? * ** + / ( ) { } [ ] < > , : #`)
	want := []token.Type{
		token.ASSIGN, token.BANG, token.QMARK, token.STAR, token.DSTAR,
		token.PLUS, token.SLASH, token.LPAREN, token.RPAREN, token.LBRACE,
		token.RBRACE, token.LBRACKET, token.RBRACKET, token.LANGLE,
		token.RANGLE, token.COMMA, token.COLON, token.HASH, token.EOF,
	}
	require.Len(t, toks, len(want))
	for i, w := range want {
		require.Equal(t, w, toks[i].Type, "token %d", i)
	}
}

func TestLexerIdentifiersAndKeywords(t *testing.T) {
	toks := collectTokens(`foo_bar unit Baz123`)
	require.Equal(t, token.IDENT, toks[0].Type)
	require.Equal(t, "foo_bar", toks[0].Literal)
	require.Equal(t, token.UNIT, toks[1].Type)
	require.Equal(t, token.IDENT, toks[2].Type)
}

func TestLexerNumbers(t *testing.T) {
	toks := collectTokens(`0 42 1000`)
	for i, want := range []string{"0", "42", "1000"} {
		require.Equal(t, token.NUMBER, toks[i].Type)
		require.Equal(t, want, toks[i].Literal)
	}
}

func TestLexerDistinguishesSubstringFromRegexLiterals(t *testing.T) {
	toks := collectTokens(`"abc" "abc"s`)
	require.Equal(t, token.STRINGLIT, toks[0].Type)
	require.Equal(t, "abc", toks[0].Literal)
	require.Equal(t, token.SUBSTRINGLIT, toks[1].Type)
	require.Equal(t, "abc", toks[1].Literal, "the trailing marker must not leak into the literal text")
}

func TestLexerStringLiteralEndingInLetterSIsNotMistakenForMarker(t *testing.T) {
	// "...s" with a following identifier character means the quoted text
	// itself ends in something that merely looks like the marker; only a
	// bare trailing s not immediately followed by another identifier
	// character is the substring marker.
	toks := collectTokens(`"regex"sx`)
	require.Equal(t, token.STRINGLIT, toks[0].Type)
	require.Equal(t, "regex", toks[0].Literal)
	require.Equal(t, token.IDENT, toks[1].Type)
	require.Equal(t, "sx", toks[1].Literal)
}

func TestLexerSkipsLineComments(t *testing.T) {
	src := "a // this is a comment\nb"
	toks := collectTokens(src)
	require.Equal(t, "a", toks[0].Literal)
	require.Equal(t, "b", toks[1].Literal)
}

func TestLexerTracksLineAndColumn(t *testing.T) {
	toks := collectTokens("a\nb")
	require.Equal(t, 1, toks[0].Pos.Line)
	require.Equal(t, 2, toks[1].Pos.Line)
}

func TestLexerIllegalCharacter(t *testing.T) {
	toks := collectTokens(`@`)
	require.Equal(t, token.ILLEGAL, toks[0].Type)
}

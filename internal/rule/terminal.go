package rule

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// SubstringTerminal matches a fixed literal against the stream's
// remaining text, advancing the cursor past it on success (spec §3.1,
// §4.5: "a string literal consumes exactly that text at the cursor, or
// fails without consuming").
type SubstringTerminal struct {
	Base
	Literal    string
	IgnoreCase bool
	name       string
}

// NewSubstring builds a literal-text terminal. name is used only in
// diagnostics; pass "" to fall back to a quoted form of the literal.
func NewSubstring(literal string, ignoreCase bool, name string) *SubstringTerminal {
	return &SubstringTerminal{Base: newBase(), Literal: literal, IgnoreCase: ignoreCase, name: name}
}

func (t *SubstringTerminal) Transfer(s *Stream) Result {
	cs, ok := s.Chars()
	if !ok {
		return Fail(TokenMismatch(t.String(), s.Cursor(), "substring terminal requires a character stream"))
	}
	pos := s.Cursor()
	tail := cs.Tail()
	if len(tail) < len(t.Literal) {
		return Fail(EndStream(t.String(), pos))
	}
	candidate := tail[:len(t.Literal)]
	matched := candidate == t.Literal
	if !matched && t.IgnoreCase {
		matched = strings.EqualFold(candidate, t.Literal)
	}
	if !matched {
		return Fail(TokenMismatch(t.String(), pos, fmt.Sprintf("expected %q", t.Literal)))
	}
	cs.Restore(pos + len(t.Literal))
	return Ok(t.Literal)
}

func (t *SubstringTerminal) String() string {
	if t.name != "" {
		return t.name
	}
	return fmt.Sprintf("%q", t.Literal)
}

// RegexTerminal matches a dlclark/regexp2 pattern anchored at the
// cursor. regexp2 rather than Go's stdlib regexp is required because
// spec §4.5 calls for lookaround and backreference support, which RE2
// deliberately excludes.
type RegexTerminal struct {
	Base
	Pattern    string
	IgnoreCase bool
	name       string

	compiled *regexp2.Regexp
}

// NewRegex builds a pattern terminal. Compilation happens lazily on
// first Transfer, against the process-wide compiled-pattern cache, so
// that building a RegexTerminal never itself fails.
func NewRegex(pattern string, ignoreCase bool, name string) *RegexTerminal {
	return &RegexTerminal{Base: newBase(), Pattern: pattern, IgnoreCase: ignoreCase, name: name}
}

func (t *RegexTerminal) Transfer(s *Stream) Result {
	cs, ok := s.Chars()
	if !ok {
		return Fail(TokenMismatch(t.String(), s.Cursor(), "regex terminal requires a character stream"))
	}
	if t.compiled == nil {
		re, err := compileAnchored(t.Pattern, t.IgnoreCase)
		if err != nil {
			return Fail(TokenMismatch(t.String(), s.Cursor(), fmt.Sprintf("invalid pattern: %v", err)))
		}
		t.compiled = re
	}

	pos := s.Cursor()
	tail := cs.Tail()
	m, err := t.compiled.FindStringMatch(tail)
	if err != nil || m == nil || m.Index != 0 {
		return Fail(TokenMismatch(t.String(), pos, fmt.Sprintf("no match for /%s/", t.Pattern)))
	}
	matched := m.String()
	if len(matched) == 0 {
		return Fail(TokenMismatch(t.String(), pos, fmt.Sprintf("zero-width match rejected for /%s/", t.Pattern)))
	}
	cs.Restore(pos + len(matched))
	return Ok(matched)
}

func (t *RegexTerminal) String() string {
	if t.name != "" {
		return t.name
	}
	return fmt.Sprintf("/%s/", t.Pattern)
}

// ParsedFunc converts a matched terminal's raw text into a domain value,
// or reports the text unusable by returning ok=false.
type ParsedFunc func(raw string) (value any, ok bool)

// Parsed wraps an inner terminal and re-maps its output through conv,
// failing the whole rule if conv rejects the raw match (spec §3.1:
// "parsed terminals post-process a matched literal or pattern into a
// typed value, and may themselves reject the text").
type Parsed struct {
	Base
	Inner Rule
	Conv  ParsedFunc
	name  string
}

// NewParsed wraps inner (expected to be a SubstringTerminal or
// RegexTerminal) with a post-match conversion.
func NewParsed(inner Rule, conv ParsedFunc, name string) *Parsed {
	return &Parsed{Base: newBase(), Inner: inner, Conv: conv, name: name}
}

func (p *Parsed) Transfer(s *Stream) Result {
	res := s.CachedApply(p.Inner)
	if !res.IsOk() {
		return res
	}
	raw, ok := res.Value.(string)
	if !ok {
		return Fail(TokenMismatch(p.String(), s.Cursor(), "parsed terminal requires a string-producing inner rule"))
	}
	value, ok := p.Conv(raw)
	if !ok {
		return Fail(TokenMismatch(p.String(), s.Cursor(), fmt.Sprintf("rejected parsed value for %q", raw)))
	}
	return Ok(value)
}

func (p *Parsed) String() string {
	if p.name != "" {
		return p.name
	}
	return fmt.Sprintf("parsed(%s)", p.Inner)
}

// Self matches a single stream item unconditionally, for token streams
// whose items are pre-classified by an outer lexer rather than matched
// by text (spec §3.1: "a self terminal consumes the next item verbatim
// and succeeds unless the stream is exhausted").
type Self struct {
	Base
	name string
}

// NewSelf builds a terminal that accepts whatever item is next.
func NewSelf(name string) *Self {
	return &Self{Base: newBase(), name: name}
}

func (t *Self) Transfer(s *Stream) Result {
	pos := s.Cursor()
	item, ok := s.Src.Next()
	if !ok {
		return Fail(EndStream(t.String(), pos))
	}
	return Ok(item)
}

func (t *Self) String() string {
	if t.name != "" {
		return t.name
	}
	return "self"
}

// EqualsTerminal matches the next token stream item against a fixed
// value by equality, the token-stream analogue of SubstringTerminal
// (spec §3.1, §4.1: generic TokenStream[T] terminals compare by ==
// rather than by text).
type EqualsTerminal struct {
	Base
	Want any
	name string
}

// NewEquals builds a token terminal that matches items equal to want.
func NewEquals(want any, name string) *EqualsTerminal {
	return &EqualsTerminal{Base: newBase(), Want: want, name: name}
}

func (t *EqualsTerminal) Transfer(s *Stream) Result {
	pos := s.Cursor()
	item, ok := s.Src.Next()
	if !ok {
		return Fail(EndStream(t.String(), pos))
	}
	if item != t.Want {
		return Fail(TokenMismatch(t.String(), pos, fmt.Sprintf("expected %v, got %v", t.Want, item)))
	}
	return Ok(item)
}

func (t *EqualsTerminal) String() string {
	if t.name != "" {
		return t.name
	}
	return fmt.Sprintf("equals(%v)", t.Want)
}

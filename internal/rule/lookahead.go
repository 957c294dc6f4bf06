package rule

import "fmt"

// PositiveLookahead never advances the cursor and never fails: it
// reports Some(value) if its guarded rule matched, None otherwise,
// always as Ok (spec §4.2.6: "Succeeds with Some(o) if R matched, None
// otherwise (but still Ok). Promotes iff matched."). Promotion mirrors
// whether the guard matched, for packrat-cache consistency with the
// inner rule's own outcome, even though the cursor is rewound inside
// Transfer regardless.
type PositiveLookahead struct {
	Base
	Inner Rule
	name  string

	matched bool
}

// NewPositiveLookahead builds a zero-width positive guard over inner.
func NewPositiveLookahead(inner Rule, name string) *PositiveLookahead {
	return &PositiveLookahead{Base: newBase(), Inner: inner, name: name}
}

func (l *PositiveLookahead) Promotes(Result) bool { return l.matched }

func (l *PositiveLookahead) Transfer(s *Stream) Result {
	before := s.Cursor()
	res := s.CachedApply(l.Inner)
	s.Src.Restore(before)
	l.matched = res.IsOk()
	if l.matched {
		return Ok(Some{res.Value})
	}
	return Ok(None{})
}

func (l *PositiveLookahead) String() string {
	if l.name != "" {
		return l.name
	}
	return fmt.Sprintf("&%s", l.Inner)
}

// NegativeLookahead never advances the cursor and never promotes
// (spec §4.2.7: "Never promotes (cursor is restored by the kernel)"):
// it succeeds with unit iff its guarded rule fails, and fails with
// LookaheadMatched iff the guarded rule succeeds.
type NegativeLookahead struct {
	Base
	Inner Rule
	name  string
}

// NewNegativeLookahead builds a zero-width negative guard over inner.
func NewNegativeLookahead(inner Rule, name string) *NegativeLookahead {
	return &NegativeLookahead{Base: newBase(), Inner: inner, name: name}
}

func (l *NegativeLookahead) Promotes(Result) bool { return false }

func (l *NegativeLookahead) Transfer(s *Stream) Result {
	before := s.Cursor()
	res := s.CachedApply(l.Inner)
	s.Src.Restore(before)
	if res.IsOk() {
		return Fail(LookaheadMatched(l.String(), before))
	}
	return Ok(struct{}{})
}

func (l *NegativeLookahead) String() string {
	if l.name != "" {
		return l.name
	}
	return fmt.Sprintf("!%s", l.Inner)
}

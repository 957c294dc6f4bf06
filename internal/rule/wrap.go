package rule

import "fmt"

// Wrap is sugar for a three-element sequence whose outer two elements'
// values are discarded: Start Body End, yielding only Body's value
// (spec §3.2: "wrap(start, body, end) is shorthand for a sequence that
// keeps only the middle value", the common case of delimiters like
// parens or brackets around a payload rule).
type Wrap struct {
	Base
	Start Rule
	Body  Rule
	End   Rule
	name  string
}

// NewWrap builds a wrap(start, body, end) rule.
func NewWrap(start, body, end Rule, name string) *Wrap {
	return &Wrap{Base: newBase(), Start: start, Body: body, End: end, name: name}
}

func (w *Wrap) Transfer(s *Stream) Result {
	pos := s.Cursor()

	startRes := s.CachedApply(w.Start)
	if !startRes.IsOk() {
		return Fail(SeqPosition(w.String(), pos, 0, startRes.Err))
	}

	bodyRes := s.CachedApply(w.Body)
	if !bodyRes.IsOk() {
		return Fail(SeqPosition(w.String(), pos, 1, bodyRes.Err))
	}

	endRes := s.CachedApply(w.End)
	if !endRes.IsOk() {
		return Fail(SeqPosition(w.String(), pos, 2, endRes.Err))
	}

	return Ok(bodyRes.Value)
}

func (w *Wrap) String() string {
	if w.name != "" {
		return w.name
	}
	return fmt.Sprintf("wrap(%s, %s, %s)", w.Start, w.Body, w.End)
}

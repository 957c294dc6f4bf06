package rule

import "fmt"

// Joinable matches its element rule, then zero or more (separator,
// element) pairs, threading through the separator's own cursor
// discipline between each element (spec §3.2, §9: "E ** sep matches one
// or more E separated by sep; only the unbounded form is supported — a
// bounded joined-repeat was considered and rejected since a separator
// makes a fixed count ambiguous between 'count of elements' and 'count
// of pairs'"). Its value is the slice of element values only; separator
// values are discarded.
type Joinable struct {
	Base
	Element   Rule
	Separator Rule
	name      string
}

// NewJoinable builds an unbounded joined-repeat: element (separator
// element)*.
func NewJoinable(element, separator Rule, name string) *Joinable {
	return &Joinable{Base: newBase(), Element: element, Separator: separator, name: name}
}

func (j *Joinable) Transfer(s *Stream) Result {
	pos := s.Cursor()
	first := s.CachedApply(j.Element)
	if !first.IsOk() {
		return Fail(first.Err)
	}
	values := []any{first.Value}

	for {
		before := s.Cursor()
		sepRes := s.CachedApply(j.Separator)
		if !sepRes.IsOk() {
			s.Src.Restore(before)
			break
		}
		elRes := s.CachedApply(j.Element)
		if !elRes.IsOk() {
			s.Src.Restore(before)
			break
		}
		values = append(values, elRes.Value)
	}

	_ = pos
	return Ok(values)
}

func (j *Joinable) String() string {
	if j.name != "" {
		return j.name
	}
	return fmt.Sprintf("%s ** %s", j.Element, j.Separator)
}

// MinJoinable is Joinable with a lower bound on the number of elements
// matched. N must be at least 1 — a joined-repeat with a zero-or-more
// lower bound collapses to the plain Joinable case and isn't a distinct
// construct, so NewMinJoinable panics on N < 1 rather than accept a
// meaningless bound (spec §9, resolved open question on MinJoinable's
// domain).
type MinJoinable struct {
	Base
	Inner *Joinable
	Min   int
	name  string
}

// NewMinJoinable builds a joined-repeat requiring at least min elements.
// Panics if min < 1.
func NewMinJoinable(element, separator Rule, min int, name string) *MinJoinable {
	if min < 1 {
		panic(fmt.Sprintf("rule: MinJoinable requires min >= 1, got %d", min))
	}
	return &MinJoinable{
		Base:  newBase(),
		Inner: NewJoinable(element, separator, ""),
		Min:   min,
		name:  name,
	}
}

func (m *MinJoinable) Transfer(s *Stream) Result {
	pos := s.Cursor()
	res := s.CachedApply(m.Inner)
	if !res.IsOk() {
		return res
	}
	values := res.Value.([]any)
	if len(values) < m.Min {
		return Fail(QuantBound(m.String(), pos, fmt.Sprintf("matched %d elements, need at least %d", len(values), m.Min)))
	}
	return Ok(values)
}

func (m *MinJoinable) String() string {
	if m.name != "" {
		return m.name
	}
	return fmt.Sprintf("%s{%d,}", m.Inner, m.Min)
}

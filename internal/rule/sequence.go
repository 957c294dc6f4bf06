package rule

import "fmt"

// Sequence applies each element rule in order, failing at the first
// element that fails and reporting which position failed (spec §3.2:
// "a sequence of N rules succeeds iff every element succeeds in order;
// its value is the tuple of element values"). On failure the whole
// sequence does not promote, so Stream.Apply rewinds to the sequence's
// entry cursor regardless of how many elements already advanced.
type Sequence struct {
	Base
	Elements []Rule
	name     string
}

// NewSequence builds an N-ary sequence. name is used in diagnostics and
// in packrat display; pass "" for an auto-generated one.
func NewSequence(name string, elements ...Rule) *Sequence {
	return &Sequence{Base: newBase(), Elements: elements, name: name}
}

func (sq *Sequence) Transfer(s *Stream) Result {
	values := make([]any, 0, len(sq.Elements))
	pos := s.Cursor()
	for i, el := range sq.Elements {
		res := s.CachedApply(el)
		if !res.IsOk() {
			return Fail(SeqPosition(sq.String(), pos, i, res.Err))
		}
		values = append(values, res.Value)
	}
	return Ok(values)
}

func (sq *Sequence) String() string {
	if sq.name != "" {
		return sq.name
	}
	return fmt.Sprintf("sequence(%d)", len(sq.Elements))
}

// FilteredSequence is a Sequence whose output omits the values at
// indices marked in Ignore, while still requiring every element
// (ignored or not) to match and still counting ignored elements toward
// SeqPosition diagnostics (spec §3.5, §4.4: "#[ignore]-marked fields
// are parsed ... but omitted from the output struct"). It is the
// emitter's realization of a struct-shaped rule's positional or named
// fields, not a distinct kernel primitive the grammar dialect names
// directly.
type FilteredSequence struct {
	Base
	Elements []Rule
	Ignore   []bool
	name     string
}

// NewFilteredSequence builds a sequence that parses every element but
// reports only the non-ignored ones in its output. len(ignore) must
// equal len(elements); a nil ignore keeps every element.
func NewFilteredSequence(name string, elements []Rule, ignore []bool) *FilteredSequence {
	return &FilteredSequence{Base: newBase(), Elements: elements, Ignore: ignore, name: name}
}

func (sq *FilteredSequence) Transfer(s *Stream) Result {
	values := make([]any, 0, len(sq.Elements))
	pos := s.Cursor()
	for i, el := range sq.Elements {
		res := s.CachedApply(el)
		if !res.IsOk() {
			return Fail(SeqPosition(sq.String(), pos, i, res.Err))
		}
		if sq.Ignore == nil || !sq.Ignore[i] {
			values = append(values, res.Value)
		}
	}
	return Ok(values)
}

func (sq *FilteredSequence) String() string {
	if sq.name != "" {
		return sq.name
	}
	return fmt.Sprintf("filtered_sequence(%d)", len(sq.Elements))
}

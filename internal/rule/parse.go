package rule

import "github.com/abstractparser/pegc/internal/stream"

// ParseError is the top-level failure shape for both Parse and
// FullParse (spec §6.3): Result carries whatever the rule itself
// produced — Ok if the rule matched but left residue under FullParse,
// or the rule's own Err otherwise — and Residue is the unconsumed tail,
// read back from the stream after the attempt settles.
type ParseError struct {
	Result  Result
	Residue string
}

func (e *ParseError) Error() string {
	if e.Result.IsOk() {
		return Residue(0, e.Residue).Error()
	}
	return e.Result.Err.Error()
}

// Parse runs r against s from its current cursor and returns the rule's
// value on success, or a *ParseError wrapping the failure and whatever
// of the input remains unconsumed (spec §6.3). A successful match that
// leaves residue is not itself an error here; callers that require full
// consumption want FullParse instead.
func Parse(s *Stream, r Rule) (any, *ParseError) {
	res := s.CachedApply(r)
	if !res.IsOk() {
		return nil, &ParseError{Result: res, Residue: tailOf(s)}
	}
	return res.Value, nil
}

// FullParse is Parse with an added post-condition: the residue must be
// empty (spec §6.4). A rule that matched but left input unconsumed
// reports a *ParseError whose Result is the partial Ok, distinguishing
// "didn't match" from "matched, but not all of it".
func FullParse(s *Stream, r Rule) (any, *ParseError) {
	res := s.CachedApply(r)
	residue := tailOf(s)
	if !res.IsOk() {
		return nil, &ParseError{Result: res, Residue: residue}
	}
	if residue != "" {
		return nil, &ParseError{Result: res, Residue: residue}
	}
	return res.Value, nil
}

// tailOf reads the unconsumed suffix from a char-backed Stream; for a
// token stream (which has no contiguous textual tail) it reports the
// tokenResidueMarker placeholder.
func tailOf(s *Stream) string {
	if cs, ok := s.Chars(); ok {
		return cs.Tail()
	}
	return tokenResidueMarker(s.Src)
}

// tokenResidueMarker reports whether a generic token Source is exhausted,
// rendered as either "" (fully consumed) or a placeholder noting the
// stream kind, since token items don't concatenate into a string the way
// characters do.
func tokenResidueMarker(src stream.Source) string {
	if _, ok := src.PeekN(0); !ok {
		return ""
	}
	return "<unconsumed tokens>"
}

package rule

import "github.com/abstractparser/pegc/internal/stream"

// Stream is the kernel's view of an input: the underlying cursor source
// plus the packrat cache attached to it for the lifetime of one parse.
// It is the "universal entry point" the spec's input-stream contract
// describes: every rule invocation that wants cursor discipline goes
// through Apply (or CachedApply), never calls another rule's Transfer
// directly.
type Stream struct {
	Src   stream.Source
	chars stream.CharSource // non-nil iff Src is a CharSource
	cache *Cache
}

// NewCharStream builds a Stream over a character source, with packrat
// memoization enabled.
func NewCharStream(src stream.CharSource) *Stream {
	return &Stream{Src: src, chars: src, cache: newCache()}
}

// NewTokenStream builds a Stream over an arbitrary token source. Terminal
// rules that require CharSource (substring/regex literals) fail with a
// token-mismatch failure if used against it; EqualsTerminal is the token
// stream's terminal instead.
func NewTokenStream(src stream.Source) *Stream {
	return &Stream{Src: src, cache: newCache()}
}

// Chars returns the underlying CharSource, or false if this Stream was
// built over a generic token source.
func (s *Stream) Chars() (stream.CharSource, bool) {
	return s.chars, s.chars != nil
}

// Cursor returns the current cursor position.
func (s *Stream) Cursor() int { return s.Src.Cursor() }

// Apply is the cursor-discipline contract: it records the cursor, runs
// r.Transfer, and restores the cursor iff the result didn't promote.
// Rule authors never need to save/restore the cursor themselves; they
// only decide, through Promotes, whether a result counts as an advance.
func (s *Stream) Apply(r Rule) Result {
	before := s.Src.Cursor()
	res := r.Transfer(s)
	if !r.Promotes(res) {
		s.Src.Restore(before)
	}
	return res
}

// CachedApply is Apply with packrat memoization: a hit restores the
// recorded post-cursor (if the recorded attempt promoted) and returns
// the recorded result without re-running Transfer; a miss runs Apply and
// records the outcome, along with the post-cursor iff it promoted.
func (s *Stream) CachedApply(r Rule) Result {
	if s.cache == nil || !r.Cacheable() {
		return s.Apply(r)
	}
	pos := s.Src.Cursor()
	key := cacheKey{pos: pos, ruleID: r.ID()}
	if entry, ok := s.cache.lookup(key); ok {
		if entry.promoted {
			s.Src.Restore(entry.cursorAfter)
		}
		return entry.result
	}

	res := s.Apply(r)
	promoted := r.Promotes(res)
	after := s.Src.Cursor()
	s.cache.store(key, cacheEntry{result: res, cursorAfter: after, promoted: promoted})
	return res
}

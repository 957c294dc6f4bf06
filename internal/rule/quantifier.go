package rule

import "fmt"

// Optional makes its inner rule always succeed: Some(value) if the inner
// rule matched, None otherwise, and the cursor always advances exactly
// as far as the inner rule actually consumed (spec §3.2: "optional never
// fails; on inner failure its value is none and the cursor does not
// move"). Promotes unconditionally returns true — "matched, even if that
// means none" — because an optional's non-match is itself a successful
// outcome, not a failure to roll back from.
type Optional struct {
	Base
	Inner Rule
	name  string
}

// NewOptional wraps inner as an always-succeeding optional.
func NewOptional(inner Rule, name string) *Optional {
	return &Optional{Base: newBase(), Inner: inner, name: name}
}

func (o *Optional) Promotes(Result) bool { return true }

func (o *Optional) Transfer(s *Stream) Result {
	res := s.CachedApply(o.Inner)
	if res.IsOk() {
		return Ok(Some{res.Value})
	}
	return Ok(None{})
}

func (o *Optional) String() string {
	if o.name != "" {
		return o.name
	}
	return fmt.Sprintf("optional(%s)", o.Inner)
}

// Some and None are the two inhabitants of an Optional's value, standing
// in for the source's option type (spec §3.2, glossary "Option").
type Some struct{ Value any }
type None struct{}

// quantKind distinguishes the five repetition shapes the grammar
// dialect recognizes (spec §4.2.8). They share the same greedy-collect
// loop but differ in which bound violations are errors and whether
// reaching the upper bound itself must be validated against over-match.
type quantKind int

const (
	quantRepeat quantKind = iota // *      : 0+, no bound checks
	quantMin                     // {n,}   : n+, LessThanMin only
	quantMax                     // {,m}   : 0..m, fails if more than m available
	quantMinMax                  // {n,m}  : n..m, fails if more than m available
	quantCount                   // {k}    : exactly k greedily, no over-match check
)

// Repetition applies its inner rule greedily, collecting every match
// into a slice, then validates the count against its quantifier kind
// (spec §3.2, §4.2.8). Max and MinMax additionally probe for one more
// match past their upper bound and fail if it succeeds — "PEG's greedy
// default would silently truncate; the explicit check exposes grammar
// mistakes" — while Count simply stops at k and lets any surplus become
// ordinary residue (spec §8.2 S4: `a{3}` on `"aaaa"` succeeds with
// residue "a", it does not fail).
type Repetition struct {
	Base
	Inner Rule
	Min   int
	Max   int // only meaningful for quantMax, quantMinMax, quantCount
	kind  quantKind
	name  string
}

// Repeat matches inner zero or more times, unbounded.
func Repeat(inner Rule, name string) *Repetition {
	return &Repetition{Base: newBase(), Inner: inner, kind: quantRepeat, name: name}
}

// RepeatMin matches inner at least min times, unbounded above.
func RepeatMin(inner Rule, min int, name string) *Repetition {
	return &Repetition{Base: newBase(), Inner: inner, Min: min, kind: quantMin, name: name}
}

// RepeatMax matches inner at most max times; fails if a further match
// would have been available past max.
func RepeatMax(inner Rule, max int, name string) *Repetition {
	return &Repetition{Base: newBase(), Inner: inner, Max: max, kind: quantMax, name: name}
}

// RepeatMinMax matches inner between min and max times, inclusive;
// fails if fewer than min, or if a further match would have been
// available past max.
func RepeatMinMax(inner Rule, min, max int, name string) *Repetition {
	return &Repetition{Base: newBase(), Inner: inner, Min: min, Max: max, kind: quantMinMax, name: name}
}

// RepeatCount matches inner exactly n times greedily; fewer than n is a
// failure, more than n is ordinary unconsumed residue.
func RepeatCount(inner Rule, n int, name string) *Repetition {
	return &Repetition{Base: newBase(), Inner: inner, Min: n, Max: n, kind: quantCount, name: name}
}

func (r *Repetition) upperBound() (int, bool) {
	switch r.kind {
	case quantMax, quantMinMax, quantCount:
		return r.Max, true
	default:
		return 0, false
	}
}

func (r *Repetition) Transfer(s *Stream) Result {
	pos := s.Cursor()
	values := make([]any, 0)

	upper, bounded := r.upperBound()
	var stop *ParseFailure
	for !bounded || len(values) < upper {
		res := s.CachedApply(r.Inner)
		if !res.IsOk() {
			stop = res.Err
			break
		}
		values = append(values, res.Value)
	}

	if len(values) < r.Min {
		// An exact count cut short by the end of input reports that
		// end-of-stream failure rather than a bound violation.
		if r.kind == quantCount && stop != nil && stop.Kind == KindEndStream {
			return Fail(stop)
		}
		return Fail(QuantBound(r.String(), pos, fmt.Sprintf("matched %d times, need at least %d", len(values), r.Min)))
	}

	// Only Max and MinMax probe for over-match; Count and the unbounded
	// forms stop at their greedy limit and never perform this check.
	if (r.kind == quantMax || r.kind == quantMinMax) && bounded && len(values) == upper {
		before := s.Cursor()
		extra := s.Apply(r.Inner)
		if extra.IsOk() {
			s.Src.Restore(before)
			return Fail(QuantBound(r.String(), pos, fmt.Sprintf("more than %d matches available", upper)))
		}
	}

	return Ok(values)
}

func (r *Repetition) String() string {
	if r.name != "" {
		return r.name
	}
	switch r.kind {
	case quantRepeat:
		return fmt.Sprintf("repeat(%s)", r.Inner)
	case quantMin:
		return fmt.Sprintf("repeat(%s, min=%d)", r.Inner, r.Min)
	case quantMax:
		return fmt.Sprintf("repeat(%s, max=%d)", r.Inner, r.Max)
	case quantMinMax:
		return fmt.Sprintf("repeat(%s, %d..%d)", r.Inner, r.Min, r.Max)
	case quantCount:
		return fmt.Sprintf("repeat(%s, count=%d)", r.Inner, r.Min)
	default:
		return fmt.Sprintf("repeat(%s)", r.Inner)
	}
}

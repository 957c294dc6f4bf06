// Package rule implements the combinator kernel: the parse contract, the
// primitive combinators (sequence, ordered choice, repetition, optional,
// lookahead, joined-repetition, wrap), and the packrat memoization layer
// that sits between them and package stream.
//
// Rules are modeled as a runtime-polymorphic tree — one concrete type per
// combinator kind, dispatched through the Rule interface — rather than as
// deeply nested generic types. Both are behaviorally equivalent ways to
// satisfy the parse contract; this port picks the former because Go's
// generics don't carry type-level recursion the way the original source's
// do, and a tree of interfaces is the idiom the rest of this codebase's
// pack already uses for exactly this shape of problem (see
// open-policy-agent-opa/ast/parser.go's seqExpr/choiceExpr/ruleRefExpr
// node types, dispatched through parseExpr's type switch).
package rule

import "sync/atomic"

var ruleIDCounter uint64

// nextRuleID assigns a packrat cache identity at construction time — the
// "auto-increment at construction" strategy the spec's design notes name
// as an equivalent to a compiler-provided runtime type-id. Two distinct
// rule instances with identical behavior get distinct ids; that's
// accepted as opportunistic caching, not a correctness requirement.
func nextRuleID() uint64 {
	return atomic.AddUint64(&ruleIDCounter, 1)
}

// Result is what a rule's Transfer produces: either a value or a
// failure, never both.
type Result struct {
	Value any
	Err   *ParseFailure
}

// Ok builds a successful result.
func Ok(v any) Result { return Result{Value: v} }

// Fail builds a failed result.
func Fail(err *ParseFailure) Result { return Result{Err: err} }

// IsOk reports whether the result succeeded.
func (r Result) IsOk() bool { return r.Err == nil }

// Rule is the fundamental entity: given a stream handle, produce a
// Result; decide, from that result, whether the stream's cursor advance
// should be kept (promotion); and offer an identity stable enough for
// packrat keying and a display form for diagnostics.
type Rule interface {
	// Transfer attempts to consume a prefix of s starting at its current
	// cursor. It must not itself restore the cursor on failure — that is
	// centralized in Stream.Apply, so rule authors only produce results.
	Transfer(s *Stream) Result

	// Promotes decides whether a completed transfer's cursor advance
	// should stick. Most rules use the default (advance iff Ok);
	// Optional always promotes (a miss consumes nothing); PositiveLookahead
	// promotes iff it matched; NegativeLookahead never promotes.
	Promotes(res Result) bool

	// ID is this rule instance's stable packrat cache identity.
	ID() uint64

	// Cacheable reports whether this rule's results may be memoized by
	// the packrat cache. True for every rule the kernel provides except
	// VecChoice, whose alternatives are rebuilt on each attempt.
	Cacheable() bool

	String() string
}

// Base is embedded by every concrete combinator to supply ID, the
// default Cacheable, and the default Promotes ("advance iff Ok").
// Combinators that need different promotion behavior (Optional, the two
// lookahead rules) override Promotes explicitly.
type Base struct {
	id uint64
}

func newBase() Base { return Base{id: nextRuleID()} }

func (b Base) ID() uint64 { return b.id }

func (b Base) Cacheable() bool { return true }

func (b Base) Promotes(res Result) bool { return res.IsOk() }

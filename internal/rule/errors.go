package rule

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// ErrorKind discriminates the taxonomy of production errors a rule can
// fail with (spec §3.3, §7). It replaces the source's per-rule generic
// error type with one concrete sum, since the runtime-tree design
// doesn't carry a distinct Go type per grammar rule.
type ErrorKind int

const (
	// KindTokenMismatch: a terminal's literal/pattern did not match at
	// the cursor.
	KindTokenMismatch ErrorKind = iota
	// KindEndStream: input exhausted before a required consumption.
	KindEndStream
	// KindSeqPosition: one element of an N-sequence failed; Index names
	// which one, Cause carries its error.
	KindSeqPosition
	// KindChoiceExhausted: every alternative of an ordered/dynamic choice
	// failed; Causes carries every alternative's error, in order.
	KindChoiceExhausted
	// KindQuantBound: a repetition's count fell outside its quantifier's
	// bounds (LessThanMin, MoreThanMax, CountMismatch — distinguished by
	// Message, since all three just need "what was expected").
	KindQuantBound
	// KindLookaheadMatched: a negative lookahead's guarded rule matched.
	KindLookaheadMatched
	// KindResidue: full_parse succeeded but did not consume all input.
	KindResidue
)

func (k ErrorKind) String() string {
	switch k {
	case KindTokenMismatch:
		return "token mismatch"
	case KindEndStream:
		return "end of stream"
	case KindSeqPosition:
		return "sequence position"
	case KindChoiceExhausted:
		return "alternation exhaustion"
	case KindQuantBound:
		return "quantifier bound"
	case KindLookaheadMatched:
		return "lookahead matched"
	case KindResidue:
		return "residue"
	default:
		return "unknown"
	}
}

// ParseFailure is the concrete error type every rule fails with. Pos is
// the byte offset at which the failure was detected (the rule's entry
// cursor for most kinds; the lookahead's entry cursor for
// KindLookaheadMatched, since it never advances).
type ParseFailure struct {
	Kind    ErrorKind
	Rule    string
	Pos     int
	Message string

	// Index is which sequence element failed (KindSeqPosition only).
	Index int
	// Cause is the wrapped inner error (KindSeqPosition's element error).
	Cause error
	// Causes accumulates every alternative's error (KindChoiceExhausted)
	// using hashicorp/go-multierror, the same "collect every sub-failure
	// and report them together" shape rami3l-golox's Parser.errors field
	// uses for its own recoverable-error accumulation.
	Causes *multierror.Error
}

func (f *ParseFailure) Error() string {
	switch f.Kind {
	case KindSeqPosition:
		return fmt.Sprintf("%s at %d: element %d: %s", f.Rule, f.Pos, f.Index, f.Cause)
	case KindChoiceExhausted:
		return fmt.Sprintf("%s at %d: no alternative matched: %s", f.Rule, f.Pos, f.Causes)
	default:
		if f.Message != "" {
			return fmt.Sprintf("%s at %d: %s", f.Rule, f.Pos, f.Message)
		}
		return fmt.Sprintf("%s at %d: %s", f.Rule, f.Pos, f.Kind)
	}
}

func (f *ParseFailure) Unwrap() error { return f.Cause }

// EndStream builds the sentinel failure for exhausted input.
func EndStream(ruleName string, pos int) *ParseFailure {
	return &ParseFailure{Kind: KindEndStream, Rule: ruleName, Pos: pos, Message: "end of stream"}
}

// TokenMismatch builds a terminal-mismatch failure.
func TokenMismatch(ruleName string, pos int, message string) *ParseFailure {
	return &ParseFailure{Kind: KindTokenMismatch, Rule: ruleName, Pos: pos, Message: message}
}

// SeqPosition wraps an inner failure with the index of the sequence
// element that produced it.
func SeqPosition(ruleName string, pos, index int, cause error) *ParseFailure {
	return &ParseFailure{Kind: KindSeqPosition, Rule: ruleName, Pos: pos, Index: index, Cause: cause}
}

// ChoiceExhausted aggregates every alternative's error.
func ChoiceExhausted(ruleName string, pos int, causes []error) *ParseFailure {
	var me *multierror.Error
	for _, c := range causes {
		me = multierror.Append(me, c)
	}
	return &ParseFailure{Kind: KindChoiceExhausted, Rule: ruleName, Pos: pos, Causes: me}
}

// QuantBound builds a quantifier-bound-violation failure.
func QuantBound(ruleName string, pos int, message string) *ParseFailure {
	return &ParseFailure{Kind: KindQuantBound, Rule: ruleName, Pos: pos, Message: message}
}

// LookaheadMatched builds the failure a negative lookahead raises when
// its guarded rule matched.
func LookaheadMatched(ruleName string, pos int) *ParseFailure {
	return &ParseFailure{Kind: KindLookaheadMatched, Rule: ruleName, Pos: pos, Message: "guarded rule matched"}
}

// Residue builds the failure full_parse raises when input remains after
// a successful match.
func Residue(pos int, tail string) *ParseFailure {
	return &ParseFailure{Kind: KindResidue, Rule: "full_parse", Pos: pos, Message: fmt.Sprintf("unconsumed input: %q", tail)}
}

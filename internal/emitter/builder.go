package emitter

import (
	"fmt"

	"github.com/abstractparser/pegc/internal/grammar"
	"github.com/abstractparser/pegc/internal/rule"
)

// buildExpr translates one grammar.Expr node into a runtime rule.Rule,
// per spec §4.4's "Expression translation rules". surround is the
// enclosing field/variant/rule name, threaded down so an inline literal
// picks up a diagnostic-friendly synthetic name instead of a bare
// TokenN (spec §4.4: "An anonymous terminal occurring in an enum
// variant or named field inherits the surrounding name").
func (b *builder) buildExpr(e grammar.Expr, surround string) (rule.Rule, error) {
	switch n := e.(type) {
	case *grammar.Ref:
		return b.resolveRef(n.Name)

	case *grammar.BoxedRec:
		return b.resolveRef(n.Name)

	case *grammar.Literal:
		n.Surround = surround
		name := b.interner.InternLiteral(n)
		if n.Substr {
			return rule.NewSubstring(n.Text, false, name), nil
		}
		return rule.NewRegex(n.Text, false, name), nil

	case *grammar.Group:
		return b.buildExpr(n.Inner, surround)

	case *grammar.Negate:
		inner, err := b.buildExpr(n.Inner, surround)
		if err != nil {
			return nil, err
		}
		return rule.NewNegativeLookahead(inner, "!"+surround), nil

	case *grammar.Seq:
		elements := make([]rule.Rule, 0, len(n.Elements))
		for i, el := range n.Elements {
			r, err := b.buildExpr(el, fmt.Sprintf("%s_%d", surround, i))
			if err != nil {
				return nil, err
			}
			elements = append(elements, r)
		}
		return rule.NewSequence(surround, elements...), nil

	case *grammar.Choice:
		name := b.interner.InternChoice(n.Alternatives)
		alts := make([]rule.Rule, 0, len(n.Alternatives))
		for i, alt := range n.Alternatives {
			r, err := b.buildExpr(alt, fmt.Sprintf("%s_v%d", name, i))
			if err != nil {
				return nil, err
			}
			alts = append(alts, r)
		}
		return rule.NewChoice(name, alts...), nil

	case *grammar.Quant:
		return b.buildQuant(n, surround)

	case *grammar.Joined:
		element, err := b.buildExpr(n.Element, surround+"_elem")
		if err != nil {
			return nil, err
		}
		sep, err := b.buildExpr(n.Separator, surround+"_sep")
		if err != nil {
			return nil, err
		}
		if n.Min <= 1 {
			return rule.NewJoinable(element, sep, surround), nil
		}
		return rule.NewMinJoinable(element, sep, n.Min, surround), nil

	default:
		return nil, fmt.Errorf("emitter: unsupported expression node %T", e)
	}
}

func (b *builder) buildQuant(n *grammar.Quant, surround string) (rule.Rule, error) {
	inner, err := b.buildExpr(n.Inner, surround+"_inner")
	if err != nil {
		return nil, err
	}

	switch n.Kind {
	case grammar.QuantOptional:
		return rule.NewOptional(inner, surround), nil
	case grammar.QuantStar:
		return rule.Repeat(inner, surround), nil
	case grammar.QuantPlus:
		return rule.RepeatMin(inner, 1, surround), nil
	case grammar.QuantCount:
		return rule.RepeatCount(inner, n.N, surround), nil
	case grammar.QuantAtLeast:
		return rule.RepeatMin(inner, n.N, surround), nil
	case grammar.QuantAtMost:
		return rule.RepeatMax(inner, n.M, surround), nil
	case grammar.QuantRange:
		return rule.RepeatMinMax(inner, n.N, n.M, surround), nil
	default:
		return nil, fmt.Errorf("emitter: unsupported quantifier kind %v", n.Kind)
	}
}

// resolveRef looks up name among the grammar's declared rules, returning
// its Rec indirection cell. Every rule reference resolves through Rec
// rather than directly to the target's Rule, since a rule definition
// earlier in the file can forward-reference one declared later, and
// cycles (direct or mutual recursion) cannot be resolved any other way
// in a plain Go value graph (spec §4.2.11, §9).
//
// Generic type arguments on the reference (`Ident<Args...>`) are
// accepted syntactically but do not influence which runtime Rule gets
// built: this port's runtime-polymorphic tree gives one Rule per rule
// name, not one per instantiation, so `d<a c, b<c>>` and a bare `d`
// resolve to the same underlying rec. A textual Go-source emitter
// (generatesource.go) is where generic instantiation would actually
// need to produce distinct monomorphized types; the runtime tree here
// only needs behavioral equivalence.
func (b *builder) resolveRef(name string) (rule.Rule, error) {
	rec, ok := b.recs[name]
	if !ok {
		return nil, fmt.Errorf("emitter: undefined rule reference %q", name)
	}
	return rec, nil
}

// Package emitter maps a parsed grammar's rule-AST onto a runtime tree
// of combinator-kernel rules (spec §4.4's translation algorithm, §9's
// "build a runtime rule tree at startup" emission strategy). Every
// [MODULE] the spec names for L4 — named rule types plus their
// output/error shapes, anonymous-choice and terminal interning — is
// realized here as Go values rather than as generated Go source; see
// generatesource.go for the textual-emission companion used by `pegc
// build --emit-go`.
package emitter

import (
	"fmt"

	"github.com/abstractparser/pegc/internal/grammar"
	"github.com/abstractparser/pegc/internal/names"
	"github.com/abstractparser/pegc/internal/rule"
)

// Descriptor records, for one grammar rule, its generated-type shape
// (spec §6.2: "Head — the rule value ... HeadOutput ... HeadError")
// alongside the runtime Rule it compiled to. OutputType/ErrorType name
// the Go types a textual emitter would generate for this rule; the
// runtime tree itself only needs Rule.
type Descriptor struct {
	Name       string
	OutputType string
	ErrorType  string
	Shape      grammar.HeadShape
	Rule       rule.Rule

	// VariantNames is populated for ShapeChoiceEnum, in declaration
	// order, mirroring the generated output enum's tags.
	VariantNames []string
	// FieldNames is populated for ShapeStruct, in declaration order,
	// omitting #[ignore]-marked fields.
	FieldNames []string
}

// Grammar is the emitted form of one grammar source: every rule's
// runtime combinator tree, keyed by head name, plus its interned token
// and choice tables for diagnostics and for the textual emitter.
type Grammar struct {
	Rules    map[string]*Descriptor
	Order    []string // declaration order, for deterministic iteration
	Interner *grammar.Interner
}

// Rule looks up a compiled rule by head name.
func (g *Grammar) Rule(name string) (rule.Rule, bool) {
	d, ok := g.Rules[name]
	if !ok {
		return nil, false
	}
	return d.Rule, true
}

// Build translates a parsed grammar.File into a Grammar: one runtime
// Rule per head, wired through rule.Rec cells so mutually- or
// self-recursive rules resolve correctly (spec §4.2.11, §9).
func Build(f *grammar.File) (*Grammar, error) {
	b := &builder{
		file:     f,
		interner: grammar.NewInterner(),
		recs:     make(map[string]*rule.Rec),
		built:    make(map[string]*Descriptor),
	}

	for _, def := range f.Rules {
		b.recs[def.Name] = rule.NewRec(def.Name)
	}

	g := &Grammar{Rules: make(map[string]*Descriptor), Interner: b.interner}
	for _, def := range f.Rules {
		d, err := b.buildRuleDef(def)
		if err != nil {
			return nil, err
		}
		g.Rules[def.Name] = d
		g.Order = append(g.Order, def.Name)
	}

	for name, rec := range b.recs {
		d, ok := g.Rules[name]
		if !ok {
			return nil, fmt.Errorf("emitter: rule %q referenced but never defined", name)
		}
		rec.Bind(d.Rule)
	}

	return g, nil
}

type builder struct {
	file     *grammar.File
	interner *grammar.Interner
	recs     map[string]*rule.Rec
	built    map[string]*Descriptor
}

func (b *builder) buildRuleDef(def *grammar.RuleDef) (*Descriptor, error) {
	switch def.Shape {
	case grammar.ShapeTerminal:
		return b.buildTerminalDef(def)
	case grammar.ShapeAlias:
		r, err := b.buildExpr(def.Body, def.Name)
		if err != nil {
			return nil, err
		}
		return &Descriptor{
			Name:       def.Name,
			OutputType: names.OutputTypeName(def.Name),
			ErrorType:  names.ErrorTypeName(def.Name),
			Shape:      grammar.ShapeAlias,
			Rule:       r,
		}, nil
	case grammar.ShapeChoiceEnum:
		return b.buildEnumDef(def)
	case grammar.ShapeStruct:
		return b.buildStructDef(def)
	default:
		return nil, fmt.Errorf("emitter: rule %q has unrecognized head shape", def.Name)
	}
}

func (b *builder) buildTerminalDef(def *grammar.RuleDef) (*Descriptor, error) {
	var inner rule.Rule
	if def.TerminalIsSubstr {
		inner = rule.NewSubstring(def.TerminalLiteral, false, def.Name)
	} else {
		inner = rule.NewRegex(def.TerminalLiteral, false, def.Name)
	}

	var r rule.Rule = inner
	switch def.TerminalMode {
	case grammar.TerminalUnit:
		r = rule.NewParsed(inner, func(string) (any, bool) { return struct{}{}, true }, def.Name)
	case grammar.TerminalParsed:
		r = rule.NewParsed(inner, parsedConverter(def.TerminalParsedAs), def.Name)
	}

	return &Descriptor{
		Name:       def.Name,
		OutputType: names.OutputTypeName(def.Name),
		ErrorType:  names.ErrorTypeName(def.Name),
		Shape:      grammar.ShapeTerminal,
		Rule:       r,
	}, nil
}

// parsedConverter returns the post-match conversion function for a
// `name: Type = "lit"` parsed terminal. Only the handful of primitive
// target types a grammar author realistically names are supported
// here; an unrecognized type name falls back to passing the raw text
// through unconverted rather than panicking at build time (the spec's
// own contract for Parsed terminals puts the burden of type/pattern
// agreement on the grammar author, not the runtime).
func parsedConverter(typeName string) rule.ParsedFunc {
	switch typeName {
	case "Int", "int":
		return func(raw string) (any, bool) {
			n := 0
			neg := false
			for i, ch := range raw {
				if i == 0 && ch == '-' {
					neg = true
					continue
				}
				if ch < '0' || ch > '9' {
					return nil, false
				}
				n = n*10 + int(ch-'0')
			}
			if neg {
				n = -n
			}
			return n, true
		}
	default:
		return func(raw string) (any, bool) { return raw, true }
	}
}

func (b *builder) buildEnumDef(def *grammar.RuleDef) (*Descriptor, error) {
	alts := make([]rule.Rule, 0, len(def.Variants))
	variantNames := make([]string, 0, len(def.Variants))
	for _, v := range def.Variants {
		r, err := b.buildExpr(v.Expr, v.Name)
		if err != nil {
			return nil, err
		}
		alts = append(alts, rule.NewTag(r, v.Name))
		variantNames = append(variantNames, v.Name)
	}
	choiceRule := rule.NewChoice(def.Name, alts...)
	return &Descriptor{
		Name:         def.Name,
		OutputType:   names.OutputTypeName(def.Name),
		ErrorType:    names.ErrorTypeName(def.Name),
		Shape:        grammar.ShapeChoiceEnum,
		Rule:         choiceRule,
		VariantNames: variantNames,
	}, nil
}

func (b *builder) buildStructDef(def *grammar.RuleDef) (*Descriptor, error) {
	elements := make([]rule.Rule, 0, len(def.Fields))
	ignore := make([]bool, 0, len(def.Fields))
	fieldNames := make([]string, 0, len(def.Fields))
	for i, f := range def.Fields {
		surround := f.Name
		if surround == "" {
			surround = fmt.Sprintf("%s_%d", def.Name, i)
		}
		r, err := b.buildExpr(f.Expr, surround)
		if err != nil {
			return nil, err
		}
		elements = append(elements, r)
		ignore = append(ignore, f.Ignore)
		if !f.Ignore {
			fieldNames = append(fieldNames, surround)
		}
	}
	seq := rule.NewFilteredSequence(def.Name, elements, ignore)
	return &Descriptor{
		Name:       def.Name,
		OutputType: names.OutputTypeName(def.Name),
		ErrorType:  names.ErrorTypeName(def.Name),
		Shape:      grammar.ShapeStruct,
		Rule:       seq,
		FieldNames: fieldNames,
	}, nil
}

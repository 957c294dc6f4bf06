package grammar

import (
	"fmt"
	"strconv"

	"github.com/abstractparser/pegc/internal/grammar/token"
)

// parser is a hand-written recursive-descent parser over the three
// nested dialects (spec §4.4, §6.1). Self-hosting the grammar-dialect
// parsers in the DSL itself was considered and rejected (spec §2's
// "self-hosted cycle" is an aspirational framing the reference
// implementation does not actually require of a port): a hand-written
// parser is what this codebase's own teacher does for its DSL, and nesting
// three dialects of the system's own grammar to parse itself would be
// circular bootstrapping for no behavioral gain. Styled on the teacher's
// curToken/peekToken lookahead-one parser (internal/compiler/parser in
// the retrieved btouchard/gmx repo), generalized from statement/block
// parsing to Expr/Quant/Atom parsing.
type parser struct {
	lex *lexer

	curToken  token.Token
	peekToken token.Token

	errs     *ErrorList
	narrowed bool // true once the first #[feature(...)] gate has been seen

	// features points at the FeatureSet shape dispatch points consult,
	// so a gate narrowed earlier in the file affects rules parsed after
	// it (gates and rule defs interleave in source order). newParser
	// points it at an all-enabled default; ParseFile repoints it at the
	// File's own FeatureSet once one exists.
	features *FeatureSet
}

func newParser(src string) *parser {
	defaults := DefaultFeatures()
	p := &parser{lex: newLexer(src), errs: NewErrorList(), features: &defaults}
	p.next()
	p.next()
	return p
}

func (p *parser) next() {
	p.curToken = p.peekToken
	p.peekToken = p.lex.NextToken()
}

func (p *parser) pos() Position {
	return Position{Line: p.curToken.Pos.Line, Column: p.curToken.Pos.Column}
}

func (p *parser) astPos() Pos {
	return Pos{Line: p.curToken.Pos.Line, Column: p.curToken.Pos.Column, Offset: p.curToken.Pos.Offset}
}

func (p *parser) errorf(format string, args ...any) {
	p.errs.Add(p.pos(), "parse", fmt.Sprintf(format, args...))
}

func (p *parser) expect(t token.Type) token.Token {
	tok := p.curToken
	if tok.Type != t {
		p.errorf("expected %s, got %s (%q)", t, tok.Type, tok.Literal)
	}
	p.next()
	return tok
}

// ParseFile parses a complete grammar source into a File. Parse errors
// are accumulated in the returned ErrorList rather than halting at the
// first one, so a caller can report every problem in one pass.
func ParseFile(src string) (*File, *ErrorList) {
	p := newParser(src)
	f := &File{Features: DefaultFeatures()}
	p.features = &f.Features

	for p.curToken.Type != token.EOF {
		if p.curToken.Type == token.HASH {
			p.parseFeatureGate(&f.Features)
			continue
		}
		def := p.parseRuleDef()
		if def != nil {
			f.Rules = append(f.Rules, def)
		}
	}
	return f, p.errs
}

// gate reports a parse error when shape, the human-readable name of the
// production just recognized, requires feature to be enabled but it
// isn't — the enforcement half of #[feature(...)] (spec §6.1: "select
// which productions are recognized"). Gates that fail still leave the
// AST node intact so the rest of the file keeps parsing and reports any
// further errors in the same pass (matching expect()'s style).
func (p *parser) gate(enabled bool, feature, shape string) {
	if !enabled {
		p.errorf("%s is disabled by #[feature(...)]: cannot use %s", feature, shape)
	}
}

// parseFeatureGate consumes `#[feature(name, name, ...)]`. Every gate
// is read as an explicit allow-list (spec §6.1: "select which
// productions are recognized"): the file's default is all-on, but the
// first gate line encountered in a source narrows the set to empty and
// enables only what it (and any later gate line) names.
func (p *parser) parseFeatureGate(fs *FeatureSet) {
	if !p.narrowed {
		*fs = FeatureSet{}
		p.narrowed = true
	}

	p.expect(token.HASH)
	p.expect(token.LBRACKET)
	ident := p.expect(token.IDENT)
	if ident.Literal != "feature" {
		p.errorf("expected 'feature', got %q", ident.Literal)
	}
	p.expect(token.LPAREN)
	for {
		name := p.expect(token.IDENT)
		if setter, ok := featureNames[name.Literal]; ok {
			setter(fs, true)
		} else {
			p.errorf("unknown feature %q", name.Literal)
		}
		if p.curToken.Type == token.COMMA {
			p.next()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	p.expect(token.RBRACKET)
}

// parseRuleDef parses one `Rule` production (spec §6.1): a terminal
// declaration, or a head followed by `=Expr`, an enum body, a struct
// body, or a tuple body.
func (p *parser) parseRuleDef() *RuleDef {
	pos := p.astPos()

	isUnit := false
	if p.curToken.Type == token.UNIT {
		isUnit = true
		p.next()
	}

	if p.curToken.Type != token.IDENT {
		p.errorf("expected rule name, got %s", p.curToken.Type)
		p.next()
		return nil
	}
	name := p.curToken.Literal
	p.next()

	// A terminal declaration looks like `name : Type = "lit"` or
	// `name = "lit"` (no generics, optional ": Type", body is a string
	// literal). Detect it by peeking for '=' with a string literal body,
	// or '=' preceded by ': Type'.
	if isUnit || p.curToken.Type == token.COLON {
		return p.finishTerminalDecl(name, pos, isUnit)
	}

	var typeParams []string
	if p.curToken.Type == token.LANGLE {
		typeParams = p.parseIdentList()
	}

	switch p.curToken.Type {
	case token.ASSIGN:
		p.next()
		if p.curToken.Type == token.STRINGLIT || p.curToken.Type == token.SUBSTRINGLIT {
			return p.finishTerminalLiteralDecl(name, pos)
		}
		expr := p.parseExpr()
		p.gate(p.features.AliasRule, "alias_rule", fmt.Sprintf("alias rule %q", name))
		return &RuleDef{Name: name, TypeParams: typeParams, Shape: ShapeAlias, Body: expr, Pos: pos}
	case token.LBRACE:
		return p.parseBracedBody(name, typeParams, pos)
	case token.LPAREN:
		return p.parseTupleBody(name, typeParams, pos)
	default:
		p.errorf("unexpected token %s after rule head %q", p.curToken.Type, name)
		p.next()
		return nil
	}
}

func (p *parser) finishTerminalDecl(name string, pos Pos, isUnit bool) *RuleDef {
	parsedAs := ""
	if p.curToken.Type == token.COLON {
		p.next()
		parsedAs = p.expect(token.IDENT).Literal
	}
	p.expect(token.ASSIGN)
	lit := p.curToken
	isSubstr := lit.Type == token.SUBSTRINGLIT
	if lit.Type != token.STRINGLIT && lit.Type != token.SUBSTRINGLIT {
		p.errorf("expected string literal for terminal %q, got %s", name, lit.Type)
	} else {
		p.next()
	}

	mode := TerminalPlain
	switch {
	case isUnit:
		mode = TerminalUnit
	case parsedAs != "":
		mode = TerminalParsed
	}

	p.gate(p.features.Token, "token", fmt.Sprintf("terminal declaration %q", name))
	return &RuleDef{
		Name:             name,
		Shape:            ShapeTerminal,
		Pos:              pos,
		TerminalLiteral:  lit.Literal,
		TerminalIsSubstr: isSubstr,
		TerminalMode:     mode,
		TerminalParsedAs: parsedAs,
	}
}

// finishTerminalLiteralDecl handles `Name = "lit"` written without a
// leading `unit`/`: Type` marker — a plain terminal.
func (p *parser) finishTerminalLiteralDecl(name string, pos Pos) *RuleDef {
	lit := p.curToken
	isSubstr := lit.Type == token.SUBSTRINGLIT
	p.next()
	p.gate(p.features.Token, "token", fmt.Sprintf("terminal declaration %q", name))
	return &RuleDef{
		Name:             name,
		Shape:            ShapeTerminal,
		Pos:              pos,
		TerminalLiteral:  lit.Literal,
		TerminalIsSubstr: isSubstr,
		TerminalMode:     TerminalPlain,
	}
}

func (p *parser) parseIdentList() []string {
	p.expect(token.LANGLE)
	var names []string
	for p.curToken.Type != token.RANGLE && p.curToken.Type != token.EOF {
		names = append(names, p.expect(token.IDENT).Literal)
		if p.curToken.Type == token.COMMA {
			p.next()
		}
	}
	p.expect(token.RANGLE)
	return names
}

// parseBracedBody disambiguates EnumBody from StructBody: both use
// `{ ... }`, but an enum entry is always `Ident "(" Expr ")"` with no
// separating punctuation, while a struct entry is `Ident ":" Expr` or a
// bare `Expr`. Named entries may be separated by commas or newlines; bare
// entries need commas, since a newline alone does not end a sequence and
// consecutive bare entries merge into one. One token of lookahead past
// the first identifier (is the next token '(' ?) tells them apart.
func (p *parser) parseBracedBody(name string, typeParams []string, pos Pos) *RuleDef {
	p.expect(token.LBRACE)

	if p.curToken.Type == token.IDENT && p.peekToken.Type == token.LPAREN {
		var variants []EnumVariant
		for p.curToken.Type != token.RBRACE && p.curToken.Type != token.EOF {
			variantName := p.expect(token.IDENT).Literal
			p.expect(token.LPAREN)
			expr := p.parseExpr()
			p.expect(token.RPAREN)
			variants = append(variants, EnumVariant{Name: variantName, Expr: expr})
		}
		p.expect(token.RBRACE)
		p.gate(p.features.ChoiceRule, "choice_rule", fmt.Sprintf("enum rule %q", name))
		return &RuleDef{Name: name, TypeParams: typeParams, Shape: ShapeChoiceEnum, Variants: variants, Pos: pos}
	}

	var fields []StructField
	for p.curToken.Type != token.RBRACE && p.curToken.Type != token.EOF {
		ignore := p.consumeIgnoreMarker()
		if p.curToken.Type == token.IDENT && p.peekToken.Type == token.COLON {
			fieldName := p.curToken.Literal
			p.next()
			p.next() // ':'
			expr := p.parseExpr()
			fields = append(fields, StructField{Name: fieldName, Expr: expr, Ignore: ignore})
		} else {
			expr := p.parseExpr()
			fields = append(fields, StructField{Expr: expr, Ignore: ignore})
		}
		if p.curToken.Type == token.COMMA {
			p.next()
		}
	}
	p.expect(token.RBRACE)
	p.gate(p.features.SequenceRule, "sequence_rule", fmt.Sprintf("struct rule %q", name))
	return &RuleDef{Name: name, TypeParams: typeParams, Shape: ShapeStruct, Fields: fields, Pos: pos}
}

// parseTupleBody parses `Head ( Expr #[ignore] Expr ... )` (spec
// §6.1's TupleBody), a positional-field struct shape. Each field is one
// quantified atom, so a sequence or choice used as a single field is
// written in parentheses.
func (p *parser) parseTupleBody(name string, typeParams []string, pos Pos) *RuleDef {
	p.expect(token.LPAREN)
	var fields []StructField
	for p.curToken.Type != token.RPAREN && p.curToken.Type != token.EOF {
		ignore := p.consumeIgnoreMarker()
		expr := p.parseQuant()
		fields = append(fields, StructField{Expr: expr, Ignore: ignore})
	}
	p.expect(token.RPAREN)
	p.gate(p.features.SequenceRule, "sequence_rule", fmt.Sprintf("tuple rule %q", name))
	return &RuleDef{Name: name, TypeParams: typeParams, Shape: ShapeStruct, Fields: fields, Pos: pos}
}

func (p *parser) consumeIgnoreMarker() bool {
	if p.curToken.Type != token.HASH {
		return false
	}
	p.next()
	p.expect(token.LBRACKET)
	ident := p.expect(token.IDENT)
	if ident.Literal != "ignore" {
		p.errorf("expected 'ignore', got %q", ident.Literal)
	}
	p.expect(token.RBRACKET)
	return true
}

// parseExpr parses `Choice` (spec §6.1's top Expr production).
func (p *parser) parseExpr() Expr {
	first := p.parseSeq()
	if p.curToken.Type != token.SLASH {
		return first
	}
	alts := []Expr{first}
	for p.curToken.Type == token.SLASH {
		p.next()
		alts = append(alts, p.parseSeq())
	}
	p.gate(p.features.ChoiceTree, "choice_tree", "inline `/` alternation")
	return &Choice{Alternatives: alts}
}

// atomStart reports whether tok can begin an Atom, so Seq knows when to
// stop consuming (sequences are whitespace-separated with no explicit
// terminator other than running into `/`, `)`, `}`, `,`, or EOF).
func atomStart(t token.Type) bool {
	switch t {
	case token.IDENT, token.LANGLE, token.LPAREN, token.BANG, token.STRINGLIT, token.SUBSTRINGLIT:
		return true
	default:
		return false
	}
}

// atRuleHead reports whether cur starts the next definition (or the next
// named struct field) instead of continuing the current sequence. Newlines
// are not tokens, so a head is recognized by what follows it: `Ident =`,
// `Ident :`, or `Ident <`, `Ident {`, `Ident (` written at the start of a
// line.
func atRuleHead(cur, peek token.Token) bool {
	if cur.Type != token.IDENT {
		return false
	}
	switch peek.Type {
	case token.ASSIGN, token.COLON:
		return true
	case token.LANGLE, token.LBRACE, token.LPAREN:
		return cur.Pos.Column == 1
	}
	return false
}

func (p *parser) parseSeq() Expr {
	var elements []Expr
	for atomStart(p.curToken.Type) && !atRuleHead(p.curToken, p.peekToken) {
		elements = append(elements, p.parseQuant())
	}
	if len(elements) == 1 {
		return elements[0]
	}
	p.gate(p.features.SequenceTree, "sequence_tree", "inline juxtaposed sequence")
	return &Seq{Elements: elements}
}

// parseQuant parses `Atom (quantifier suffix)?`, including the joined
// repeat `** [Counter] Atom` form (spec §6.1's Quant production).
func (p *parser) parseQuant() Expr {
	atom := p.parseAtom()

	switch p.curToken.Type {
	case token.QMARK:
		p.next()
		p.gate(p.features.QuantificatorRule, "quantificator_rule", "`?` quantifier")
		return &Quant{Inner: atom, Kind: QuantOptional}
	case token.STAR:
		p.next()
		p.gate(p.features.QuantificatorRule, "quantificator_rule", "`*` quantifier")
		return &Quant{Inner: atom, Kind: QuantStar}
	case token.PLUS:
		p.next()
		p.gate(p.features.QuantificatorRule, "quantificator_rule", "`+` quantifier")
		return &Quant{Inner: atom, Kind: QuantPlus}
	case token.LBRACE:
		p.gate(p.features.QuantificatorRule, "quantificator_rule", "`{...}` counter")
		return p.parseCounter(atom)
	case token.DSTAR:
		p.next()
		min := 1
		if p.curToken.Type == token.LBRACE {
			min = p.parseJoinCounter()
		}
		sep := p.parseAtom()
		p.gate(p.features.QuantificatorRule, "quantificator_rule", "`**` joined repeat")
		return &Joined{Element: atom, Separator: sep, Min: min}
	default:
		return atom
	}
}

// parseCounter parses `{n}`, `{n,}`, `{,m}`, `{n,m}` and wraps atom in
// the matching Quant (spec §6.1's Counter production).
func (p *parser) parseCounter(atom Expr) Expr {
	p.expect(token.LBRACE)

	hasN, n := false, 0
	if p.curToken.Type == token.NUMBER {
		n = p.parseIntLiteral()
		hasN = true
	}

	if p.curToken.Type == token.RBRACE {
		p.expect(token.RBRACE)
		if !hasN {
			p.errorf("empty counter {}")
		}
		return &Quant{Inner: atom, Kind: QuantCount, N: n}
	}

	p.expect(token.COMMA)

	hasM, m := false, 0
	if p.curToken.Type == token.NUMBER {
		m = p.parseIntLiteral()
		hasM = true
	}
	p.expect(token.RBRACE)

	switch {
	case hasN && hasM:
		return &Quant{Inner: atom, Kind: QuantRange, N: n, M: m}
	case hasN:
		return &Quant{Inner: atom, Kind: QuantAtLeast, N: n}
	case hasM:
		return &Quant{Inner: atom, Kind: QuantAtMost, M: m}
	default:
		p.errorf("counter {,} needs at least one bound")
		return &Quant{Inner: atom, Kind: QuantStar}
	}
}

// parseJoinCounter parses the optional `{n,}` attached directly after
// `**`, returning the minimum element count (spec §4.2.9's
// MinJoinableRule<N>).
func (p *parser) parseJoinCounter() int {
	p.expect(token.LBRACE)
	n := p.parseIntLiteral()
	p.expect(token.COMMA)
	p.expect(token.RBRACE)
	return n
}

func (p *parser) parseIntLiteral() int {
	lit := p.expect(token.NUMBER)
	n, err := strconv.Atoi(lit.Literal)
	if err != nil {
		p.errorf("invalid integer %q", lit.Literal)
		return 0
	}
	return n
}

// parseAtom parses `Ident Generics? | "<" Ident ">" | "(" Expr ")" |
// "!" Atom | StringLit` (spec §6.1's Atom production).
func (p *parser) parseAtom() Expr {
	switch p.curToken.Type {
	case token.BANG:
		p.next()
		return &Negate{Inner: p.parseAtom()}
	case token.LPAREN:
		p.next()
		inner := p.parseExpr()
		p.expect(token.RPAREN)
		return &Group{Inner: inner}
	case token.LANGLE:
		p.next()
		name := p.expect(token.IDENT).Literal
		p.expect(token.RANGLE)
		return &BoxedRec{Name: name}
	case token.STRINGLIT:
		lit := p.curToken
		p.next()
		return &Literal{Text: lit.Literal, Substr: false}
	case token.SUBSTRINGLIT:
		lit := p.curToken
		p.next()
		return &Literal{Text: lit.Literal, Substr: true}
	case token.IDENT:
		name := p.curToken.Literal
		p.next()
		var args []Expr
		if p.curToken.Type == token.LANGLE {
			args = p.parseExprList()
		}
		return &Ref{Name: name, Args: args}
	default:
		p.errorf("unexpected token %s in expression", p.curToken.Type)
		p.next()
		return &Ref{Name: "?"}
	}
}

func (p *parser) parseExprList() []Expr {
	p.expect(token.LANGLE)
	var exprs []Expr
	for p.curToken.Type != token.RANGLE && p.curToken.Type != token.EOF {
		exprs = append(exprs, p.parseExpr())
		if p.curToken.Type == token.COMMA {
			p.next()
		}
	}
	p.expect(token.RANGLE)
	return exprs
}

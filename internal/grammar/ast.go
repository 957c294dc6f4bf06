package grammar

// File is everything parsed from one grammar source: its rule
// definitions in declaration order, plus which dialect features are
// enabled (spec §3.5, §6.1).
type File struct {
	Rules    []*RuleDef
	Features FeatureSet
}

// HeadShape distinguishes the three ways a rule's left-hand side can be
// written (spec §3.5, §4.4's "structured head shapes").
type HeadShape int

const (
	ShapeAlias       HeadShape = iota // Head = Expr
	ShapeChoiceEnum                   // Head { Var1(Expr1) Var2(Expr2) ... }
	ShapeStruct                       // Head { name: Expr, ... } or Head ( Expr #[ignore] Expr ... )
	ShapeTerminal                     // Head = "literal" (plain / unit / parsed)
)

// TerminalMode distinguishes the three terminal-declaration shapes
// (spec §4.4: "plain, unit (self token), name: Type (parsed token)").
type TerminalMode int

const (
	TerminalPlain TerminalMode = iota
	TerminalUnit
	TerminalParsed
)

// RuleDef is one grammar definition: a head (name plus optional generic
// parameters) and either a terminal declaration or an expression body
// shaped per HeadShape (spec §3.5).
type RuleDef struct {
	Name       string
	TypeParams []string
	Shape      HeadShape
	Pos        Pos

	// Body is non-nil for ShapeAlias (the aliased Expr).
	Body Expr

	// Variants is populated for ShapeChoiceEnum: one entry per
	// Name(Expr) alternative, in textual order.
	Variants []EnumVariant

	// Fields is populated for ShapeStruct: one entry per field, named or
	// positional, with #[ignore] tracked per field.
	Fields []StructField

	// Terminal fields, populated for ShapeTerminal.
	TerminalLiteral   string
	TerminalIsSubstr  bool
	TerminalMode      TerminalMode
	TerminalParsedAs  string // the ": Type" name for TerminalParsed
}

type EnumVariant struct {
	Name string
	Expr Expr
}

type StructField struct {
	Name   string // empty for positional fields
	Expr   Expr
	Ignore bool
}

// Pos is a lightweight source position carried by AST nodes for
// diagnostics; it mirrors grammar.Position without importing it,
// since rule-AST nodes are built before any CompileError exists.
type Pos struct {
	Line   int
	Column int
	Offset int
}

// Expr is the sum type of everything that can appear on the right-hand
// side of a rule (spec §3.5's "expression drawn from the variant set").
type Expr interface{ exprNode() }

// Ref is a bare identifier reference to another rule, optionally
// generic-instantiated (`Ident<Args...>`).
type Ref struct {
	Name string
	Args []Expr
}

// Literal is a quoted terminal appearing inline in an expression
// (`"literal"` or `"literal"s`); the translator interns it into the
// token table and substitutes a Ref to the synthetic name (spec §4.4:
// "the synthetic name is substituted into the expression"), but the
// raw Literal node is what the parser produces first.
type Literal struct {
	Text     string
	Substr   bool
	Surround string // the enclosing field/variant name, for synthetic naming
}

// Seq is a whitespace-separated sequence of sub-expressions.
type Seq struct{ Elements []Expr }

// Choice is an ordered `/`-separated alternation.
type Choice struct{ Alternatives []Expr }

// Quant wraps an expression with a repetition marker.
type Quant struct {
	Inner Expr
	Kind  QuantKindAST
	N, M  int // meaning depends on Kind
}

type QuantKindAST int

const (
	QuantOptional QuantKindAST = iota // ?
	QuantStar                         // *
	QuantPlus                         // +
	QuantCount                        // {n}
	QuantAtLeast                      // {n,}
	QuantAtMost                       // {,m}
	QuantRange                        // {n,m}
)

// Joined is `E ** sep` or `E **{n,} sep`.
type Joined struct {
	Element   Expr
	Separator Expr
	Min       int // 1 means unbounded (plain Joinable); >1 means MinJoinable(Min)
}

// Negate is `!E`, a negative lookahead.
type Negate struct{ Inner Expr }

// Group is a parenthesized sub-expression, kept distinct from its inner
// node only to preserve source fidelity; translation unwraps it.
type Group struct{ Inner Expr }

// BoxedRec is `<Ident>`, a boxed-recursion marker around a rule
// reference (spec §3.5, §4.4: "boxed-ident recursion").
type BoxedRec struct{ Name string }

func (*Ref) exprNode()      {}
func (*Literal) exprNode()  {}
func (*Seq) exprNode()      {}
func (*Choice) exprNode()   {}
func (*Quant) exprNode()    {}
func (*Joined) exprNode()   {}
func (*Negate) exprNode()   {}
func (*Group) exprNode()    {}
func (*BoxedRec) exprNode() {}

// FeatureSet tracks which of the feature-dialect's gated productions
// are enabled (spec §6.1: "Default: all on").
type FeatureSet struct {
	ChoiceTree        bool
	SequenceTree      bool
	ChoiceRule        bool
	SequenceRule      bool
	QuantificatorRule bool
	AliasRule         bool
	Token             bool
	Comment           bool
}

// DefaultFeatures returns every feature gate enabled, the dialect's
// default (spec §6.1).
func DefaultFeatures() FeatureSet {
	return FeatureSet{
		ChoiceTree:        true,
		SequenceTree:      true,
		ChoiceRule:        true,
		SequenceRule:      true,
		QuantificatorRule: true,
		AliasRule:         true,
		Token:             true,
		Comment:           true,
	}
}

// featureNames maps a grammar source's `#[feature(name)]` spelling to
// the FeatureSet field it toggles. The original dialect misspells two
// of these ("squence_tree", "squence_rule"); this port corrects the
// spelling on both sides (the Go field and the text a grammar author
// writes) since the gate is internal to this module with no external
// compatibility surface to preserve.
var featureNames = map[string]func(*FeatureSet, bool){
	"choice_tree":        func(f *FeatureSet, v bool) { f.ChoiceTree = v },
	"sequence_tree":      func(f *FeatureSet, v bool) { f.SequenceTree = v },
	"choice_rule":        func(f *FeatureSet, v bool) { f.ChoiceRule = v },
	"sequence_rule":      func(f *FeatureSet, v bool) { f.SequenceRule = v },
	"quantificator_rule": func(f *FeatureSet, v bool) { f.QuantificatorRule = v },
	"alias_rule":         func(f *FeatureSet, v bool) { f.AliasRule = v },
	"token":              func(f *FeatureSet, v bool) { f.Token = v },
	"comment":            func(f *FeatureSet, v bool) { f.Comment = v },
}

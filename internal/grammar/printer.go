package grammar

import (
	"fmt"
	"strings"
)

// Format renders a parsed File back to canonical grammar-DSL text, the
// same round-trip job the teacher's cmd/gmx/fmt.go does for .gmx source
// by re-emitting its AST through a string builder rather than echoing
// the original bytes — so formatting also normalizes whitespace and
// quantifier spelling.
func Format(f *File) string {
	var sb strings.Builder
	for _, def := range f.Rules {
		writeRuleDef(&sb, def)
	}
	return sb.String()
}

func writeRuleDef(sb *strings.Builder, def *RuleDef) {
	head := def.Name
	if len(def.TypeParams) > 0 {
		head = fmt.Sprintf("%s<%s>", head, strings.Join(def.TypeParams, ", "))
	}

	switch def.Shape {
	case ShapeTerminal:
		writeTerminalDef(sb, def, head)
	case ShapeAlias:
		fmt.Fprintf(sb, "%s = %s\n", head, writeExpr(def.Body))
	case ShapeChoiceEnum:
		fmt.Fprintf(sb, "%s {\n", head)
		for _, v := range def.Variants {
			fmt.Fprintf(sb, "\t%s(%s)\n", v.Name, writeExpr(v.Expr))
		}
		sb.WriteString("}\n")
	case ShapeStruct:
		writeStructDef(sb, def, head)
	}
}

func writeTerminalDef(sb *strings.Builder, def *RuleDef, head string) {
	prefix := ""
	if def.TerminalMode == TerminalUnit {
		prefix = "unit "
	}
	suffix := ""
	if def.TerminalIsSubstr {
		suffix = "s"
	}
	if def.TerminalMode == TerminalParsed {
		fmt.Fprintf(sb, "%s%s: %s = %q%s\n", prefix, head, def.TerminalParsedAs, def.TerminalLiteral, suffix)
		return
	}
	fmt.Fprintf(sb, "%s%s = %q%s\n", prefix, head, def.TerminalLiteral, suffix)
}

func writeStructDef(sb *strings.Builder, def *RuleDef, head string) {
	named := false
	for _, f := range def.Fields {
		if f.Name != "" {
			named = true
			break
		}
	}
	if named {
		fmt.Fprintf(sb, "%s {\n", head)
		for _, f := range def.Fields {
			ignore := ""
			if f.Ignore {
				ignore = "#[ignore] "
			}
			fmt.Fprintf(sb, "\t%s%s: %s\n", ignore, f.Name, writeExpr(f.Expr))
		}
		sb.WriteString("}\n")
		return
	}

	parts := make([]string, 0, len(def.Fields))
	for _, f := range def.Fields {
		text := writeExpr(f.Expr)
		if f.Ignore {
			text = "#[ignore] " + text
		}
		parts = append(parts, text)
	}
	fmt.Fprintf(sb, "%s ( %s )\n", head, strings.Join(parts, " "))
}

func writeExpr(e Expr) string {
	switch n := e.(type) {
	case *Ref:
		if len(n.Args) == 0 {
			return n.Name
		}
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = writeExpr(a)
		}
		return fmt.Sprintf("%s<%s>", n.Name, strings.Join(args, ", "))

	case *Literal:
		suffix := ""
		if n.Substr {
			suffix = "s"
		}
		return fmt.Sprintf("%q%s", n.Text, suffix)

	case *Seq:
		parts := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			parts[i] = writeExpr(el)
		}
		return strings.Join(parts, " ")

	case *Choice:
		parts := make([]string, len(n.Alternatives))
		for i, alt := range n.Alternatives {
			parts[i] = writeExpr(alt)
		}
		return strings.Join(parts, " / ")

	case *Quant:
		return writeExpr(n.Inner) + quantSuffix(n)

	case *Joined:
		if n.Min <= 1 {
			return fmt.Sprintf("%s ** %s", writeExpr(n.Element), writeExpr(n.Separator))
		}
		return fmt.Sprintf("%s **{%d,} %s", writeExpr(n.Element), n.Min, writeExpr(n.Separator))

	case *Negate:
		return "!" + writeExpr(n.Inner)

	case *Group:
		return "(" + writeExpr(n.Inner) + ")"

	case *BoxedRec:
		return "<" + n.Name + ">"

	default:
		return fmt.Sprintf("/* unknown expr %T */", e)
	}
}

func quantSuffix(q *Quant) string {
	switch q.Kind {
	case QuantOptional:
		return "?"
	case QuantStar:
		return "*"
	case QuantPlus:
		return "+"
	case QuantCount:
		return fmt.Sprintf("{%d}", q.N)
	case QuantAtLeast:
		return fmt.Sprintf("{%d,}", q.N)
	case QuantAtMost:
		return fmt.Sprintf("{,%d}", q.M)
	case QuantRange:
		return fmt.Sprintf("{%d,%d}", q.N, q.M)
	default:
		return ""
	}
}

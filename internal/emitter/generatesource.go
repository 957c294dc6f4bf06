package emitter

import (
	"fmt"
	"strings"

	"github.com/abstractparser/pegc/internal/grammar"
	"github.com/abstractparser/pegc/internal/names"
)

// GenerateSource renders a Grammar as standalone Go source text: one
// exported type per rule (output struct/enum, error type) plus doc
// comments naming the shape it came from. This is the spec's
// secondary, non-required emission strategy (§9, option (b)): the
// runtime tree built by Build is what actually parses; this text is a
// convenience artifact for callers who want generated named types to
// reference in their own code, in the same string-builder style the
// teacher's template compiler used for code generation
// (internal/compiler/generator in the retrieved btouchard/gmx repo).
func GenerateSource(pkg string, g *Grammar) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "// Code generated by pegc. DO NOT EDIT.\n\n")
	fmt.Fprintf(&sb, "package %s\n\n", pkg)

	for _, name := range g.Order {
		d := g.Rules[name]
		writeRuleTypes(&sb, d)
	}

	return sb.String()
}

func writeRuleTypes(sb *strings.Builder, d *Descriptor) {
	switch d.Shape {
	case grammar.ShapeTerminal:
		fmt.Fprintf(sb, "// %s is a terminal rule.\n", d.Name)
		fmt.Fprintf(sb, "type %s = string\n\n", d.OutputType)

	case grammar.ShapeChoiceEnum:
		fmt.Fprintf(sb, "// %s is the parse result of rule %q, one variant per alternative.\n", d.OutputType, d.Name)
		fmt.Fprintf(sb, "type %s interface{ is%s() }\n\n", d.OutputType, d.OutputType)
		for _, v := range d.VariantNames {
			variantType := names.ToPascalCase(d.Name) + names.ToPascalCase(v)
			fmt.Fprintf(sb, "type %s struct{ Value any }\n", variantType)
			fmt.Fprintf(sb, "func (%s) is%s() {}\n\n", variantType, d.OutputType)
		}

	case grammar.ShapeStruct:
		fmt.Fprintf(sb, "// %s is the parse result of rule %q.\n", d.OutputType, d.Name)
		fmt.Fprintf(sb, "type %s struct {\n", d.OutputType)
		for _, f := range d.FieldNames {
			fmt.Fprintf(sb, "\t%s any\n", names.ToPascalCase(f))
		}
		fmt.Fprintf(sb, "}\n\n")

	case grammar.ShapeAlias:
		fmt.Fprintf(sb, "// %s aliases the output of rule %q.\n", d.OutputType, d.Name)
		fmt.Fprintf(sb, "type %s = any\n\n", d.OutputType)
	}

	fmt.Fprintf(sb, "// %s is the error type of rule %q.\n", d.ErrorType, d.Name)
	fmt.Fprintf(sb, "type %s = error\n\n", d.ErrorType)
}

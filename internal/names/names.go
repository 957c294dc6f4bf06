// Package names provides the identifier conventions the emitter uses to
// turn grammar-source names into exported Go identifiers.
package names

import (
	"fmt"
	"strings"
)

// ToPascalCase converts a grammar identifier (snake_case or camelCase, as
// written in a rule head) to PascalCase for use as an exported Go type name.
func ToPascalCase(s string) string {
	if s == "" {
		return s
	}

	if strings.Contains(s, "_") {
		parts := strings.Split(s, "_")
		for i, part := range parts {
			if part != "" {
				parts[i] = Capitalize(part)
			}
		}
		return strings.Join(parts, "")
	}

	return Capitalize(s)
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ReceiverName returns a short lowercase receiver name for a generated
// type, e.g. "FooBar" -> "f".
func ReceiverName(typeName string) string {
	if typeName == "" {
		return ""
	}
	return strings.ToLower(typeName[:1])
}

// Token synthesizes the interned name for an anonymous terminal literal:
// TokenN, unless a surrounding field/variant name is available, in which
// case that name is reused (improves diagnostics, per the grammar spec's
// interning rules).
func Token(n int, surrounding string) string {
	if surrounding != "" {
		return ToPascalCase(surrounding)
	}
	return fmt.Sprintf("Token%d", n)
}

// Choice synthesizes the interned name for an anonymous inline choice
// expression: ChoiceN.
func Choice(n int) string {
	return fmt.Sprintf("Choice%d", n)
}

// OutputTypeName is the generated output type name for rule head.
func OutputTypeName(head string) string {
	return ToPascalCase(head) + "Output"
}

// ErrorTypeName is the generated error type name for rule head.
func ErrorTypeName(head string) string {
	return ToPascalCase(head) + "Error"
}

// VariantName names an ordered-choice alternative that wasn't given an
// explicit variant tag: V0, V1, ...
func VariantName(i int) string {
	return fmt.Sprintf("V%d", i)
}

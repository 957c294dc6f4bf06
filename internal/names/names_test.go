package names

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple lower", "expr", "Expr"},
		{"snake case", "rule_head", "RuleHead"},
		{"multiple underscores", "some_rule_name", "SomeRuleName"},
		{"trailing underscore", "rule_", "Rule"},
		{"leading underscore", "_rule", "Rule"},
		{"camel already", "ruleHead", "RuleHead"},
		{"already pascal", "RuleHead", "RuleHead"},
		{"empty string", "", ""},
		{"single char", "a", "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, ToPascalCase(tt.input))
		})
	}
}

func TestCapitalize(t *testing.T) {
	require.Equal(t, "Hello", Capitalize("hello"))
	require.Equal(t, "", Capitalize(""))
	require.Equal(t, "A", Capitalize("a"))
	require.Equal(t, "Hello", Capitalize("Hello"))
}

func TestReceiverName(t *testing.T) {
	require.Equal(t, "e", ReceiverName("Expr"))
	require.Equal(t, "r", ReceiverName("RuleHead"))
	require.Equal(t, "", ReceiverName(""))
}

func TestTokenAndChoiceNaming(t *testing.T) {
	require.Equal(t, "Token0", Token(0, ""))
	require.Equal(t, "Token3", Token(3, ""))
	require.Equal(t, "Lhs", Token(2, "lhs"))
	require.Equal(t, "Choice0", Choice(0))
	require.Equal(t, "FooOutput", OutputTypeName("foo"))
	require.Equal(t, "FooError", ErrorTypeName("foo"))
	require.Equal(t, "V0", VariantName(0))
	require.Equal(t, "V2", VariantName(2))
}

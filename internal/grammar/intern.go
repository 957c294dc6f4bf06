package grammar

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/abstractparser/pegc/internal/names"
)

// TokenEntry is one interned terminal literal: either a user-named
// terminal declaration or an anonymous inline literal promoted out of
// an expression (spec §3.6: "anonymous terminal literals are assigned
// synthetic names TokenN ... together with their mode and the literal
// text").
type TokenEntry struct {
	Name     string
	Literal  string
	Substr   bool
	Surround string
}

// ChoiceEntry is one interned anonymous choice expression, always named
// ChoiceN by registration order (spec §3.6).
type ChoiceEntry struct {
	Name         string
	Alternatives []Expr
}

// Interner builds the per-grammar-source token and choice tables,
// deduplicating literals by content hash so that two textually identical
// inline literals share one synthetic name (spec §3.6); choices are not
// deduplicated (see InternChoice). xxhash is
// used for the content digest — cespare/xxhash/v2 is the fast
// non-cryptographic hash the rest of this pack's parser/AST tooling
// (open-policy-agent-opa) reaches for when it needs to dedupe
// syntax-tree fragments by value rather than by pointer identity.
type Interner struct {
	tokens      []TokenEntry
	tokenByHash map[uint64]int // hash -> index into tokens

	choices []ChoiceEntry
	nextTok int
	nextChc int
}

// NewInterner builds an empty interning session for one grammar source.
func NewInterner() *Interner {
	return &Interner{tokenByHash: make(map[uint64]int)}
}

// InternLiteral returns the synthetic or surrounding-derived name for a
// literal, reusing an existing entry when the (text, substr) pair has
// already been interned.
func (in *Interner) InternLiteral(lit *Literal) string {
	h := hashLiteral(lit.Text, lit.Substr)
	if idx, ok := in.tokenByHash[h]; ok {
		return in.tokens[idx].Name
	}

	name := names.Token(in.nextTok, lit.Surround)
	in.nextTok++
	in.tokenByHash[h] = len(in.tokens)
	in.tokens = append(in.tokens, TokenEntry{
		Name:     name,
		Literal:  lit.Text,
		Substr:   lit.Substr,
		Surround: lit.Surround,
	})
	return name
}

// InternChoice registers an anonymous choice's alternative list under a
// fresh ChoiceN name. Unlike literals, choices are not deduplicated by
// content — two structurally identical anonymous choices in different
// rules are kept distinct so their interned enum types can carry
// independent diagnostics (spec §3.6 names this table as positional,
// not content-addressed, unlike the token table).
func (in *Interner) InternChoice(alts []Expr) string {
	name := names.Choice(in.nextChc)
	in.nextChc++
	in.choices = append(in.choices, ChoiceEntry{Name: name, Alternatives: alts})
	return name
}

func (in *Interner) Tokens() []TokenEntry   { return in.tokens }
func (in *Interner) Choices() []ChoiceEntry { return in.choices }

func hashLiteral(text string, substr bool) uint64 {
	h := xxhash.New()
	if substr {
		_, _ = h.Write([]byte{'s'})
	} else {
		_, _ = h.Write([]byte{'r'})
	}
	_, _ = h.WriteString(text)
	return h.Sum64()
}

// Digest returns a stable content hash of a whole File's textual
// structure: the xxhash of its canonical text as Format writes it, so
// positions, comments and layout do not affect it. It is a diagnostic
// helper; the gcache lookup key is the SHA-256 of the raw grammar source
// (sourceDigest in cmd/pegc/build.go), not this value.
func Digest(f *File) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(Format(f)))
}

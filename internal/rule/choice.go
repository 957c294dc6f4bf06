package rule

import "fmt"

// Choice tries each alternative in order, committing to the first that
// succeeds; if none do, it reports every alternative's failure together
// (spec §3.2: "ordered choice tries alternatives left to right and
// commits to the first match; if all fail, the failure names every
// alternative's cause").
type Choice struct {
	Base
	Alternatives []Rule
	name         string
}

// NewChoice builds a fixed, statically-known ordered choice.
func NewChoice(name string, alternatives ...Rule) *Choice {
	return &Choice{Base: newBase(), Alternatives: alternatives, name: name}
}

func (c *Choice) Transfer(s *Stream) Result {
	pos := s.Cursor()
	causes := make([]error, 0, len(c.Alternatives))
	for _, alt := range c.Alternatives {
		res := s.CachedApply(alt)
		if res.IsOk() {
			return res
		}
		causes = append(causes, res.Err)
	}
	return Fail(ChoiceExhausted(c.String(), pos, causes))
}

func (c *Choice) String() string {
	if c.name != "" {
		return c.name
	}
	return fmt.Sprintf("choice(%d)", len(c.Alternatives))
}

// EnumVariant is the tagged value produced by a choice-enum's winning
// alternative (spec §6: "for an enum-shape head, HeadOutput is a sum
// with named variants mirroring the grammar" — Variant names which
// alternative matched, since a bare Value alone can't distinguish two
// alternatives that happen to produce structurally identical output).
type EnumVariant struct {
	Variant string
	Value   any
}

// Tag wraps an inner rule and relabels its successful output as an
// EnumVariant carrying name, for exactly one enum alternative. It
// exists only so buildEnumDef can attach a variant discriminator
// without Choice itself needing to know it's building an enum — a
// plain Choice (e.g. an inline choice-tree expression) stays untagged.
type Tag struct {
	Base
	Inner Rule
	Name  string
}

// NewTag builds the per-variant tagging adapter buildEnumDef wraps each
// enum alternative in before handing it to NewChoice.
func NewTag(inner Rule, name string) *Tag {
	return &Tag{Base: newBase(), Inner: inner, Name: name}
}

func (t *Tag) Transfer(s *Stream) Result {
	res := s.CachedApply(t.Inner)
	if !res.IsOk() {
		return res
	}
	return Ok(EnumVariant{Variant: t.Name, Value: res.Value})
}

func (t *Tag) String() string {
	return fmt.Sprintf("tag(%s)", t.Name)
}

// VecChoice is a choice whose alternative set is built at runtime rather
// than fixed at construction (spec §3.2: "a dynamic choice rebuilds its
// alternative list from a supplier on every attempt", used by grammars
// that compute their alternatives from external state, e.g. a loaded
// keyword table). Its cache identity is still stable — only the
// alternatives it tries on a given attempt vary.
type VecChoice struct {
	Base
	Supply func() []Rule
	name   string
}

// NewVecChoice builds a choice whose alternatives are recomputed by
// supply on every Transfer.
func NewVecChoice(name string, supply func() []Rule) *VecChoice {
	return &VecChoice{Base: newBase(), Supply: supply, name: name}
}

// Cacheable is false: the alternative set can change between attempts at
// the same cursor position, so memoizing would be unsound.
func (c *VecChoice) Cacheable() bool { return false }

func (c *VecChoice) Transfer(s *Stream) Result {
	pos := s.Cursor()
	alternatives := c.Supply()
	causes := make([]error, 0, len(alternatives))
	for _, alt := range alternatives {
		res := s.Apply(alt)
		if res.IsOk() {
			return res
		}
		causes = append(causes, res.Err)
	}
	return Fail(ChoiceExhausted(c.String(), pos, causes))
}

func (c *VecChoice) String() string {
	if c.name != "" {
		return c.name
	}
	return "vec_choice"
}

package rule

// Rec breaks a construction-time cycle: a recursive rule (one whose
// definition refers to itself, directly or through other rules) cannot
// be built as a plain Go value graph, since Go has no way to close a
// cycle of struct literals. Rec holds a pointer that's filled in after
// construction, once the cyclic rule it refers to exists (spec §3.2,
// §9: "recursive rule references are resolved through an indirection
// cell bound after the rest of the grammar is built").
type Rec struct {
	Base
	Target Rule
	name   string
}

// NewRec builds an unbound recursion cell; call Bind before first use.
func NewRec(name string) *Rec {
	return &Rec{Base: newBase(), name: name}
}

// Bind fills in the rule this cell refers to. Must be called exactly
// once, after every rule in the cycle has been constructed but before
// any parse attempt.
func (r *Rec) Bind(target Rule) {
	r.Target = target
}

func (r *Rec) Transfer(s *Stream) Result {
	if r.Target == nil {
		return Fail(TokenMismatch(r.String(), s.Cursor(), "recursive rule used before Bind"))
	}
	return s.CachedApply(r.Target)
}

// Promotes delegates to the bound target's own promotion rule, so a
// recursive reference to an Optional or lookahead behaves exactly as
// that rule would inline.
func (r *Rec) Promotes(res Result) bool {
	if r.Target == nil {
		return res.IsOk()
	}
	return r.Target.Promotes(res)
}

func (r *Rec) String() string {
	if r.name != "" {
		return r.name
	}
	return "rec"
}

// RecB is Rec's lazily-resolved variant: instead of a Bind call filling
// a field after the fact, Resolve is invoked on demand and its result
// cached, for cycles that are more naturally expressed as a supplier
// closure than as a two-phase build (spec §3.2: "the builder-function
// form of recursive indirection"). A single parse never runs two
// Transfers on the same rule tree concurrently, so the unguarded
// check-then-set below is safe within that contract.
type RecB struct {
	Base
	Resolve func() Rule
	name    string

	target Rule
}

// NewRecB builds a recursion cell whose target is computed lazily by
// resolve, the first time it's needed.
func NewRecB(resolve func() Rule, name string) *RecB {
	return &RecB{Base: newBase(), Resolve: resolve, name: name}
}

func (r *RecB) target_() Rule {
	if r.target == nil {
		r.target = r.Resolve()
	}
	return r.target
}

func (r *RecB) Transfer(s *Stream) Result {
	t := r.target_()
	if t == nil {
		return Fail(TokenMismatch(r.String(), s.Cursor(), "recursive rule resolved to nil"))
	}
	return s.CachedApply(t)
}

func (r *RecB) Promotes(res Result) bool {
	t := r.target_()
	if t == nil {
		return res.IsOk()
	}
	return t.Promotes(res)
}

func (r *RecB) String() string {
	if r.name != "" {
		return r.name
	}
	return "rec_b"
}

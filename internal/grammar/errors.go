package grammar

import "fmt"

// Position is a location in a grammar source file.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// CompileError is a diagnostic raised while translating grammar source
// into a rule AST (lexing, dialect parsing, or emission). It is distinct
// from rule.ParseFailure, which reports a failure of the generated
// parser against *user* input.
type CompileError struct {
	Pos     Position
	Message string
	Phase   string // "lex", "parse", "emit"
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Phase, e.Pos, e.Message)
}

// ErrorList collects every diagnostic raised while translating one
// grammar source, so the caller sees all of them instead of bailing on
// the first.
type ErrorList struct {
	Errors []*CompileError
}

func NewErrorList() *ErrorList {
	return &ErrorList{}
}

func (el *ErrorList) Add(pos Position, phase, message string) {
	el.Errors = append(el.Errors, &CompileError{Pos: pos, Message: message, Phase: phase})
}

func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

func (el *ErrorList) String() string {
	s := ""
	for _, e := range el.Errors {
		s += e.Error() + "\n"
	}
	return s
}

// Package errs defines the structured error values the reasoning engine
// returns for its non-exceptional control-flow signals (a fact not being
// present, a conflict needing the caller's attention) alongside genuine
// syntax and runtime failures. None of these are panics: every one of them
// is a normal, checkable return value, following this module's rule that
// "unresolved" is a fact about the world, not a crash.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors checked with errors.Is. Each corresponds to a named
// runtime condition from the defeasible-reasoning core.
var (
	// ErrLiteralNotInContext is returned when a ground literal has no
	// bucket in a Context at all (distinct from the bucket being empty).
	ErrLiteralNotInContext = errors.New("literal not in context")

	// ErrLiteralAlreadyInContext is returned by Context.Add when the exact
	// literal is already present; callers ignore this during saturation.
	ErrLiteralAlreadyInContext = errors.New("literal already in context")

	// ErrDuplicateValue names the duplicate-value condition (one variable
	// given two different constants). No function in this module returns
	// it: a substitution reports that case as subst.Conflict, and a
	// duplicate rule name in a policy is reported as a SyntaxError.
	ErrDuplicateValue = errors.New("duplicate value")
)

// UnresolvedConflictsError carries every rule-name pair whose priority
// could not be determined while deciding whether one rule instance defeats
// another. It is returned instead of panicking so the saturation loop can
// fold its contents into a Dilemma and continue.
type UnresolvedConflictsError struct {
	Pairs [][2]string
}

func (e *UnresolvedConflictsError) Error() string {
	return fmt.Sprintf("unresolved priority conflicts among %d rule pair(s)", len(e.Pairs))
}

// SyntaxError reports a failure to parse a policy, rule, context, or
// priority-relation document. Message quotes the offending text. Offset
// is a byte offset into the source; the parsers in internal/parser always
// set it to 0, so it does not locate the failure.
type SyntaxError struct {
	Message string
	Offset  int
	Source  string
}

func (e *SyntaxError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s: syntax error at offset %d: %s", e.Source, e.Offset, e.Message)
	}
	return fmt.Sprintf("syntax error at offset %d: %s", e.Offset, e.Message)
}

// NewSyntaxError constructs a SyntaxError for the given source label.
func NewSyntaxError(source string, offset int, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Message: fmt.Sprintf(format, args...), Offset: offset, Source: source}
}

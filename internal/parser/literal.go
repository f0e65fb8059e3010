// Package parser implements hand-rolled recursive-descent parsers for the
// small surface syntax described by the reasoning engine's literal, rule,
// context, policy, and priority-relation forms. These parsers are
// deliberately minimal: they exist so the Engine API has something that
// can turn text into Term/Literal/Rule/Context/PriorityRelation values,
// not to be a hardened, general-purpose grammar.
package parser

import (
	"regexp"
	"strings"

	"prudens/internal/errs"
	"prudens/internal/literal"
	"prudens/internal/term"
)

var (
	propositionalRe = regexp.MustCompile(`^-?(\?|!)?[a-z]\w*$`)
	folRe           = regexp.MustCompile(`^-?(\?|!)?[a-z]\w*\s*\(.+\)$`)
	variableArgRe   = regexp.MustCompile(`^[A-Z]\w*$`)
	constantArgRe   = regexp.MustCompile(`^(-?\d+(\.\d+)?|"[^"]*"|'[^']*'|[a-z]\w*)$`)
)

// ParseLiteral parses one literal, e.g. "flies(X)", "-flies(tweety)",
// "?goal(X)", "propositional_fact".
func ParseLiteral(s string) (literal.Literal, error) {
	s = strings.TrimSpace(s)

	switch {
	case propositionalRe.MatchString(s):
		return parseMarkedName(s, -1)
	case folRe.MatchString(s):
		parenPos := strings.Index(s, "(")
		lit, err := parseMarkedName(s[:parenPos], -1)
		if err != nil {
			return literal.Literal{}, err
		}
		argsStr := s[parenPos+1 : len(s)-1]
		args, err := parseArguments(s, argsStr)
		if err != nil {
			return literal.Literal{}, err
		}
		lit.Arguments = args
		return lit, nil
	default:
		return literal.Literal{}, errs.NewSyntaxError("literal", 0, "could not parse literal %q", s)
	}
}

// parseMarkedName parses the sign/goal/action prefix off of a bare name
// (no arguments yet); argsHint is unused but kept for symmetry with the
// original two-path (propositional / first-order) parse.
func parseMarkedName(s string, argsHint int) (literal.Literal, error) {
	sign := true
	rest := s
	if strings.HasPrefix(rest, "-") {
		sign = false
		rest = rest[1:]
	}
	isGoal, isAction := false, false
	if strings.HasPrefix(rest, "?") {
		isGoal = true
		rest = rest[1:]
	} else if strings.HasPrefix(rest, "!") {
		isAction = true
		rest = rest[1:]
	}
	if rest == "" {
		return literal.Literal{}, errs.NewSyntaxError("literal", 0, "empty literal name in %q", s)
	}
	return literal.Literal{Name: rest, Sign: sign, IsGoal: isGoal, IsAction: isAction}, nil
}

// parseArguments classifies each top-level argument as a Variable (bare
// capitalized name) or a Constant (integer, float, single- or
// double-quoted string, or bare lowercase entity name), matching the
// original grammar's argument forms.
func parseArguments(context, argsStr string) ([]term.Term, error) {
	parts := splitArgs(argsStr)
	args := make([]term.Term, 0, len(parts))
	for _, raw := range parts {
		arg := strings.TrimSpace(raw)
		switch {
		case variableArgRe.MatchString(arg):
			args = append(args, term.NewVariable(arg))
		case constantArgRe.MatchString(arg):
			args = append(args, term.NewConstant(arg))
		default:
			return nil, errs.NewSyntaxError("literal", 0, "invalid argument %q in %q", arg, context)
		}
	}
	return args, nil
}

// splitArgs splits on top-level commas only, ignoring commas nested inside
// parentheses (kept for forward compatibility even though this engine's
// arguments are never themselves compound terms).
func splitArgs(s string) []string {
	var parts []string
	depth := 0
	var cur strings.Builder
	for _, ch := range s {
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
		}
		if ch == ',' && depth == 0 {
			parts = append(parts, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteRune(ch)
	}
	parts = append(parts, cur.String())
	return parts
}

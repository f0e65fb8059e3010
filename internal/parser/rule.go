package parser

import (
	"regexp"
	"strings"

	"prudens/internal/errs"
	"prudens/internal/rule"
)

var ruleNameRe = regexp.MustCompile(`^[a-zA-Z]\w*$`)

// ParseRule parses "name :: lit1, lit2, … implies head" (the trailing ";"
// statement terminator, if present, is stripped by the caller that splits a
// policy body into individual rule strings).
func ParseRule(s string) (rule.Rule, error) {
	s = strings.TrimSpace(s)

	nameParts := strings.SplitN(s, "::", 2)
	if len(nameParts) != 2 {
		return rule.Rule{}, errs.NewSyntaxError("rule", 0, "rule %q is missing its '::' name separator", s)
	}
	if strings.Contains(nameParts[1], "::") {
		return rule.Rule{}, errs.NewSyntaxError("rule", 0, "rule %q has more than one '::' separator", s)
	}
	name := strings.TrimSpace(nameParts[0])
	if !ruleNameRe.MatchString(name) {
		return rule.Rule{}, errs.NewSyntaxError("rule", 0, "invalid rule name %q", name)
	}

	body := nameParts[1]
	impliesCount := strings.Count(body, "implies")
	if impliesCount == 0 {
		return rule.Rule{}, errs.NewSyntaxError("rule", 0, "rule %q is missing the 'implies' keyword", s)
	}
	if impliesCount > 1 {
		return rule.Rule{}, errs.NewSyntaxError("rule", 0, "rule %q has more than one 'implies' keyword", s)
	}

	bodyParts := strings.SplitN(body, "implies", 2)
	bodyStr := strings.TrimSpace(bodyParts[0])
	headStr := strings.TrimSpace(bodyParts[1])
	if bodyStr == "" {
		return rule.Rule{}, errs.NewSyntaxError("rule", 0, "rule %q has an empty body", s)
	}
	if headStr == "" {
		return rule.Rule{}, errs.NewSyntaxError("rule", 0, "rule %q has an empty head", s)
	}

	bodyLiterals, err := splitParenAware(bodyStr)
	if err != nil {
		return rule.Rule{}, err
	}

	r := rule.Rule{Name: name}
	for _, litStr := range bodyLiterals {
		lit, err := ParseLiteral(litStr)
		if err != nil {
			return rule.Rule{}, err
		}
		r.Body = append(r.Body, lit)
	}

	head, err := ParseLiteral(headStr)
	if err != nil {
		return rule.Rule{}, err
	}
	r.Head = head

	return r, nil
}

// splitParenAware splits s on top-level commas, respecting parenthesis
// nesting, mirroring the rule body splitter's handling of literal argument
// lists (e.g. "friends(X, Y), -enemies(Y, X)" splits into two literals, not
// four).
func splitParenAware(s string) ([]string, error) {
	var parts []string
	depth := 0
	var cur strings.Builder
	for _, ch := range s {
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, errs.NewSyntaxError("rule", 0, "unbalanced parentheses in %q", s)
			}
		}
		if ch == ',' && depth == 0 {
			parts = append(parts, strings.TrimSpace(cur.String()))
			cur.Reset()
			continue
		}
		cur.WriteRune(ch)
	}
	if depth != 0 {
		return nil, errs.NewSyntaxError("rule", 0, "unbalanced parentheses in %q", s)
	}
	parts = append(parts, strings.TrimSpace(cur.String()))
	return parts, nil
}

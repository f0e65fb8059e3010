package parser

import (
	"strings"

	"prudens/internal/errs"
	"prudens/internal/priority"
	"prudens/internal/reasoner"
	"prudens/internal/rule"
)

// Policy is a parsed, unsaturated engine: a rule set, its declaration
// order, and its priority relation, ready to be bound to a Context and
// saturated via (*reasoner.Engine).Infer.
type Policy struct {
	Rules      map[string]rule.Rule
	RuleOrder  []string
	Priorities *priority.PriorityRelation
}

// NewEngine builds a reasoner.Engine from the parsed policy.
func (p *Policy) NewEngine() *reasoner.Engine {
	return reasoner.NewEngine(p.Rules, p.RuleOrder, p.Priorities)
}

// ParsePolicy parses a "@Policy <rules> @Priorities <relation>" document.
// Rules are split on every ";" (a plain split: parentheses and quotes are
// not taken into account); duplicate rule names are a syntax error.
func ParsePolicy(source string) (*Policy, error) {
	policyIdx := strings.Index(source, "@Policy")
	prioritiesIdx := strings.Index(source, "@Priorities")
	if policyIdx == -1 {
		return nil, errs.NewSyntaxError("policy", 0, "missing '@Policy' section")
	}
	if prioritiesIdx == -1 {
		return nil, errs.NewSyntaxError("policy", 0, "missing '@Priorities' section")
	}
	if prioritiesIdx < policyIdx {
		return nil, errs.NewSyntaxError("policy", 0, "'@Priorities' must follow '@Policy'")
	}

	rulesSection := source[policyIdx+len("@Policy") : prioritiesIdx]
	prioritiesSection := source[prioritiesIdx+len("@Priorities"):]

	p := &Policy{Rules: make(map[string]rule.Rule)}

	for _, raw := range strings.Split(rulesSection, ";") {
		ruleStr := strings.TrimSpace(raw)
		if ruleStr == "" {
			continue
		}
		r, err := ParseRule(ruleStr)
		if err != nil {
			return nil, err
		}
		if _, exists := p.Rules[r.Name]; exists {
			return nil, errs.NewSyntaxError("policy", 0, "duplicate rule name %q", r.Name)
		}
		p.Rules[r.Name] = r
		p.RuleOrder = append(p.RuleOrder, r.Name)
	}
	if len(p.Rules) == 0 {
		return nil, errs.NewSyntaxError("policy", 0, "policy has no rules")
	}

	useDefault, pairs, err := ParsePriorities(prioritiesSection, p.RuleOrder)
	if err != nil {
		return nil, err
	}
	p.Priorities = priority.New(p.Rules, p.RuleOrder, pairs, useDefault)

	return p, nil
}

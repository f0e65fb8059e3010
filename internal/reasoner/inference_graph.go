// Package reasoner implements InferenceGraph (the bulk, conflict-blind
// closure of a policy's rules over a context) and Engine (the outer
// saturation loop that combines that closure with per-instance priority
// checks to compute sceptical inferences and surface dilemmas).
package reasoner

import (
	"prudens/internal/hasse"
	"prudens/internal/kb"
	"prudens/internal/literal"
	"prudens/internal/rule"
	"prudens/internal/subst"
)

// InferenceGraph computes every rule instance reachable from a context,
// ignoring priority conflicts entirely, then exposes a "consistent" view
// that shrinks as higher-priority facts get marked and prune the facts
// they conflict with.
type InferenceGraph struct {
	rules map[string]rule.Rule
	hd    *hasse.HasseDiagram

	inferredBy map[string]map[string][]*subst.Substitution
	byKey      map[string]literal.Literal

	inferences *kb.Context
	consistent *kb.Context
}

// NewInferenceGraph computes the bulk closure of rules over context
// immediately, sharing hd (the policy's Hasse diagram) with any other
// stage that walks the same rule set, since each walk exhausts and resets
// the diagram's iterator independently.
func NewInferenceGraph(rules map[string]rule.Rule, hd *hasse.HasseDiagram, context *kb.Context) *InferenceGraph {
	ig := &InferenceGraph{
		rules:      rules,
		hd:         hd,
		inferredBy: make(map[string]map[string][]*subst.Substitution),
		byKey:      make(map[string]literal.Literal),
	}
	ig.compute(context)
	return ig
}

func (ig *InferenceGraph) compute(context *kb.Context) {
	facts := context.Clone()
	inferred := true

	for inferred {
		inferred = false
		for {
			name, ok := ig.hd.Next()
			if !ok {
				break
			}
			r := ig.rules[name]
			instances := r.Trigger(facts)
			if len(instances) == 0 {
				ig.hd.UpdateLastCall(false)
				continue
			}
			ig.hd.UpdateLastCall(true)

			for _, inst := range instances {
				if err := facts.Add(inst.Head); err != nil {
					if context.Contains(inst.Head) {
						continue // a base fact, no provenance to track
					}
					ig.recordInferredBy(inst.Head, name, inst.Sub)
					continue
				}
				inferred = true
				ig.recordInferredBy(inst.Head, name, inst.Sub)
			}
		}
	}

	ig.inferences = facts
	ig.consistent = facts.Clone()
}

func (ig *InferenceGraph) recordInferredBy(lit literal.Literal, ruleName string, sub *subst.Substitution) {
	key := lit.Key()
	ig.byKey[key] = lit
	if ig.inferredBy[key] == nil {
		ig.inferredBy[key] = make(map[string][]*subst.Substitution)
	}
	ig.inferredBy[key][ruleName] = append(ig.inferredBy[key][ruleName], sub)
}

// RemoveConflictsWith shrinks the consistent view by discarding every fact
// conflicting with any literal in marked.
func (ig *InferenceGraph) RemoveConflictsWith(marked []literal.Literal) {
	ig.consistent.RemoveConflictsWith(marked)
}

// GetConsistentRules returns, for every rule with at least one instance
// still present in the consistent view, every substitution that produced
// one of those surviving instances.
func (ig *InferenceGraph) GetConsistentRules() map[string][]*subst.Substitution {
	out := make(map[string][]*subst.Substitution)
	for _, lit := range ig.consistent.All() {
		byRule, ok := ig.inferredBy[lit.Key()]
		if !ok {
			continue
		}
		for ruleName, subs := range byRule {
			out[ruleName] = append(out[ruleName], subs...)
		}
	}
	return out
}

// Inferences returns the full (conflict-blind) closure.
func (ig *InferenceGraph) Inferences() *kb.Context { return ig.inferences }

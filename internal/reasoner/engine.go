package reasoner

import (
	"prudens/internal/errs"
	"prudens/internal/hasse"
	"prudens/internal/kb"
	"prudens/internal/literal"
	"prudens/internal/logging"
	"prudens/internal/priority"
	"prudens/internal/rule"
	"prudens/internal/subst"
)

// Engine is a parsed policy (rules, priorities, and the Hasse diagram
// built over their body-signatures) bound to the results of its most
// recent Infer call. Callers requiring parallelism run one Engine per
// (policy, context) pair rather than sharing a single Engine across
// goroutines; Engine is not safe for concurrent use.
type Engine struct {
	Rules      map[string]rule.Rule
	RuleOrder  []string
	Priorities *priority.PriorityRelation

	hd *hasse.HasseDiagram

	Inferences *kb.Context
	Dilemmas   map[string]priority.Dilemma
	InferredBy map[string]map[string][]*subst.Substitution
}

// NewEngine builds an Engine from a fully parsed rule set, its
// declaration order (used by the priority relation's default mode and
// preserved for deterministic output), and its priority relation.
func NewEngine(rules map[string]rule.Rule, order []string, priorities *priority.PriorityRelation) *Engine {
	sigs := make(map[string]string, len(rules))
	for name, r := range rules {
		sigs[name] = r.Signature()
	}
	return &Engine{
		Rules:      rules,
		RuleOrder:  order,
		Priorities: priorities,
		hd:         hasse.New(sigs),
		InferredBy: make(map[string]map[string][]*subst.Substitution),
	}
}

// Infer runs the saturation loop: it builds an InferenceGraph's
// conflict-blind closure, then repeatedly marks every rule instance that
// both survives priority defeat (per Priorities.IsPrior) and isn't already
// known, feeding each new fact back into the next round, until a round
// marks nothing new or maxDepth rounds have run (a maxDepth of zero or less
// sets no bound). Unresolved conflicts accumulate as Dilemmas instead of
// aborting the round.
func (e *Engine) Infer(context *kb.Context, maxDepth int) {
	logger := logging.Get(logging.CategorySaturation)

	ig := NewInferenceGraph(e.Rules, e.hd, context)
	marked := context.Clone()
	dilemmas := make(map[string]priority.Dilemma)

	inferred := true
	depth := 0
	for inferred && (maxDepth <= 0 || depth < maxDepth) {
		inferred = false
		ig.RemoveConflictsWith(marked.All())
		inferringRules := ig.GetConsistentRules()

		for {
			name, ok := e.hd.Next()
			if !ok {
				break
			}
			subs, present := inferringRules[name]
			if !present {
				continue
			}
			r := e.Rules[name]

			for _, sub := range subs {
				if !r.IsTriggered(marked, sub) {
					e.hd.UpdateLastCall(false)
					continue
				}
				e.hd.UpdateLastCall(true)

				instance := r.Head.Substitute(sub)
				isPrior, conflictErr := e.Priorities.IsPrior(name, inferringRules, sub)
				if conflictErr != nil {
					e.recordDilemma(dilemmas, instance, conflictErr)
					isPrior = false
				}
				if !isPrior {
					continue
				}

				if err := marked.Add(instance); err != nil {
					continue // errs.ErrLiteralAlreadyInContext: nothing new
				}
				inferred = true
				e.recordInferredBy(instance, name, sub)
				logger.Debug("depth=%d inferred %s via %s", depth, instance, name)
			}
		}
		depth++
	}

	e.Inferences = marked
	e.Dilemmas = dilemmas
	logger.Info("saturation finished after %d round(s), %d inference(s), %d dilemma(s)", depth, marked.Len(), len(dilemmas))
}

func (e *Engine) recordDilemma(dilemmas map[string]priority.Dilemma, instance literal.Literal, conflictErr *errs.UnresolvedConflictsError) {
	if len(conflictErr.Pairs) == 0 {
		return
	}
	first := conflictErr.Pairs[0]
	newDilemma := priority.NewDilemma(instance, first[0], first[1])
	for _, pair := range conflictErr.Pairs[1:] {
		newDilemma.AppendConflict(pair[0], pair[1])
	}
	key := newDilemma.Literal.Key()
	if existing, ok := dilemmas[key]; ok {
		dilemmas[key] = existing.Union(newDilemma)
	} else {
		dilemmas[key] = newDilemma
	}
}

func (e *Engine) recordInferredBy(lit literal.Literal, ruleName string, sub *subst.Substitution) {
	key := lit.Key()
	if e.InferredBy[key] == nil {
		e.InferredBy[key] = make(map[string][]*subst.Substitution)
	}
	e.InferredBy[key][ruleName] = append(e.InferredBy[key][ruleName], sub)
}

// Package priority implements PriorityRelation (the defeat relation among
// conflicting rules) and Dilemma (the record of a conflict the relation
// could not resolve).
package priority

import (
	"sort"
	"strings"

	"prudens/internal/errs"
	"prudens/internal/literal"
	"prudens/internal/rule"
	"prudens/internal/subst"
)

// Pair is one explicit "Higher > Lower" declaration.
type Pair struct {
	Higher string
	Lower  string
}

// PriorityRelation resolves, for a rule conflicting with others, whether it
// is known to take precedence, is known to be defeated, or the outcome is
// an unresolved dilemma.
type PriorityRelation struct {
	ruleHeads map[string]literal.Literal
	index     map[string]int
	// priorities[[a,b]] means the rule at index a is declared prior to the
	// rule at index b.
	priorities map[[2]int]bool
	// conflicts[[a,b]] means the rules at indices a and b have conflicting
	// heads (symmetric).
	conflicts map[[2]int]bool
	isDefault bool
}

// New builds a PriorityRelation. order fixes the declaration order used
// both to index rules and, when useDefault is true, to generate the
// default priority (a later-declared rule defeats an earlier one it
// conflicts with). declared is ignored when useDefault is true.
func New(rules map[string]rule.Rule, order []string, declared []Pair, useDefault bool) *PriorityRelation {
	p := &PriorityRelation{
		ruleHeads:  make(map[string]literal.Literal, len(rules)),
		index:      make(map[string]int, len(order)),
		priorities: make(map[[2]int]bool),
		conflicts:  make(map[[2]int]bool),
		isDefault:  useDefault,
	}
	for name, r := range rules {
		p.ruleHeads[name] = r.Head
	}
	for i, name := range order {
		p.index[name] = i
	}
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			if rules[order[i]].IsConflictingWith(rules[order[j]]) {
				p.conflicts[[2]int{i, j}] = true
				p.conflicts[[2]int{j, i}] = true
				if useDefault {
					p.priorities[[2]int{j, i}] = true
				}
			}
		}
	}
	if !useDefault {
		for _, pair := range declared {
			hi, lo := p.index[pair.Higher], p.index[pair.Lower]
			if rules[pair.Higher].IsConflictingWith(rules[pair.Lower]) {
				p.priorities[[2]int{hi, lo}] = true
			}
		}
	}
	return p
}

// IsPrior decides whether rule1 takes priority over every other rule it
// actually conflicts with, given firedInstances (every other rule's fired
// substitutions this round) and mainSub (the substitution rule1 itself
// fired under). A *UnresolvedConflictsError is returned, rather than
// panicking, whenever some conflict could not be resolved either way; in
// that case the boolean result is meaningless and the caller should fold
// the error's pairs into a Dilemma instead of treating rule1 as safely
// inferred.
func (p *PriorityRelation) IsPrior(rule1 string, firedInstances map[string][]*subst.Substitution, mainSub *subst.Substitution) (bool, *errs.UnresolvedConflictsError) {
	targetHead := p.ruleHeads[rule1].Substitute(mainSub)
	ind1 := p.index[rule1]
	isPrior := true
	var unresolved [][2]string

	for rule2, subs := range firedInstances {
		if rule2 == rule1 {
			continue
		}
		actualConflict := false
		for _, sub := range subs {
			candidate := p.ruleHeads[rule2].Substitute(sub)
			if candidate.IsConflictingWith(targetHead) {
				actualConflict = true
				break
			}
		}
		if !actualConflict {
			continue
		}

		ind2 := p.index[rule2]
		if p.conflicts[[2]int{ind1, ind2}] && !p.priorities[[2]int{ind1, ind2}] && !p.priorities[[2]int{ind2, ind1}] {
			unresolved = append(unresolved, [2]string{rule1, rule2})
			isPrior = false
			continue
		}
		if !p.priorities[[2]int{ind1, ind2}] && p.priorities[[2]int{ind2, ind1}] {
			return false, nil
		}
	}

	if len(unresolved) > 0 {
		return false, &errs.UnresolvedConflictsError{Pairs: unresolved}
	}
	return isPrior, nil
}

// IsDefault reports whether p was built in default-priority mode.
func (p *PriorityRelation) IsDefault() bool { return p.isDefault }

// DeclaredPairs returns every explicit "Higher > Lower" priority currently
// recorded, for serialization; in default mode these are the generated
// later-defeats-earlier pairs rather than anything a user wrote.
func (p *PriorityRelation) DeclaredPairs() []Pair {
	names := make([]string, len(p.index))
	for name, idx := range p.index {
		names[idx] = name
	}
	var pairs []Pair
	for pair, ok := range p.priorities {
		if !ok {
			continue
		}
		pairs = append(pairs, Pair{Higher: names[pair[0]], Lower: names[pair[1]]})
	}
	return pairs
}

// Order returns the rule declaration order this relation was built with.
func (p *PriorityRelation) Order() []string {
	names := make([]string, len(p.index))
	for name, idx := range p.index {
		names[idx] = name
	}
	return names
}

func (p *PriorityRelation) String() string {
	if p.isDefault {
		return "default"
	}
	names := make([]string, len(p.index))
	for name, idx := range p.index {
		names[idx] = name
	}
	var b strings.Builder
	for pair, ok := range p.priorities {
		if !ok {
			continue
		}
		b.WriteString(names[pair[0]])
		b.WriteString(" > ")
		b.WriteString(names[pair[1]])
		b.WriteString(";\n")
	}
	return strings.TrimSpace(b.String())
}

// Dilemma records every unresolved conflict pair preventing a literal from
// being sceptically derived outright.
type Dilemma struct {
	Literal   literal.Literal // always stored with Sign == true
	Conflicts map[string]bool // set of "ruleA|ruleB" keys, order-independent
}

// NewDilemma starts a dilemma for lit (forced positive) with one conflict.
func NewDilemma(lit literal.Literal, ruleA, ruleB string) Dilemma {
	positive := lit
	positive.Sign = true
	d := Dilemma{Literal: positive, Conflicts: make(map[string]bool)}
	d.AppendConflict(ruleA, ruleB)
	return d
}

func conflictKey(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return pair[0] + "|" + pair[1]
}

// AppendConflict records one more unordered rule-name conflict pair.
func (d *Dilemma) AppendConflict(ruleA, ruleB string) {
	d.Conflicts[conflictKey(ruleA, ruleB)] = true
}

// Union returns a new Dilemma combining d's conflicts with other's.
func (d Dilemma) Union(other Dilemma) Dilemma {
	out := Dilemma{Literal: d.Literal, Conflicts: make(map[string]bool, len(d.Conflicts)+len(other.Conflicts))}
	for k := range d.Conflicts {
		out.Conflicts[k] = true
	}
	for k := range other.Conflicts {
		out.Conflicts[k] = true
	}
	return out
}

func (d Dilemma) String() string {
	keys := make([]string, 0, len(d.Conflicts))
	for k := range d.Conflicts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		rules := strings.Split(k, "|")
		parts[i] = "{" + strings.Join(rules, ", ") + "}"
	}
	return d.Literal.String() + ": [" + strings.Join(parts, ", ") + "]"
}

// Package rule implements defeasible rules: a body of literals that, when
// every one of them matches some fact in a Context under one consistent
// substitution, fires a (substituted) head instance.
package rule

import (
	"sort"
	"strings"

	"prudens/internal/kb"
	"prudens/internal/literal"
	"prudens/internal/subst"
)

// Rule is body -> head, carrying the name it is referred to by in a
// PriorityRelation.
type Rule struct {
	Name string
	Body []literal.Literal
	Head literal.Literal
}

// Instance is one way a rule fired: the ground head literal and the
// substitution that produced it.
type Instance struct {
	Head literal.Literal
	Sub  *subst.Substitution
}

// Signature is the sorted, pipe-joined signature of every body literal,
// used to place this rule in a HasseDiagram and to compare rules for
// subsumption.
func (r Rule) Signature() string {
	sigs := make([]string, len(r.Body))
	for i, lit := range r.Body {
		sigs[i] = lit.Signature()
	}
	sort.Strings(sigs)
	return strings.Join(sigs, "|")
}

// Trigger finds every way this rule's body can be matched against ctx,
// using a worklist of partial substitutions: each body literal is matched
// in turn against the context, and every match extends (or forks, if it
// matches more than one fact) the substitutions carried forward from the
// previous literal. A rule with an empty body (no preconditions) always
// fires once, with the identity substitution.
func (r Rule) Trigger(ctx *kb.Context) []Instance {
	subs := []*subst.Substitution{subst.New()}

	for _, bodyLit := range r.Body {
		var next []*subst.Substitution
		for _, partial := range subs {
			candidate := bodyLit.Substitute(partial)
			matches, err := ctx.Unify(candidate)
			if err != nil {
				continue
			}
			for _, m := range matches {
				merged, err := partial.Merge(m)
				if err != nil {
					continue
				}
				next = append(next, merged)
			}
		}
		subs = next
		if len(subs) == 0 {
			return nil
		}
	}

	instances := make([]Instance, 0, len(subs))
	for _, s := range subs {
		instances = append(instances, Instance{Head: r.Head.Substitute(s), Sub: s})
	}
	return instances
}

// IsTriggered re-validates that sub is still a valid match for this rule's
// body against ctx, used when a cached instance's underlying facts may
// have since been removed by priority defeat.
func (r Rule) IsTriggered(ctx *kb.Context, sub *subst.Substitution) bool {
	for _, bodyLit := range r.Body {
		ground := bodyLit.Substitute(sub)
		if !ground.IsGround() {
			return false
		}
		if !ctx.Contains(ground) {
			return false
		}
	}
	return true
}

// IsConflictingWith reports whether r and other's heads could conflict,
// comparing signatures rather than any one instance's bound arguments.
func (r Rule) IsConflictingWith(other Rule) bool {
	return r.Head.Negate().Signature() == other.Head.Signature()
}

// String renders r in the "name :: body implies head" surface syntax.
func (r Rule) String() string {
	var b strings.Builder
	b.WriteString(r.Name)
	b.WriteString(" :: ")
	for i, lit := range r.Body {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(lit.String())
	}
	b.WriteString(" implies ")
	b.WriteString(r.Head.String())
	return b.String()
}

package priority

import (
	"testing"

	"prudens/internal/literal"
	"prudens/internal/rule"
	"prudens/internal/subst"
	"prudens/internal/term"
)

func c(name string) term.Term { return term.NewConstant(name) }

func conflictingRules() (map[string]rule.Rule, []string) {
	rules := map[string]rule.Rule{
		"r1": {Name: "r1", Head: literal.New("flies", true, c("tweety"))},
		"r2": {Name: "r2", Head: literal.New("flies", false, c("tweety"))},
	}
	return rules, []string{"r1", "r2"}
}

func TestDefaultPriorityFavorsLaterDeclaredRule(t *testing.T) {
	rules, order := conflictingRules()
	p := New(rules, order, nil, true)

	fired := map[string][]*subst.Substitution{"r2": {subst.New()}}
	isPrior, err := p.IsPrior("r1", fired, subst.New())
	if err != nil {
		t.Fatalf("expected no unresolved conflict under default priority, got %v", err)
	}
	if isPrior {
		t.Fatalf("expected earlier-declared r1 to be defeated by later-declared r2 under default priority")
	}

	fired2 := map[string][]*subst.Substitution{"r1": {subst.New()}}
	isPrior2, err2 := p.IsPrior("r2", fired2, subst.New())
	if err2 != nil {
		t.Fatalf("expected no unresolved conflict, got %v", err2)
	}
	if !isPrior2 {
		t.Fatalf("expected later-declared r2 to dominate r1 under default priority")
	}
}

func TestExplicitPriorityOverridesDefault(t *testing.T) {
	rules, order := conflictingRules()
	p := New(rules, order, []Pair{{Higher: "r1", Lower: "r2"}}, false)

	fired := map[string][]*subst.Substitution{"r2": {subst.New()}}
	isPrior, err := p.IsPrior("r1", fired, subst.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !isPrior {
		t.Fatalf("expected r1 to dominate r2 per explicit priority declaration")
	}
}

func TestUnresolvedConflictWithNoPriorityDeclared(t *testing.T) {
	rules, order := conflictingRules()
	p := New(rules, order, nil, false)

	fired := map[string][]*subst.Substitution{"r2": {subst.New()}}
	_, err := p.IsPrior("r1", fired, subst.New())
	if err == nil {
		t.Fatalf("expected an unresolved-conflict error with no declared or default priority")
	}
	if len(err.Pairs) != 1 {
		t.Fatalf("expected exactly one unresolved pair, got %v", err.Pairs)
	}
}

func TestNonConflictingRulesNeverDilemma(t *testing.T) {
	rules := map[string]rule.Rule{
		"r1": {Name: "r1", Head: literal.New("flies", true, c("tweety"))},
		"r2": {Name: "r2", Head: literal.New("swims", true, c("tweety"))},
	}
	order := []string{"r1", "r2"}
	p := New(rules, order, nil, false)

	fired := map[string][]*subst.Substitution{"r2": {subst.New()}}
	isPrior, err := p.IsPrior("r1", fired, subst.New())
	if err != nil {
		t.Fatalf("unexpected unresolved conflict between non-conflicting rules: %v", err)
	}
	if !isPrior {
		t.Fatalf("expected r1 to be trivially prior with no real conflict")
	}
}

func TestDilemmaUnion(t *testing.T) {
	lit := literal.New("flies", true, c("tweety"))
	d1 := NewDilemma(lit, "r1", "r2")
	d2 := NewDilemma(lit, "r1", "r3")

	merged := d1.Union(d2)
	if len(merged.Conflicts) != 2 {
		t.Fatalf("expected 2 distinct conflict pairs after union, got %d", len(merged.Conflicts))
	}
}

func TestDilemmaConflictKeyIsOrderIndependent(t *testing.T) {
	lit := literal.New("flies", true, c("tweety"))
	a := NewDilemma(lit, "r1", "r2")
	b := NewDilemma(lit, "r2", "r1")
	for k := range a.Conflicts {
		if !b.Conflicts[k] {
			t.Fatalf("expected conflict key to be order-independent")
		}
	}
}

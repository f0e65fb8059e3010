package dictcodec

import (
	"testing"

	"prudens/internal/literal"
	"prudens/internal/priority"
	"prudens/internal/rule"
	"prudens/internal/term"
)

func TestTermRoundTrip(t *testing.T) {
	for _, tm := range []term.Term{term.NewVariable("X"), term.NewConstant("tweety")} {
		d := EncodeTerm(tm)
		back, err := DecodeTerm(d)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !back.Equal(tm) {
			t.Fatalf("round-trip mismatch: got %v, want %v", back, tm)
		}
	}
}

func TestLiteralRoundTrip(t *testing.T) {
	lit := literal.New("flies", false, term.NewVariable("X"))
	lit.IsGoal = true

	d := EncodeLiteral(lit)
	back, err := DecodeLiteral(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !back.Equal(lit) || back.IsGoal != lit.IsGoal {
		t.Fatalf("round-trip mismatch: got %v, want %v", back, lit)
	}
}

func TestRuleRoundTrip(t *testing.T) {
	r := rule.Rule{
		Name: "birds_fly",
		Body: []literal.Literal{literal.New("bird", true, term.NewVariable("X"))},
		Head: literal.New("flies", true, term.NewVariable("X")),
	}
	d := EncodeRule(r)
	back, err := DecodeRule(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back.Name != r.Name || back.Head.Name != r.Head.Name || len(back.Body) != len(r.Body) {
		t.Fatalf("round-trip mismatch: got %v, want %v", back, r)
	}
}

func TestPriorityRelationRoundTrip(t *testing.T) {
	rules := map[string]rule.Rule{
		"r1": {Name: "r1", Head: literal.New("a", true)},
		"r2": {Name: "r2", Head: literal.New("a", false)},
	}
	order := []string{"r1", "r2"}
	p := priority.New(rules, order, []priority.Pair{{Higher: "r2", Lower: "r1"}}, false)

	d := EncodePriorityRelation(p)
	back := DecodePriorityRelation(d, rules)

	if back.IsDefault() != p.IsDefault() {
		t.Fatalf("expected IsDefault to round-trip")
	}
	if len(back.DeclaredPairs()) != len(p.DeclaredPairs()) {
		t.Fatalf("expected declared pairs to round-trip")
	}
}

func TestMarshalProducesValidJSON(t *testing.T) {
	lit := literal.New("bird", true, term.NewConstant("tweety"))
	data, err := Marshal(EncodeLiteral(lit))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected non-empty JSON output")
	}
}

package parser

import "testing"

func TestParsePrioritiesDefault(t *testing.T) {
	useDefault, pairs, err := ParsePriorities("default", []string{"R1", "R2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !useDefault || pairs != nil {
		t.Fatalf("expected default mode with no explicit pairs")
	}
}

func TestParsePrioritiesEmptyMeansDefault(t *testing.T) {
	useDefault, _, err := ParsePriorities("  ", []string{"R1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !useDefault {
		t.Fatalf("expected empty priorities section to mean default")
	}
}

func TestParsePrioritiesExplicitPairs(t *testing.T) {
	useDefault, pairs, err := ParsePriorities("R2 > R1;", []string{"R1", "R2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if useDefault {
		t.Fatalf("expected explicit pairs to disable default mode")
	}
	if len(pairs) != 1 || pairs[0].Higher != "R2" || pairs[0].Lower != "R1" {
		t.Fatalf("got %v", pairs)
	}
}

func TestParsePrioritiesUnknownRuleIsError(t *testing.T) {
	if _, _, err := ParsePriorities("R3 > R1;", []string{"R1", "R2"}); err == nil {
		t.Fatalf("expected an error for an undeclared rule reference")
	}
}

func TestParsePrioritiesMalformedEntryIsError(t *testing.T) {
	if _, _, err := ParsePriorities("R1 >> R2;", []string{"R1", "R2"}); err == nil {
		t.Fatalf("expected an error for a malformed priority entry")
	}
}

package subst

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"prudens/internal/term"
)

func TestExtendBindsConstant(t *testing.T) {
	s := New()
	x := term.NewVariable("X")
	s2, err := s.Extend(x, term.NewConstant("tux"))
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	c, ok := s2.Lookup(x)
	if !ok || c.Value != "tux" {
		t.Fatalf("expected X bound to tux, got %v ok=%v", c, ok)
	}
	// original substitution must be unchanged (Extend returns a new value)
	if _, ok := s.Lookup(x); ok {
		t.Fatalf("expected original substitution to remain unbound")
	}
}

func TestExtendConflict(t *testing.T) {
	s := New()
	x := term.NewVariable("X")
	s2, err := s.Extend(x, term.NewConstant("tux"))
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	_, err = s2.Extend(x, term.NewConstant("waddles"))
	if err == nil {
		t.Fatalf("expected conflict error binding X to a second constant")
	}
	if _, ok := err.(Conflict); !ok {
		t.Fatalf("expected Conflict error type, got %T", err)
	}
}

func TestExtendVariableUnion(t *testing.T) {
	s := New()
	x, y := term.NewVariable("X"), term.NewVariable("Y")
	s2, err := s.Extend(x, y)
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	if !s2.AreEquivalent(x, y) {
		t.Fatalf("expected X and Y to be equivalent after binding X to Y")
	}

	s3, err := s2.Extend(y, term.NewConstant("tux"))
	if err != nil {
		t.Fatalf("Extend: %v", err)
	}
	cx, ok := s3.Lookup(x)
	if !ok || cx.Value != "tux" {
		t.Fatalf("expected X to inherit Y's binding via equivalence class, got %v ok=%v", cx, ok)
	}
}

func TestApplySubstitutesBoundVariablesOnly(t *testing.T) {
	s := New()
	x := term.NewVariable("X")
	s2, _ := s.Extend(x, term.NewConstant("tux"))
	args := []term.Term{x, term.NewVariable("Y"), term.NewConstant("const")}
	out := s2.Apply(args)
	if out[0].String() != "tux" {
		t.Fatalf("expected X substituted to tux, got %s", out[0])
	}
	if out[1].String() != "Y" {
		t.Fatalf("expected unbound Y left as-is, got %s", out[1])
	}
	if out[2].String() != "const" {
		t.Fatalf("expected constant unaffected, got %s", out[2])
	}
}

func TestIsPropositional(t *testing.T) {
	s := New()
	if !s.IsPropositional() {
		t.Fatalf("expected empty substitution to be propositional")
	}
	s2, _ := s.Extend(term.NewVariable("X"), term.NewConstant("tux"))
	if s2.IsPropositional() {
		t.Fatalf("expected bound substitution to not be propositional")
	}
}

func TestMergeCombinesDisjointBindings(t *testing.T) {
	a := New()
	a, _ = a.Extend(term.NewVariable("X"), term.NewConstant("tux"))
	b := New()
	b, _ = b.Extend(term.NewVariable("Y"), term.NewConstant("waddles"))

	merged, err := a.Merge(b)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	cx, _ := merged.Lookup(term.NewVariable("X"))
	cy, _ := merged.Lookup(term.NewVariable("Y"))
	if cx.Value != "tux" || cy.Value != "waddles" {
		t.Fatalf("expected both bindings present, got X=%v Y=%v", cx, cy)
	}
}

func TestMergeConflict(t *testing.T) {
	a := New()
	a, _ = a.Extend(term.NewVariable("X"), term.NewConstant("tux"))
	b := New()
	b, _ = b.Extend(term.NewVariable("X"), term.NewConstant("waddles"))

	if _, err := a.Merge(b); err == nil {
		t.Fatalf("expected conflict merging incompatible bindings for X")
	}
}

func TestBindingsSnapshot(t *testing.T) {
	a := New()
	a, _ = a.Extend(term.NewVariable("X"), term.NewConstant("tux"))
	a, _ = a.Extend(term.NewVariable("Y"), term.NewConstant("waddles"))

	want := map[string]term.Constant{
		"X": term.NewConstant("tux"),
		"Y": term.NewConstant("waddles"),
	}
	if diff := cmp.Diff(want, a.Bindings()); diff != "" {
		t.Fatalf("Bindings() mismatch (-want +got):\n%s", diff)
	}
}

func TestCloneIndependence(t *testing.T) {
	a := New()
	a, _ = a.Extend(term.NewVariable("X"), term.NewConstant("tux"))
	b := a.Clone()
	b, _ = b.Extend(term.NewVariable("Y"), term.NewConstant("waddles"))

	if _, ok := a.Lookup(term.NewVariable("Y")); ok {
		t.Fatalf("expected clone mutation to not affect original")
	}
}

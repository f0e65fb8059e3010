package parser

import (
	"testing"

	"prudens/internal/literal"
	"prudens/internal/term"
)

func TestParseContextBasic(t *testing.T) {
	ctx, err := ParseContext("bird(tweety); penguin(tweety);")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ctx.Contains(literal.New("bird", true, term.NewConstant("tweety"))) {
		t.Fatalf("expected bird(tweety) to be present")
	}
	if !ctx.Contains(literal.New("penguin", true, term.NewConstant("tweety"))) {
		t.Fatalf("expected penguin(tweety) to be present")
	}
}

func TestParseContextEmptyIsError(t *testing.T) {
	if _, err := ParseContext("   "); err == nil {
		t.Fatalf("expected an error for an empty context")
	}
}

func TestParseContextDuplicateIsIgnored(t *testing.T) {
	ctx, err := ParseContext("a; a;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.Len() != 1 {
		t.Fatalf("expected duplicates to collapse, got %d literals", ctx.Len())
	}
}

package parser

import (
	"strings"

	"prudens/internal/errs"
	"prudens/internal/kb"
)

// ParseContext parses "lit1; lit2; …" into a Context. A context with no
// literals at all (the empty string, once trimmed) is a syntax error: a
// context is a statement about the world, not an absence of one.
func ParseContext(source string) (*kb.Context, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, errs.NewSyntaxError("context", 0, "context source is empty")
	}

	ctx := kb.New()
	for _, raw := range strings.Split(source, ";") {
		litStr := strings.TrimSpace(raw)
		if litStr == "" {
			continue
		}
		lit, err := ParseLiteral(litStr)
		if err != nil {
			return nil, err
		}
		if err := ctx.Add(lit); err != nil && err != errs.ErrLiteralAlreadyInContext {
			return nil, err
		}
	}
	return ctx, nil
}

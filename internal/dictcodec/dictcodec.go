// Package dictcodec provides round-trippable dictionary (JSON) forms for
// the engine's core values, used by the CLI's --json output and by
// anything that needs to persist a Policy, Context, or inference result
// across process boundaries. Keys mirror the exported field names of the
// types they encode; enums such as Term's Variable/Constant distinction
// serialize as an explicit "kind" tag rather than relying on Go's JSON
// struct-shape inference.
package dictcodec

import (
	"encoding/json"
	"fmt"
	"strings"

	"prudens/internal/errs"
	"prudens/internal/kb"
	"prudens/internal/literal"
	"prudens/internal/priority"
	"prudens/internal/rule"
	"prudens/internal/subst"
	"prudens/internal/term"
)

// constantTypeNames maps term.ConstantType to its dictionary spelling, used
// for both encoding and decoding so a constant's value/type pair round-trips
// exactly instead of being re-inferred from its text.
var constantTypeNames = map[term.ConstantType]string{
	term.ConstantEntity: "entity",
	term.ConstantInt:    "int",
	term.ConstantFloat:  "float",
	term.ConstantString: "string",
}

var constantTypesByName = func() map[string]term.ConstantType {
	out := make(map[string]term.ConstantType, len(constantTypeNames))
	for k, v := range constantTypeNames {
		out[v] = k
	}
	return out
}()

// TermDict is the dictionary form of a term.Term: Kind is "variable" or
// "constant", Value is the name or the constant's literal value. Type is
// only meaningful (and only populated) when Kind is "constant".
type TermDict struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
	Type  string `json:"type,omitempty"`
}

// EncodeTerm converts t to its dictionary form.
func EncodeTerm(t term.Term) TermDict {
	switch v := t.(type) {
	case term.Variable:
		return TermDict{Kind: "variable", Value: v.Name}
	case term.Constant:
		return TermDict{Kind: "constant", Value: v.Value, Type: constantTypeNames[v.Type]}
	default:
		return TermDict{Kind: "unknown", Value: t.String()}
	}
}

// DecodeTerm reconstructs a term.Term from its dictionary form. A constant's
// Value/Type pair is rebuilt directly rather than re-parsed, so a quoted
// string and a bare entity that happen to share text don't collapse into
// the same constant on decode.
func DecodeTerm(d TermDict) (term.Term, error) {
	switch d.Kind {
	case "variable":
		return term.NewVariable(d.Value), nil
	case "constant":
		ct, ok := constantTypesByName[d.Type]
		if !ok {
			return nil, fmt.Errorf("dictcodec: unknown constant type %q", d.Type)
		}
		return term.Constant{Value: d.Value, Type: ct}, nil
	default:
		return nil, fmt.Errorf("dictcodec: unknown term kind %q", d.Kind)
	}
}

// LiteralDict is the dictionary form of a literal.Literal.
type LiteralDict struct {
	Name      string     `json:"name"`
	Sign      bool       `json:"sign"`
	IsGoal    bool       `json:"is_goal"`
	IsAction  bool       `json:"is_action"`
	Arity     int        `json:"arity"`
	Arguments []TermDict `json:"arguments"`
}

// EncodeLiteral converts l to its dictionary form.
func EncodeLiteral(l literal.Literal) LiteralDict {
	args := make([]TermDict, len(l.Arguments))
	for i, a := range l.Arguments {
		args[i] = EncodeTerm(a)
	}
	return LiteralDict{
		Name:      l.Name,
		Sign:      l.Sign,
		IsGoal:    l.IsGoal,
		IsAction:  l.IsAction,
		Arity:     l.Arity(),
		Arguments: args,
	}
}

// DecodeLiteral reconstructs a literal.Literal from its dictionary form.
func DecodeLiteral(d LiteralDict) (literal.Literal, error) {
	args := make([]term.Term, len(d.Arguments))
	for i, a := range d.Arguments {
		t, err := DecodeTerm(a)
		if err != nil {
			return literal.Literal{}, err
		}
		args[i] = t
	}
	return literal.Literal{
		Name:      d.Name,
		Sign:      d.Sign,
		IsGoal:    d.IsGoal,
		IsAction:  d.IsAction,
		Arguments: args,
	}, nil
}

// RuleDict is the dictionary form of a rule.Rule.
type RuleDict struct {
	Name string        `json:"name"`
	Body []LiteralDict `json:"body"`
	Head LiteralDict   `json:"head"`
}

// EncodeRule converts r to its dictionary form.
func EncodeRule(r rule.Rule) RuleDict {
	body := make([]LiteralDict, len(r.Body))
	for i, lit := range r.Body {
		body[i] = EncodeLiteral(lit)
	}
	return RuleDict{Name: r.Name, Body: body, Head: EncodeLiteral(r.Head)}
}

// DecodeRule reconstructs a rule.Rule from its dictionary form.
func DecodeRule(d RuleDict) (rule.Rule, error) {
	body := make([]literal.Literal, len(d.Body))
	for i, lit := range d.Body {
		decoded, err := DecodeLiteral(lit)
		if err != nil {
			return rule.Rule{}, err
		}
		body[i] = decoded
	}
	head, err := DecodeLiteral(d.Head)
	if err != nil {
		return rule.Rule{}, err
	}
	return rule.Rule{Name: d.Name, Body: body, Head: head}, nil
}

// SubstitutionDict is the dictionary form of a subst.Substitution: the
// ground bindings it carries. Variable-to-variable equivalence classes
// with no bound constant collapse during round-trip (they have no
// observable effect once no constant was ever unified with them).
type SubstitutionDict struct {
	Bindings map[string]string `json:"bindings"`
}

// EncodeSubstitution converts s to its dictionary form. Bindings are
// stored via each constant's surface form (c.String(), which re-quotes
// strings) rather than its bare Value, so DecodeSubstitution's re-parse
// recovers the original ConstantType instead of collapsing it to entity.
func EncodeSubstitution(s *subst.Substitution) SubstitutionDict {
	bindings := make(map[string]string, len(s.Bindings()))
	for name, c := range s.Bindings() {
		bindings[name] = c.String()
	}
	return SubstitutionDict{Bindings: bindings}
}

// DecodeSubstitution reconstructs a substitution from its dictionary form.
func DecodeSubstitution(d SubstitutionDict) (*subst.Substitution, error) {
	s := subst.New()
	for name, value := range d.Bindings {
		next, err := s.Extend(term.NewVariable(name), term.NewConstant(value))
		if err != nil {
			return nil, fmt.Errorf("dictcodec: %w", err)
		}
		s = next
	}
	return s, nil
}

// ContextDict is the dictionary form of a kb.Context: its literals, order
// unspecified (a Context is a set).
type ContextDict struct {
	Literals []LiteralDict `json:"literals"`
}

// EncodeContext converts c to its dictionary form.
func EncodeContext(c *kb.Context) ContextDict {
	all := c.All()
	lits := make([]LiteralDict, len(all))
	for i, lit := range all {
		lits[i] = EncodeLiteral(lit)
	}
	return ContextDict{Literals: lits}
}

// DecodeContext reconstructs a kb.Context from its dictionary form.
func DecodeContext(d ContextDict) (*kb.Context, error) {
	ctx := kb.New()
	for _, ld := range d.Literals {
		lit, err := DecodeLiteral(ld)
		if err != nil {
			return nil, err
		}
		if err := ctx.Add(lit); err != nil && err != errs.ErrLiteralAlreadyInContext {
			return nil, err
		}
	}
	return ctx, nil
}

// PriorityPairDict is one "Higher > Lower" entry.
type PriorityPairDict struct {
	Higher string `json:"higher"`
	Lower  string `json:"lower"`
}

// PriorityRelationDict is the dictionary form of a priority.PriorityRelation.
type PriorityRelationDict struct {
	IsDefault bool               `json:"is_default"`
	Order     []string           `json:"order"`
	Pairs     []PriorityPairDict `json:"pairs"`
}

// EncodePriorityRelation converts p to its dictionary form.
func EncodePriorityRelation(p *priority.PriorityRelation) PriorityRelationDict {
	declared := p.DeclaredPairs()
	pairs := make([]PriorityPairDict, len(declared))
	for i, pair := range declared {
		pairs[i] = PriorityPairDict{Higher: pair.Higher, Lower: pair.Lower}
	}
	return PriorityRelationDict{IsDefault: p.IsDefault(), Order: p.Order(), Pairs: pairs}
}

// DecodePriorityRelation reconstructs a PriorityRelation, given the rule
// set it governs (conflicts are recomputed from the rules, not trusted
// from the dictionary, since they're a derived fact about rule heads).
func DecodePriorityRelation(d PriorityRelationDict, rules map[string]rule.Rule) *priority.PriorityRelation {
	pairs := make([]priority.Pair, len(d.Pairs))
	for i, p := range d.Pairs {
		pairs[i] = priority.Pair{Higher: p.Higher, Lower: p.Lower}
	}
	return priority.New(rules, d.Order, pairs, d.IsDefault)
}

// DilemmaDict is the dictionary form of a priority.Dilemma.
type DilemmaDict struct {
	Literal   LiteralDict        `json:"literal"`
	Conflicts []PriorityPairDict `json:"conflicts"`
}

// EncodeDilemma converts d to its dictionary form.
func EncodeDilemma(d priority.Dilemma) DilemmaDict {
	var conflicts []PriorityPairDict
	for key := range d.Conflicts {
		parts := strings.SplitN(key, "|", 2)
		if len(parts) != 2 {
			continue
		}
		conflicts = append(conflicts, PriorityPairDict{Higher: parts[0], Lower: parts[1]})
	}
	return DilemmaDict{Literal: EncodeLiteral(d.Literal), Conflicts: conflicts}
}

// Marshal is a convenience wrapper for encoding any already-converted
// dictionary form to indented JSON, matching the style of the CLI's
// --json output.
func Marshal(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// Package literal implements signed, markable literals and their
// unification against one another.
package literal

import (
	"fmt"
	"strings"

	"prudens/internal/subst"
	"prudens/internal/term"
)

// Literal is a predicate application, optionally negated and marked as
// goal ("?") or action ("!"). Two literals with the same name, sign, marks
// and arity share a signature and are candidates for unification.
type Literal struct {
	Name      string
	Sign      bool // true = positive, false = negated
	IsGoal    bool // marked with "?"
	IsAction  bool // marked with "!"
	Arguments []term.Term
}

func New(name string, sign bool, args ...term.Term) Literal {
	return Literal{Name: name, Sign: sign, Arguments: args}
}

// Arity is the number of arguments; zero means propositional.
func (l Literal) Arity() int { return len(l.Arguments) }

// Signature is the string used to bucket literals in a Context and to key
// rule-body subsequence comparisons in the Hasse diagram: sign and marks
// prefix the name, suffixed by arity.
func (l Literal) Signature() string {
	var b strings.Builder
	if !l.Sign {
		b.WriteByte('-')
	}
	if l.IsGoal {
		b.WriteByte('?')
	}
	if l.IsAction {
		b.WriteByte('!')
	}
	b.WriteString(l.Name)
	fmt.Fprintf(&b, "/%d", l.Arity())
	return b.String()
}

// Negate returns a copy of l with its sign flipped; used purely as a
// comparison value for conflict detection, never mutating l in place.
func (l Literal) Negate() Literal {
	n := l
	n.Sign = !l.Sign
	return n
}

// IsConflictingWith reports whether l and other unify once one is negated,
// i.e. they could never hold simultaneously under the same ground
// substitution. This is a pure comparison: unlike flip-check-restore, no
// shared state is mutated to answer it.
func (l Literal) IsConflictingWith(other Literal) bool {
	return l.Negate().Unifies(other)
}

// Unifies reports whether Unify would succeed, without building the
// substitution.
func (l Literal) Unifies(other Literal) bool {
	_, ok := l.Unify(other)
	return ok
}

// Unify attempts to unify l against other (treating l's variables as the
// ones being solved for, matching a rule body literal against a ground
// context fact) and returns the resulting substitution.
func (l Literal) Unify(other Literal) (*subst.Substitution, bool) {
	if l.Name != other.Name || l.Sign != other.Sign || l.IsGoal != other.IsGoal ||
		l.IsAction != other.IsAction || l.Arity() != other.Arity() {
		return nil, false
	}

	s := subst.New()
	for i := range l.Arguments {
		a, b := l.Arguments[i], other.Arguments[i]
		av, aIsVar := a.(term.Variable)
		switch {
		case aIsVar:
			next, err := s.Extend(av, b)
			if err != nil {
				return nil, false
			}
			s = next
		default:
			bv, bIsVar := b.(term.Variable)
			if bIsVar {
				next, err := s.Extend(bv, a)
				if err != nil {
					return nil, false
				}
				s = next
				continue
			}
			if !a.Equal(b) {
				return nil, false
			}
		}
	}
	return s, true
}

// Substitute returns a copy of l with its arguments rewritten under s.
func (l Literal) Substitute(s *subst.Substitution) Literal {
	out := l
	out.Arguments = s.Apply(l.Arguments)
	return out
}

// IsGround reports whether every argument is a constant.
func (l Literal) IsGround() bool {
	for _, a := range l.Arguments {
		if a.IsVariable() {
			return false
		}
	}
	return true
}

// IsTruism reports whether l is the nullary positive literal "true", which
// holds against any context without a lookup.
func (l Literal) IsTruism() bool {
	return l.Sign && l.Name == "true" && l.Arity() == 0
}

// Equal reports structural equality up to consistent variable renaming:
// two literals are equal if, for each argument position, constants match
// exactly and each literal's variables first-occurrence index lines up
// with the other's (so p(X, X) equals p(Y, Y) but not p(X, Y)).
func (l Literal) Equal(other Literal) bool {
	if l.Signature() != other.Signature() {
		return false
	}
	selfIdx := make(map[string]int)
	otherIdx := make(map[string]int)
	for i := range l.Arguments {
		a, b := l.Arguments[i], other.Arguments[i]
		av, aIsVar := a.(term.Variable)
		bv, bIsVar := b.(term.Variable)
		if aIsVar != bIsVar {
			return false
		}
		if !aIsVar {
			if !a.Equal(b) {
				return false
			}
			continue
		}
		si, ok := selfIdx[av.Name]
		if !ok {
			si = i
			selfIdx[av.Name] = i
		}
		oi, ok := otherIdx[bv.Name]
		if !ok {
			oi = i
			otherIdx[bv.Name] = i
		}
		if si != oi {
			return false
		}
	}
	return true
}

// Key returns a canonical string uniquely identifying a ground literal,
// for use as a map key when tracking provenance (inferred_by) and
// dilemmas; two literals with the same Key are Equal and vice versa.
func (l Literal) Key() string {
	var b strings.Builder
	b.WriteString(l.Signature())
	for _, a := range l.Arguments {
		b.WriteByte(0)
		b.WriteString(a.String())
	}
	return b.String()
}

func (l Literal) String() string {
	var b strings.Builder
	if !l.Sign {
		b.WriteByte('-')
	}
	if l.IsGoal {
		b.WriteByte('?')
	}
	if l.IsAction {
		b.WriteByte('!')
	}
	b.WriteString(l.Name)
	if len(l.Arguments) > 0 {
		b.WriteByte('(')
		for i, a := range l.Arguments {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.String())
		}
		b.WriteByte(')')
	}
	return b.String()
}

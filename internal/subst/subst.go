// Package subst implements Substitution: a mapping from variables to
// constants plus the variable-to-variable equivalence classes discovered
// along the way, backed by a union-find structure rather than a pair of
// mirrored dictionaries (renaming one variable would otherwise require
// walking and rewriting both directions by hand, and the two sides could
// drift out of sync on deep-copy; a union-find keeps the class structure
// and its single bound constant, if any, as one invariant).
package subst

import "prudens/internal/term"

// Substitution binds variables to constants and tracks which variables are
// forced equal to one another, even before either is bound to a constant.
type Substitution struct {
	parent map[string]string       // variable name -> parent variable name (union-find)
	rank   map[string]int          // union-find rank, keyed by root name
	bound  map[string]term.Constant // root variable name -> its bound constant, if any
}

// New returns an empty substitution.
func New() *Substitution {
	return &Substitution{
		parent: make(map[string]string),
		rank:   make(map[string]int),
		bound:  make(map[string]term.Constant),
	}
}

func (s *Substitution) find(name string) string {
	parent, ok := s.parent[name]
	if !ok {
		s.parent[name] = name
		return name
	}
	if parent == name {
		return name
	}
	root := s.find(parent)
	s.parent[name] = root // path compression
	return root
}

func (s *Substitution) union(a, b string) {
	ra, rb := s.find(a), s.find(b)
	if ra == rb {
		return
	}
	ca, haveA := s.bound[ra]
	cb, haveB := s.bound[rb]

	if s.rank[ra] < s.rank[rb] {
		ra, rb = rb, ra
		ca, cb = cb, ca
		haveA, haveB = haveB, haveA
	}
	s.parent[rb] = ra
	if s.rank[ra] == s.rank[rb] {
		s.rank[ra]++
	}
	delete(s.bound, rb)
	if haveA {
		s.bound[ra] = ca
	} else if haveB {
		s.bound[ra] = cb
	}
}

// Conflict is returned by Extend when a variable is already bound to a
// constant different from the one being unified against it.
type Conflict struct {
	Variable string
	Existing term.Constant
	New      term.Constant
}

func (c Conflict) Error() string {
	return "variable " + c.Variable + " already bound to " + c.Existing.String() + ", cannot bind to " + c.New.String()
}

// Extend returns a new substitution equal to s with the additional binding
// v = t applied, or an error if that contradicts an existing binding.
// Binding a variable to another variable merges their equivalence classes;
// binding a variable to a constant records that constant for the whole
// class, failing if the class already carries a different one.
func (s *Substitution) Extend(v term.Variable, t term.Term) (*Substitution, error) {
	out := s.Clone()

	if tv, ok := t.(term.Variable); ok {
		out.union(v.Name, tv.Name)
		return out, nil
	}

	c := t.(term.Constant)
	root := out.find(v.Name)
	if existing, ok := out.bound[root]; ok {
		if !existing.Equal(c) {
			return nil, Conflict{Variable: v.Name, Existing: existing, New: c}
		}
		return out, nil
	}
	out.bound[root] = c
	return out, nil
}

// Lookup returns the constant bound to v (following its equivalence class),
// if any.
func (s *Substitution) Lookup(v term.Variable) (term.Constant, bool) {
	root := s.find(v.Name)
	c, ok := s.bound[root]
	return c, ok
}

// AreEquivalent reports whether a and b are forced equal, either directly
// or transitively through a shared binding.
func (s *Substitution) AreEquivalent(a, b term.Variable) bool {
	return s.find(a.Name) == s.find(b.Name)
}

// Apply substitutes every bound variable appearing in lit's arguments with
// its constant, leaving unbound variables (and constants) untouched.
func (s *Substitution) Apply(args []term.Term) []term.Term {
	out := make([]term.Term, len(args))
	for i, a := range args {
		v, ok := a.(term.Variable)
		if !ok {
			out[i] = a
			continue
		}
		if c, bound := s.Lookup(v); bound {
			out[i] = c
		} else {
			out[i] = a
		}
	}
	return out
}

// IsPropositional reports whether this substitution binds no variables at
// all (the identity substitution used for propositional/truism matches).
func (s *Substitution) IsPropositional() bool {
	if len(s.bound) != 0 {
		return false
	}
	for name, parent := range s.parent {
		if parent != name {
			return false
		}
	}
	return true
}

// Clone returns an independent deep copy.
func (s *Substitution) Clone() *Substitution {
	out := &Substitution{
		parent: make(map[string]string, len(s.parent)),
		rank:   make(map[string]int, len(s.rank)),
		bound:  make(map[string]term.Constant, len(s.bound)),
	}
	for k, v := range s.parent {
		out.parent[k] = v
	}
	for k, v := range s.rank {
		out.rank[k] = v
	}
	for k, v := range s.bound {
		out.bound[k] = v
	}
	return out
}

// Merge returns a new substitution that applies both s and other's
// bindings, or an error on the first conflicting constant binding. Variable
// names present in both are unioned together first.
func (s *Substitution) Merge(other *Substitution) (*Substitution, error) {
	out := s.Clone()
	for name := range other.parent {
		out.find(name) // ensure name is registered
		root := other.find(name)
		out.union(name, root)
	}
	for root, c := range other.bound {
		existingRoot := out.find(root)
		if existing, ok := out.bound[existingRoot]; ok {
			if !existing.Equal(c) {
				return nil, Conflict{Variable: root, Existing: existing, New: c}
			}
			continue
		}
		out.bound[existingRoot] = c
	}
	return out, nil
}

// Bindings returns a flat variable -> constant map for every fully bound
// variable known to this substitution, for rendering and serialization.
func (s *Substitution) Bindings() map[string]term.Constant {
	out := make(map[string]term.Constant)
	for name := range s.parent {
		if c, ok := s.Lookup(term.NewVariable(name)); ok {
			out[name] = c
		}
	}
	return out
}

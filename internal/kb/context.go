// Package kb implements Context: a hash-bucketed set of ground literals
// (Add rejects an exact duplicate), keyed by signature so that unification against a rule body
// literal only has to scan the matching bucket.
package kb

import (
	"prudens/internal/errs"
	"prudens/internal/literal"
	"prudens/internal/subst"
)

// Context holds ground facts, bucketed by literal signature.
type Context struct {
	buckets map[string][]literal.Literal
}

// New returns an empty context.
func New() *Context {
	return &Context{buckets: make(map[string][]literal.Literal)}
}

// Add inserts lit, returning errs.ErrLiteralAlreadyInContext if an
// identical literal (same signature and arguments) is already present.
func (c *Context) Add(lit literal.Literal) error {
	sig := lit.Signature()
	for _, existing := range c.buckets[sig] {
		if existing.Equal(lit) {
			return errs.ErrLiteralAlreadyInContext
		}
	}
	c.buckets[sig] = append(c.buckets[sig], lit)
	return nil
}

// Remove deletes lit from its bucket, reporting whether it was present.
func (c *Context) Remove(lit literal.Literal) bool {
	sig := lit.Signature()
	bucket := c.buckets[sig]
	for i, existing := range bucket {
		if existing.Equal(lit) {
			c.buckets[sig] = append(bucket[:i], bucket[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether an identical literal is already present.
func (c *Context) Contains(lit literal.Literal) bool {
	for _, existing := range c.buckets[lit.Signature()] {
		if existing.Equal(lit) {
			return true
		}
	}
	return false
}

// Unify returns every substitution under which goal unifies with some fact
// sharing its bucket. The literal "true" is a truism: it unifies against
// any context whatsoever via the identity substitution, without ever
// touching the bucket map. Any other propositional (zero-arity) literal
// still requires a matching fact physically present in its bucket. If the
// goal's bucket doesn't exist at all, ErrLiteralNotInContext is returned
// so callers can distinguish "no bucket" from "bucket, no match".
func (c *Context) Unify(goal literal.Literal) ([]*subst.Substitution, error) {
	if goal.IsTruism() {
		return []*subst.Substitution{subst.New()}, nil
	}

	bucket, ok := c.buckets[goal.Signature()]
	if !ok {
		return nil, errs.ErrLiteralNotInContext
	}
	if goal.Arity() == 0 {
		if len(bucket) == 0 {
			return nil, nil
		}
		return []*subst.Substitution{subst.New()}, nil
	}

	var subs []*subst.Substitution
	for _, fact := range bucket {
		if s, ok := goal.Unify(fact); ok {
			subs = append(subs, s)
		}
	}
	return subs, nil
}

// RemoveConflictsWith removes every fact conflicting with any literal in
// groundFacts (a fact in the bucket of its negated signature whose
// arguments unify with it), realizing priority
// defeat: once a higher-priority literal is marked, anything it conflicts
// with is pruned from further consideration.
func (c *Context) RemoveConflictsWith(groundFacts []literal.Literal) {
	for _, gf := range groundFacts {
		negSig := gf.Negate().Signature()
		bucket, ok := c.buckets[negSig]
		if !ok {
			continue
		}
		kept := bucket[:0]
		for _, candidate := range bucket {
			if candidate.IsConflictingWith(gf) {
				continue
			}
			kept = append(kept, candidate)
		}
		c.buckets[negSig] = kept
	}
}

// Iterator walks every literal in a Context. It is a standalone value
// returned by NewIterator, not state stored on Context itself, so that a
// caller iterating the whole knowledge base (a bulk closure pass) can, at
// the same time, run an unrelated per-instance Unify call without either
// one disturbing the other's cursor.
type Iterator struct {
	buckets    [][]literal.Literal
	bucketIdx  int
	withinIdx  int
}

// NewIterator returns a fresh iterator snapshotting the current buckets.
// Mutations to c after the iterator is created are not reflected in it.
func (c *Context) NewIterator() *Iterator {
	buckets := make([][]literal.Literal, 0, len(c.buckets))
	for _, b := range c.buckets {
		if len(b) > 0 {
			buckets = append(buckets, append([]literal.Literal(nil), b...))
		}
	}
	return &Iterator{buckets: buckets}
}

// Next returns the next literal and true, or the zero value and false once
// exhausted.
func (it *Iterator) Next() (literal.Literal, bool) {
	for it.bucketIdx < len(it.buckets) {
		bucket := it.buckets[it.bucketIdx]
		if it.withinIdx < len(bucket) {
			lit := bucket[it.withinIdx]
			it.withinIdx++
			return lit, true
		}
		it.bucketIdx++
		it.withinIdx = 0
	}
	return literal.Literal{}, false
}

// All returns every literal currently stored, order unspecified.
func (c *Context) All() []literal.Literal {
	var out []literal.Literal
	it := c.NewIterator()
	for {
		lit, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, lit)
	}
	return out
}

// Len returns the total number of literals across every bucket.
func (c *Context) Len() int {
	n := 0
	for _, b := range c.buckets {
		n += len(b)
	}
	return n
}

// Clone returns an independent deep copy.
func (c *Context) Clone() *Context {
	out := New()
	for sig, bucket := range c.buckets {
		copied := make([]literal.Literal, len(bucket))
		copy(copied, bucket)
		out.buckets[sig] = copied
	}
	return out
}

// Package hasse implements a Hasse diagram over rule body-signatures,
// ordered by order-preserving subsequence containment: signature A sits
// below signature B when A's literal signatures appear, in order, as a
// (not necessarily contiguous) subsequence of B's. The saturation loop uses
// it to avoid redundantly re-trying a more specific rule once a more
// general one covering the same ground facts has already failed to fire.
package hasse

import (
	"sort"
	"strings"
)

// RuleSignature is a rule body-signature split into its individual literal
// signatures, in the order produced by rule.Rule.Signature (sorted).
type RuleSignature struct {
	raw        string
	literalSigs []string
}

// NewRuleSignature parses a pipe-joined rule body signature.
func NewRuleSignature(signature string) RuleSignature {
	if signature == "" {
		return RuleSignature{raw: "", literalSigs: nil}
	}
	return RuleSignature{raw: signature, literalSigs: strings.Split(signature, "|")}
}

func (s RuleSignature) Len() int    { return len(s.literalSigs) }
func (s RuleSignature) String() string { return s.raw }

// IsSubsignature reports whether s's literal signatures occur as an
// order-preserving subsequence of other's: every literal of s must be
// found in other, each search resuming strictly after the previous match.
func (s RuleSignature) IsSubsignature(other RuleSignature) bool {
	startIndex := 0
	for _, lit := range s.literalSigs {
		found := -1
		for i := startIndex; i < len(other.literalSigs); i++ {
			if other.literalSigs[i] == lit {
				found = i
				break
			}
		}
		if found == -1 {
			return false
		}
		startIndex = found + 1
	}
	return true
}

// lastCall tracks the iterator's resumption point: which signature's
// rules are being walked, which index within that signature's rule list,
// and whether the most recently returned rule actually fired.
type lastCall struct {
	signature RuleSignature
	index     int
	triggered bool
}

func (lc lastCall) valid() bool { return lc.signature.Len() != 0 && lc.index > -1 }

// HasseDiagram indexes rule names by their body-signature and exposes a
// stateful, subsumption-pruning iteration protocol over them.
type HasseDiagram struct {
	nodes    map[string][]string // signature string -> rule names sharing it
	sigs     map[string]RuleSignature
	children map[string][]string // covering edges: signature -> direct supersignatures
	byLen    []string            // every node signature, sorted by literal count

	front    []string
	lastCall lastCall
}

// New builds a Hasse diagram from a set of rule names to their body
// signatures (rule.Rule.Signature()).
func New(signatures map[string]string) *HasseDiagram {
	h := &HasseDiagram{
		nodes:    make(map[string][]string),
		sigs:     make(map[string]RuleSignature),
		children: make(map[string][]string),
	}
	for name, sig := range signatures {
		h.nodes[sig] = append(h.nodes[sig], name)
		h.sigs[sig] = NewRuleSignature(sig)
	}
	h.byLen = make([]string, 0, len(h.nodes))
	for sig := range h.nodes {
		h.byLen = append(h.byLen, sig)
	}
	sort.Slice(h.byLen, func(i, j int) bool {
		li, lj := h.sigs[h.byLen[i]].Len(), h.sigs[h.byLen[j]].Len()
		if li != lj {
			return li < lj
		}
		return h.byLen[i] < h.byLen[j]
	})

	h.buildCoveringEdges()
	h.Reset()
	return h
}

// buildCoveringEdges computes the transitive-reduction (covering) edges of
// the subsignature order: a -> b exists only when a is a subsignature of b
// and there is no intermediate node c with a subsignature of c and c
// subsignature of b.
func (h *HasseDiagram) buildCoveringEdges() {
	n := len(h.byLen)
	reach := make([][]bool, n)
	for i := range reach {
		reach[i] = make([]bool, n)
	}
	for i, a := range h.byLen {
		for j, b := range h.byLen {
			if i == j {
				continue
			}
			if h.sigs[a].IsSubsignature(h.sigs[b]) {
				reach[i][j] = true
			}
		}
	}
	for i, a := range h.byLen {
		for j, b := range h.byLen {
			if i == j || !reach[i][j] {
				continue
			}
			covering := true
			for k := range h.byLen {
				if k == i || k == j {
					continue
				}
				if reach[i][k] && reach[k][j] {
					covering = false
					break
				}
			}
			if covering {
				h.children[a] = append(h.children[a], b)
			}
		}
	}
}

// Reset rewinds the iterator to the beginning.
func (h *HasseDiagram) Reset() {
	h.lastCall = lastCall{}
	h.front = append([]string(nil), h.byLen...)
}

// Next returns the next rule name to try, or ok=false once every node has
// been visited, at which point the iterator resets and is ready to be
// walked again.
func (h *HasseDiagram) Next() (string, bool) {
	if len(h.byLen) == 0 {
		return "", false
	}

	if !h.lastCall.valid() {
		sig := h.byLen[0]
		name := h.nodes[sig][0]
		h.lastCall = lastCall{signature: h.sigs[sig], index: 0, triggered: true}
		h.front = h.front[:0]
		for _, x := range h.byLen {
			if x != sig || len(h.nodes[sig]) != 1 {
				h.front = append(h.front, x)
			}
		}
		h.sortFront()
		return name, true
	}

	if !h.lastCall.triggered {
		h.pruneFront()
	}

	curSig := h.lastCall.signature.String()
	curRules := h.nodes[curSig]

	if len(h.front) == 0 && h.lastCall.index == len(curRules)-1 {
		h.Reset()
		return "", false
	}

	if h.lastCall.index < len(curRules)-1 {
		next := curRules[h.lastCall.index+1]
		h.lastCall.index++
		return next, true
	}

	sig := h.front[0]
	h.front = h.front[1:]
	h.lastCall = lastCall{signature: h.sigs[sig], index: 0, triggered: true}
	return h.nodes[sig][0], true
}

// UpdateLastCall reports whether the rule most recently returned by Next
// actually fired. A false feedback here causes Next to prune every
// signature reachable from the failed one (every strict supersignature
// still on the front) before continuing, since a more specific rule can't
// fire if a more general prerequisite of it just failed to match.
func (h *HasseDiagram) UpdateLastCall(triggered bool) {
	h.lastCall.triggered = triggered
}

func (h *HasseDiagram) sortFront() {
	sort.Slice(h.front, func(i, j int) bool {
		li, lj := h.sigs[h.front[i]].Len(), h.sigs[h.front[j]].Len()
		if li != lj {
			return li < lj
		}
		return h.front[i] < h.front[j]
	})
}

func (h *HasseDiagram) pruneFront() {
	last := h.lastCall.signature
	i := 0
	for i < len(h.front) {
		candidate := h.front[i]
		if last.IsSubsignature(h.sigs[candidate]) {
			removedBefore := h.pruneBranch(candidate, i)
			i -= removedBefore
			continue
		}
		i++
	}
}

// pruneBranch removes signature and every signature reachable from it
// (its covering-edge descendants) from the front, returning how many of
// the removed entries were at a front index strictly before fromIndex so
// the caller can keep its scan position consistent.
func (h *HasseDiagram) pruneBranch(signature string, fromIndex int) int {
	stack := []string{signature}
	seen := make(map[string]bool)
	removedBefore := 0

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		stack = append(stack, h.children[cur]...)

		for idx, x := range h.front {
			if x == cur {
				if idx < fromIndex {
					removedBefore++
				}
				h.front = append(h.front[:idx], h.front[idx+1:]...)
				break
			}
		}
	}
	return removedBefore
}

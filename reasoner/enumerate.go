package reasoner

import "iter"

// SuperSetOf returns a lazy iterator over S(c), the complete set of
// concepts c is subsumed by. The sequence is a live view over the
// context's internal map — no slice is ever copied to serve it.
func SuperSetOf(contexts []Context, c CId) iter.Seq[CId] {
	return func(yield func(CId) bool) {
		for d := range contexts[c].superSet {
			if !yield(d) {
				return
			}
		}
	}
}

// LinksOf returns a lazy iterator over the concepts linked from c via role
// r, i.e. every d such that axioms ⊨ c ⊑ ∃r.d has been derived.
func LinksOf(contexts []Context, c CId, r RId) iter.Seq[CId] {
	return func(yield func(CId) bool) {
		lm := contexts[c].linkMap
		if int(r) >= len(lm) || lm[r] == nil {
			return
		}
		for d := range lm[r] {
			if !yield(d) {
				return
			}
		}
	}
}

// InferredSuperSetOf returns a lazy iterator over S(c) \ {c, TOP}, the
// concepts that are strict, non-trivial inferred super-concepts of c.
func InferredSuperSetOf(contexts []Context, c CId) iter.Seq[CId] {
	return func(yield func(CId) bool) {
		for d := range contexts[c].superSet {
			if d == c || d == TOP {
				continue
			}
			if !yield(d) {
				return
			}
		}
	}
}

// CountInferred returns Σ over c ∉ {TOP, BOTTOM} of |S(c) \ {c, TOP}|, the
// total number of non-trivial inferred subsumptions across the classified
// ontology.
func CountInferred(contexts []Context) int {
	total := 0
	for c := CId(2); c < CId(len(contexts)); c++ {
		n := contexts[c].Len() - 2 // exclude c itself and TOP
		if n > 0 {
			total += n
		}
	}
	return total
}

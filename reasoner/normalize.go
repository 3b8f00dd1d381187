package reasoner

import (
	"github.com/elsat/elsat/ontology"
)

// Normalize converts a parsed ontology into a SymbolTable and AxiomStore
// suitable for EL saturation. It extracts every axiom from the parsed
// terms and normalizes it into the four canonical forms CR1–CR4 consume.
// Role typedefs carrying is_transitive/is_reflexive markers are recorded
// on the ontology model but deliberately dropped here: role hierarchies
// and transitivity are out of scope for this core.
func Normalize(ont *ontology.Ontology) (*SymbolTable, *AxiomStore) {
	st := NewSymbolTable()

	// First pass: register every named concept and role id up front so the
	// store can be allocated for all of them in one shot; fresh concepts
	// minted later are covered by Grow.
	for i := range ont.Terms {
		t := &ont.Terms[i]
		if t.IsObsolete {
			continue
		}
		st.InternConcept(t.ID)
		for _, rel := range t.Relationships {
			if rel.Type != "is_a" {
				st.InternRole(rel.Type)
			}
			st.InternConcept(rel.TargetID)
		}
		for _, part := range t.IntersectionOf {
			if part.Relationship != "" {
				st.InternRole(part.Relationship)
			}
			st.InternConcept(part.TargetID)
		}
	}
	for i := range ont.TypeDefs {
		st.InternRole(ont.TypeDefs[i].ID)
	}

	store := NewAxiomStore(st.ConceptCount(), st.RoleCount())

	for i := range ont.Terms {
		t := &ont.Terms[i]
		if t.IsObsolete {
			continue
		}
		cid := st.InternConcept(t.ID)

		for _, rel := range t.Relationships {
			targetID := st.InternConcept(rel.TargetID)

			if rel.Type == "is_a" {
				// NF1: C ⊑ Target
				store.AddSubsumption(cid, targetID)
			} else {
				// NF3: C ⊑ ∃R.Target
				rid := st.InternRole(rel.Type)
				store.AddExistRight(cid, rid, targetID)
			}
		}

		// intersection_of decomposes an equivalentClass axiom:
		//   C ≡ A₁ ⊓ A₂ ⊓ ... ⊓ ∃R.B ⊓ ...
		// normalizeIntersection adds only the reverse direction:
		// conjunct₁ ⊓ conjunct₂ ⊓ ... ⊑ C. The forward direction (C ⊑ each
		// conjunct) is not derived from intersection_of; it holds only where
		// the term's own is_a/relationship lines above assert it.
		if len(t.IntersectionOf) > 0 {
			normalizeIntersection(st, store, cid, t.IntersectionOf)
		}
	}

	// Grow the store to cover any fresh concepts minted during
	// normalizeIntersection's binary conjunction decomposition.
	store.Grow(st.ConceptCount())
	store.GrowRoles(st.RoleCount())

	return st, store
}

// normalizeIntersection handles intersection_of axioms (equivalence
// decomposition). For a plain class conjunct it reuses the conjunct's own
// id; for a differentia (∃R.F) it introduces a fresh concept X via NF4
// (∃R.F ⊑ X) and folds X into the conjunction instead.
func normalizeIntersection(st *SymbolTable, store *AxiomStore, cid CId, parts []ontology.IntersectionPart) {
	conjuncts := make([]CId, 0, len(parts))

	for _, part := range parts {
		if part.Relationship == "" {
			conjuncts = append(conjuncts, st.InternConcept(part.TargetID))
			continue
		}
		rid := st.InternRole(part.Relationship)
		fill := st.InternConcept(part.TargetID)
		fresh := st.FreshConcept()
		store.Grow(st.ConceptCount())
		store.AddExistLeft(rid, fill, fresh)
		conjuncts = append(conjuncts, fresh)
	}

	if len(conjuncts) == 0 {
		return
	}
	if len(conjuncts) == 1 {
		store.AddSubsumption(conjuncts[0], cid)
		return
	}

	// Binary decomposition: ((c0 ⊓ c1) ⊓ c2) ⊓ ... ⊑ C, introducing fresh
	// intermediate concepts for every step but the last.
	acc := conjuncts[0]
	for i := 1; i < len(conjuncts); i++ {
		var result CId
		if i == len(conjuncts)-1 {
			result = cid
		} else {
			result = st.FreshConcept()
			store.Grow(st.ConceptCount())
		}
		store.AddConjunction(acc, conjuncts[i], result)
		acc = result
	}
}

package reasoner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elsat/elsat/ontology"
)

func TestNormalize_IsARelationship(t *testing.T) {
	ont := &ontology.Ontology{
		Terms: []ontology.Term{
			{ID: "A", Relationships: []ontology.Relationship{{Type: "is_a", TargetID: "B"}}},
			{ID: "B"},
		},
	}

	st, store := Normalize(ont)
	a, b := st.InternConcept("A"), st.InternConcept("B")

	require.Less(t, int(a), len(store.subToSups))
	assert.Contains(t, store.subToSups[a], b)
}

func TestNormalize_RoleRelationship(t *testing.T) {
	ont := &ontology.Ontology{
		Terms: []ontology.Term{
			{ID: "A", Relationships: []ontology.Relationship{{Type: "part_of", TargetID: "B"}}},
			{ID: "B"},
		},
	}

	st, store := Normalize(ont)
	a, b := st.InternConcept("A"), st.InternConcept("B")
	r := st.InternRole("part_of")

	assert.Equal(t, []RoleFiller{{Role: r, Fill: b}}, store.existRight[a])
}

func TestNormalize_IntersectionOfPlainConjunction(t *testing.T) {
	// B ⊓ C ⊑ A, and X ⊑ B, X ⊑ C — X should derive A.
	ont := &ontology.Ontology{
		Terms: []ontology.Term{
			{ID: "A", IntersectionOf: []ontology.IntersectionPart{
				{TargetID: "B"},
				{TargetID: "C"},
			}},
			{ID: "B"},
			{ID: "C"},
			{ID: "X", Relationships: []ontology.Relationship{
				{Type: "is_a", TargetID: "B"},
				{Type: "is_a", TargetID: "C"},
			}},
		},
	}

	st, store := Normalize(ont)
	a, x := st.InternConcept("A"), st.InternConcept("X")

	contexts, _ := Saturate(store, st.ConceptCount(), st.RoleCount())

	require.NotNil(t, store.conjIndex[st.InternConcept("B")])
	assert.True(t, contexts[x].HasSuper(a))
}

func TestNormalize_IntersectionOfWithDifferentia(t *testing.T) {
	// B ⊓ ∃has_part.C ⊑ A, and X ⊑ B, X ⊑ ∃has_part.C — X should derive A.
	ont := &ontology.Ontology{
		Terms: []ontology.Term{
			{ID: "A", IntersectionOf: []ontology.IntersectionPart{
				{TargetID: "B"},
				{Relationship: "has_part", TargetID: "C"},
			}},
			{ID: "B"},
			{ID: "C"},
			{ID: "X", Relationships: []ontology.Relationship{
				{Type: "is_a", TargetID: "B"},
				{Type: "has_part", TargetID: "C"},
			}},
		},
	}

	st, store := Normalize(ont)
	a, x := st.InternConcept("A"), st.InternConcept("X")

	contexts, _ := Saturate(store, st.ConceptCount(), st.RoleCount())

	assert.True(t, contexts[x].HasSuper(a))
}

func TestNormalize_SkipsObsoleteTerms(t *testing.T) {
	ont := &ontology.Ontology{
		Terms: []ontology.Term{
			{ID: "A", IsObsolete: true, Relationships: []ontology.Relationship{{Type: "is_a", TargetID: "B"}}},
			{ID: "B"},
		},
	}

	st, store := Normalize(ont)
	a := st.InternConcept("A")
	assert.Empty(t, store.subToSups[a])
}

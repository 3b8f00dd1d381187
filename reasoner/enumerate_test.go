package reasoner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuperSetOf_LazyIteration(t *testing.T) {
	st, store := buildStore(t, 0)
	a, b, c := cid(t, st, "A"), cid(t, st, "B"), cid(t, st, "C")
	store.AddSubsumption(a, b)
	store.AddSubsumption(b, c)

	contexts, _ := Saturate(store, st.ConceptCount(), st.RoleCount())

	seen := map[CId]bool{}
	for d := range SuperSetOf(contexts, a) {
		seen[d] = true
	}
	assert.True(t, seen[a])
	assert.True(t, seen[TOP])
	assert.True(t, seen[b])
	assert.True(t, seen[c])
}

func TestSuperSetOf_EarlyStopHonored(t *testing.T) {
	st, store := buildStore(t, 0)
	a := cid(t, st, "A")
	contexts, _ := Saturate(store, st.ConceptCount(), st.RoleCount())

	count := 0
	for range SuperSetOf(contexts, a) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestInferredSuperSetOf_ExcludesSelfAndTop(t *testing.T) {
	st, store := buildStore(t, 0)
	a, b := cid(t, st, "A"), cid(t, st, "B")
	store.AddSubsumption(a, b)

	contexts, _ := Saturate(store, st.ConceptCount(), st.RoleCount())

	var got []CId
	for d := range InferredSuperSetOf(contexts, a) {
		got = append(got, d)
	}
	assert.Equal(t, []CId{b}, got)
}

func TestLinksOf(t *testing.T) {
	st, store := buildStore(t, 1)
	a, b := cid(t, st, "A"), cid(t, st, "B")
	r := rid(t, st, "r")
	store.AddExistRight(a, r, b)

	contexts, _ := Saturate(store, st.ConceptCount(), st.RoleCount())

	var targets []CId
	for d := range LinksOf(contexts, a, r) {
		targets = append(targets, d)
	}
	assert.Equal(t, []CId{b}, targets)
}

func TestCountInferred(t *testing.T) {
	st, store := buildStore(t, 0)
	a, b, c := cid(t, st, "A"), cid(t, st, "B"), cid(t, st, "C")
	store.AddSubsumption(a, b)
	store.AddSubsumption(b, c)

	contexts, _ := Saturate(store, st.ConceptCount(), st.RoleCount())

	// S(A) \ {A, TOP} = {B, C} (2); S(B) \ {B, TOP} = {C} (1); nothing else.
	assert.Equal(t, 3, CountInferred(contexts))
}

// Package taxonomy extracts the direct subsumption hierarchy from a
// saturated reasoner run and renders it for the CLI's output surface.
//
// Saturation gives every concept its complete closure of inferred
// super-concepts, which is far larger than what a human-facing
// classification report needs: a concept's immediate taxonomic parents.
// Build performs a transitive reduction over the frozen contexts
// to recover exactly that, the way the reference classification pipeline
// this spec is drawn from does.
package taxonomy

import (
	"encoding/json"
	"io"
	"time"

	"github.com/elsat/elsat/reasoner"
)

// Taxonomy holds the classified hierarchy after transitive reduction.
type Taxonomy struct {
	DirectParents  [][]reasoner.CId
	DirectChildren [][]reasoner.CId
}

// Build extracts the direct (non-redundant) subsumption hierarchy from
// saturated contexts: b is a direct parent of c iff b ∈ S(c) and no other
// candidate parent of c is itself subsumed by b.
func Build(contexts []reasoner.Context, st *reasoner.SymbolTable) *Taxonomy {
	n := st.ConceptCount()
	tax := &Taxonomy{
		DirectParents:  make([][]reasoner.CId, n),
		DirectChildren: make([][]reasoner.CId, n),
	}

	for c := reasoner.CId(2); c < reasoner.CId(n); c++ {
		if contexts[c].Len() == 0 {
			continue
		}

		candidates := make([]reasoner.CId, 0, contexts[c].Len())
		hasTop := false
		for s := range reasoner.SuperSetOf(contexts, c) {
			switch {
			case s == c:
				continue
			case s == reasoner.TOP:
				hasTop = true
				continue
			case s == reasoner.BOTTOM:
				continue
			default:
				candidates = append(candidates, s)
			}
		}

		direct := make([]reasoner.CId, 0, 4)
		for _, b := range candidates {
			isDirect := true
			for _, s := range candidates {
				if s == b {
					continue
				}
				if contexts[s].HasSuper(b) {
					isDirect = false
					break
				}
			}
			if isDirect {
				direct = append(direct, b)
			}
		}

		if len(direct) == 0 && hasTop {
			direct = append(direct, reasoner.TOP)
		}

		tax.DirectParents[c] = direct
		for _, p := range direct {
			tax.DirectChildren[p] = append(tax.DirectChildren[p], c)
		}
	}

	return tax
}

// ClassifiedConcept represents a concept in the classified hierarchy.
type ClassifiedConcept struct {
	ID             string   `json:"id"`
	DirectParents  []string `json:"direct_parents"`
	DirectChildren []string `json:"direct_children,omitempty"`
	Unsatisfiable  bool     `json:"unsatisfiable,omitempty"`
}

// Stats holds timing and size metrics for a classification run.
type Stats struct {
	ConceptCount         int   `json:"concept_count"`
	RoleCount            int   `json:"role_count"`
	InferredSubsumptions int   `json:"inferred_subsumptions"`
	SuperWorkItems       int   `json:"super_work_items"`
	LinkWorkItems        int   `json:"link_work_items"`
	ParseTimeMs          int64 `json:"parse_time_ms"`
	NormalizeTimeMs      int64 `json:"normalize_time_ms"`
	SaturateTimeMs       int64 `json:"saturate_time_ms"`
	ReductionTimeMs      int64 `json:"reduction_time_ms"`
	TotalTimeMs          int64 `json:"total_time_ms"`
}

// ClassifiedHierarchy is the top-level JSON output.
type ClassifiedHierarchy struct {
	Concepts []ClassifiedConcept `json:"concepts"`
	Stats    Stats               `json:"stats"`
}

// ToJSON converts the taxonomy to a ClassifiedHierarchy. Only named
// concepts (i.e. not fresh, anonymous ones minted during normalization)
// are emitted.
func (tax *Taxonomy) ToJSON(contexts []reasoner.Context, st *reasoner.SymbolTable, stats Stats) *ClassifiedHierarchy {
	result := &ClassifiedHierarchy{Stats: stats}
	result.Stats.InferredSubsumptions = reasoner.CountInferred(contexts)

	for c := reasoner.CId(2); c < reasoner.CId(st.ConceptCount()); c++ {
		if st.IsAnonymous(c) {
			continue
		}

		cc := ClassifiedConcept{
			ID:            st.ConceptName(c),
			DirectParents: make([]string, 0, len(tax.DirectParents[c])),
			Unsatisfiable: contexts[c].HasSuper(reasoner.BOTTOM),
		}

		for _, p := range tax.DirectParents[c] {
			if !st.IsAnonymous(p) {
				cc.DirectParents = append(cc.DirectParents, st.ConceptName(p))
			}
		}

		if len(tax.DirectChildren[c]) > 0 {
			cc.DirectChildren = make([]string, 0, len(tax.DirectChildren[c]))
			for _, ch := range tax.DirectChildren[c] {
				if !st.IsAnonymous(ch) {
					cc.DirectChildren = append(cc.DirectChildren, st.ConceptName(ch))
				}
			}
		}

		result.Concepts = append(result.Concepts, cc)
	}

	return result
}

// WriteJSON writes the classified hierarchy as JSON.
func WriteJSON(w io.Writer, hierarchy *ClassifiedHierarchy, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(hierarchy)
}

// MakeStats assembles a Stats from per-phase durations and driver counters.
func MakeStats(st *reasoner.SymbolTable, saturateStats reasoner.Stats, parseTime, normTime, satTime, redTime time.Duration) Stats {
	total := parseTime + normTime + satTime + redTime
	return Stats{
		ConceptCount:    st.ConceptCount() - 2, // exclude TOP and BOTTOM
		RoleCount:       st.RoleCount(),
		SuperWorkItems:  saturateStats.SuperItems,
		LinkWorkItems:   saturateStats.LinkItems,
		ParseTimeMs:     parseTime.Milliseconds(),
		NormalizeTimeMs: normTime.Milliseconds(),
		SaturateTimeMs:  satTime.Milliseconds(),
		ReductionTimeMs: redTime.Milliseconds(),
		TotalTimeMs:     total.Milliseconds(),
	}
}

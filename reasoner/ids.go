// Package reasoner implements the EL-fragment saturation engine: the
// axiom store, per-concept contexts, the worklist-driven completion-rule
// driver, and the query interface consumed after a classification run.
package reasoner

// CId is a dense, non-negative integer identifier for a named concept.
type CId uint32

// RId is a dense, non-negative integer identifier for a named role.
type RId uint32

const (
	// TOP is the universal concept: every individual belongs to it.
	TOP CId = 0
	// BOTTOM is the unsatisfiable concept: no individual belongs to it.
	BOTTOM CId = 1
)

// internTable assigns dense, monotonically increasing identifiers to
// strings, in first-seen order. Concepts and roles both need exactly this
// behavior, so SymbolTable holds one of each instead of duplicating the
// map/slice pair per kind.
type internTable[ID ~uint32] struct {
	byName map[string]ID
	byID   []string
}

func newInternTable[ID ~uint32](capacity int) *internTable[ID] {
	return &internTable[ID]{
		byName: make(map[string]ID, capacity),
		byID:   make([]string, 0, capacity),
	}
}

func (t *internTable[ID]) intern(name string) ID {
	if id, ok := t.byName[name]; ok {
		return id
	}
	id := ID(len(t.byID))
	t.byName[name] = id
	t.byID = append(t.byID, name)
	return id
}

// reserve pre-seeds name at a fixed id rather than the next free one, used
// for TOP/BOTTOM's fixed positions at construction time.
func (t *internTable[ID]) reserve(id ID, name string) {
	for ID(len(t.byID)) <= id {
		t.byID = append(t.byID, "")
	}
	t.byID[id] = name
	t.byName[name] = id
}

// fresh allocates an anonymous identifier with no name, used by the
// normalizer to mint intermediate conjunction concepts.
func (t *internTable[ID]) fresh() ID {
	id := ID(len(t.byID))
	t.byID = append(t.byID, "")
	return id
}

func (t *internTable[ID]) name(id ID) string {
	if int(id) < len(t.byID) {
		return t.byID[id]
	}
	return ""
}

func (t *internTable[ID]) count() int { return len(t.byID) }

// SymbolTable interns concept and role names into dense identifiers.
// TOP and BOTTOM are pre-registered at construction.
type SymbolTable struct {
	concepts *internTable[CId]
	roles    *internTable[RId]
}

// NewSymbolTable allocates a table with TOP/BOTTOM pre-interned.
func NewSymbolTable() *SymbolTable {
	concepts := newInternTable[CId](1024)
	concepts.reserve(TOP, "owl:Thing")
	concepts.reserve(BOTTOM, "owl:Nothing")

	return &SymbolTable{
		concepts: concepts,
		roles:    newInternTable[RId](16),
	}
}

// InternConcept returns the CId for name, creating one if it is new.
func (st *SymbolTable) InternConcept(name string) CId { return st.concepts.intern(name) }

// InternRole returns the RId for name, creating one if it is new.
func (st *SymbolTable) InternRole(name string) RId { return st.roles.intern(name) }

// ConceptCount returns the number of interned concepts, including TOP/BOTTOM.
func (st *SymbolTable) ConceptCount() int { return st.concepts.count() }

// RoleCount returns the number of interned roles.
func (st *SymbolTable) RoleCount() int { return st.roles.count() }

// ConceptName returns the interned name for id, or "" if id is out of range
// or anonymous (see FreshConcept).
func (st *SymbolTable) ConceptName(id CId) string { return st.concepts.name(id) }

// RoleName returns the interned name for id, or "" if id is out of range.
func (st *SymbolTable) RoleName(id RId) string { return st.roles.name(id) }

// FreshConcept allocates an anonymous concept identifier, used by the
// normalizer to name intermediate conjunctions. It has no name.
func (st *SymbolTable) FreshConcept() CId { return st.concepts.fresh() }

// IsAnonymous reports whether id was minted by FreshConcept rather than
// interned from a source ontology name. Anonymous concepts exist only to
// carry intermediate conjunction structure and are never surfaced in
// classified output.
func (st *SymbolTable) IsAnonymous(id CId) bool {
	return int(id) < len(st.concepts.byID) && st.concepts.byID[id] == ""
}

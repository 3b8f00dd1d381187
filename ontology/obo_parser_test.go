package ontology

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOBO = `format-version: 1.2
data-version: test-release
ontology: test

[Term]
id: TST:0001
name: root
namespace: test_namespace

[Term]
id: TST:0002
name: child
def: "a child concept" [TST:ref]
synonym: "kid" EXACT []
is_a: TST:0001 ! root
relationship: part_of TST:0001 ! root

[Term]
id: TST:0003
name: obsolete one
is_obsolete: true

[Term]
id: TST:0004
name: conjunct
intersection_of: TST:0001
intersection_of: part_of TST:0002 ! child

[Typedef]
id: part_of
name: part of
is_transitive: true
`

func TestParseOBO_Header(t *testing.T) {
	ont, err := ParseOBO(strings.NewReader(sampleOBO))
	require.NoError(t, err)

	assert.Equal(t, "1.2", ont.FormatVersion)
	assert.Equal(t, "test-release", ont.DataVersion)
	assert.Equal(t, "test", ont.Ontology)
}

func TestParseOBO_Terms(t *testing.T) {
	ont, err := ParseOBO(strings.NewReader(sampleOBO))
	require.NoError(t, err)

	require.Len(t, ont.Terms, 4)

	root := ont.Terms[0]
	assert.Equal(t, "TST:0001", root.ID)
	assert.Equal(t, "root", root.Name)

	child := ont.Terms[1]
	assert.Equal(t, "a child concept", child.Definition)
	require.Len(t, child.Synonyms, 1)
	assert.Equal(t, "kid", child.Synonyms[0].Text)
	assert.Equal(t, "EXACT", child.Synonyms[0].Scope)
	require.Len(t, child.Relationships, 2)
	assert.Equal(t, "is_a", child.Relationships[0].Type)
	assert.Equal(t, "TST:0001", child.Relationships[0].TargetID)
	assert.Equal(t, "part_of", child.Relationships[1].Type)
}

func TestParseOBO_ObsoleteFlag(t *testing.T) {
	ont, err := ParseOBO(strings.NewReader(sampleOBO))
	require.NoError(t, err)

	assert.True(t, ont.Terms[2].IsObsolete)
}

func TestParseOBO_IntersectionOf(t *testing.T) {
	ont, err := ParseOBO(strings.NewReader(sampleOBO))
	require.NoError(t, err)

	conjunct := ont.Terms[3]
	require.Len(t, conjunct.IntersectionOf, 2)
	assert.Equal(t, "TST:0001", conjunct.IntersectionOf[0].TargetID)
	assert.Empty(t, conjunct.IntersectionOf[0].Relationship)
	assert.Equal(t, "part_of", conjunct.IntersectionOf[1].Relationship)
	assert.Equal(t, "TST:0002", conjunct.IntersectionOf[1].TargetID)
}

func TestParseOBO_Typedef(t *testing.T) {
	ont, err := ParseOBO(strings.NewReader(sampleOBO))
	require.NoError(t, err)

	require.Len(t, ont.TypeDefs, 1)
	td := ont.TypeDefs[0]
	assert.Equal(t, "part_of", td.ID)
	assert.True(t, td.IsTransitive)
	assert.False(t, td.IsReflexive)
}

func TestParseOBO_EmptyInput(t *testing.T) {
	ont, err := ParseOBO(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, ont.Terms)
}

const sampleOBOUnsupported = `[Term]
id: TST:0005
name: has outside-fragment axioms
union_of: TST:0001
union_of: TST:0002 ! child
disjoint_from: TST:0003 ! obsolete one
`

func TestParseOBO_UnsupportedAxioms(t *testing.T) {
	ont, err := ParseOBO(strings.NewReader(sampleOBOUnsupported))
	require.NoError(t, err)

	require.Len(t, ont.Terms, 1)
	term := ont.Terms[0]
	require.Len(t, term.Unsupported, 3)
	assert.Equal(t, "union_of:TST:0001", term.Unsupported[0])
	assert.Equal(t, "union_of:TST:0002", term.Unsupported[1])
	assert.Equal(t, "disjoint_from:TST:0003", term.Unsupported[2])
	assert.Equal(t, 3, ont.UnsupportedCount())
}

func TestParseOBO_NoUnsupportedAxiomsOnPlainTerm(t *testing.T) {
	ont, err := ParseOBO(strings.NewReader(sampleOBO))
	require.NoError(t, err)
	assert.Zero(t, ont.UnsupportedCount())
}

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOBO = `format-version: 1.2
ontology: test

[Term]
id: TST:0001
name: root

[Term]
id: TST:0002
name: child
is_a: TST:0001 ! root
`

func TestRunClassify_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sample.obo")
	require.NoError(t, os.WriteFile(input, []byte(testOBO), 0o644))

	output := filepath.Join(dir, "out.json")
	opts := &classifyOptions{input: input, format: "auto", output: output}

	cmd := newClassifyCmd()
	cmd.SetArgs(nil)
	err := runClassify(cmd, opts)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"TST:0002"`)
	assert.Contains(t, string(data), `"direct_parents":["TST:0001"]`)
}

func TestRunClassify_MissingInput(t *testing.T) {
	opts := &classifyOptions{}
	cmd := newClassifyCmd()
	err := runClassify(cmd, opts)
	assert.Error(t, err)
}

func TestRunClassify_UnknownFormat(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sample.unknown")
	require.NoError(t, os.WriteFile(input, []byte(testOBO), 0o644))

	opts := &classifyOptions{input: input, format: "auto"}
	cmd := newClassifyCmd()
	err := runClassify(cmd, opts)
	assert.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, "obo", detectFormat("x.obo", "auto"))
	assert.Equal(t, "owl", detectFormat("x.owl", "auto"))
	assert.Equal(t, "owl", detectFormat("x.rdf", "auto"))
	assert.Equal(t, "", detectFormat("x.unknown", "auto"))
	assert.Equal(t, "owl", detectFormat("x.obo", "owl"))
}

func TestVersionCmd_PrintsVersion(t *testing.T) {
	cmd := newVersionCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "dev\n", buf.String())
}

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/graphnest/pkg/document"
	"github.com/matzehuels/graphnest/pkg/errors"
	"github.com/matzehuels/graphnest/pkg/observability"
)

const etlDoc = `{
  "name": "etl",
  "items": [
    {"id": "etl", "kind": "container", "width": 300, "height": 150},
    {"id": "fetch", "width": 200, "height": 100, "container": "etl"},
    {"id": "parse", "width": 200, "height": 100, "container": "etl"},
    {"id": "store", "width": 200, "height": 100}
  ],
  "edges": [
    {"from": "fetch", "to": "parse"},
    {"from": "etl", "to": "store"}
  ]
}`

// runCLI executes the root command with args and returns status output and logs.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(observability.Reset)

	var out, logs bytes.Buffer
	prev := stdout
	stdout = &out
	t.Cleanup(func() { stdout = prev })

	c := New(&logs, log.DebugLevel)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.ExecuteContext(context.Background())
	return out.String(), logs.String(), err
}

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCommand(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"layout", "levels", "validate", "inspect", "serve", "schema", "completion"} {
		assert.Contains(t, names, want)
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestDefaultOutputPath(t *testing.T) {
	assert.Equal(t, "dir/graph.layout.json", defaultOutputPath("dir/graph.json"))
	assert.Equal(t, "graph.layout.toml", defaultOutputPath("graph.toml"))
}

func TestLayoutCommand(t *testing.T) {
	in := writeDoc(t, "etl.json", etlDoc)

	out, logs, err := runCLI(t, "layout", in)
	require.NoError(t, err)
	assert.Contains(t, out, "Layout complete")
	assert.Contains(t, logs, "imported document")

	doc, err := document.ReadFile(context.Background(), defaultOutputPath(in))
	require.NoError(t, err)
	require.Len(t, doc.Items, 4)

	byID := itemIndex(doc)
	assert.Equal(t, 0.0, byID["fetch"].X)
	assert.Equal(t, 300.0, byID["parse"].X)
	require.NotNil(t, byID["etl"].Bounds)
	assert.Equal(t, 700.0, byID["etl"].Bounds.Width)
}

func TestLayoutCommandOutputFlag(t *testing.T) {
	in := writeDoc(t, "etl.json", etlDoc)
	target := filepath.Join(filepath.Dir(in), "out.toml")

	_, _, err := runCLI(t, "layout", in, "-o", target)
	require.NoError(t, err)

	doc, err := document.ReadFile(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, "etl", doc.Name)
}

func TestLayoutCommandConfig(t *testing.T) {
	in := writeDoc(t, "etl.json", etlDoc)
	cfg := writeDoc(t, "layout.toml", "spacing_x = 500\n")

	_, _, err := runCLI(t, "--config", cfg, "layout", in)
	require.NoError(t, err)

	doc, err := document.ReadFile(context.Background(), defaultOutputPath(in))
	require.NoError(t, err)
	assert.Equal(t, 500.0, itemIndex(doc)["parse"].X)
}

func TestLayoutCommandErrors(t *testing.T) {
	_, _, err := runCLI(t, "layout", filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "got %v", err)

	in := writeDoc(t, "etl.json", etlDoc)
	_, _, err = runCLI(t, "--config", filepath.Join(t.TempDir(), "nope.toml"), "layout", in)
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "got %v", err)
}

func TestLevelsCommand(t *testing.T) {
	in := writeDoc(t, "etl.json", etlDoc)

	out, _, err := runCLI(t, "levels", in)
	require.NoError(t, err)
	assert.Contains(t, out, "container etl")
	assert.Contains(t, out, "top level")
	assert.Contains(t, out, "fetch")
	assert.Contains(t, out, "store")
}

func TestValidateCommand(t *testing.T) {
	in := writeDoc(t, "etl.json", etlDoc)
	out, _, err := runCLI(t, "validate", in)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	cyclic := writeDoc(t, "cyclic.json", `{
  "items": [{"id": "a"}, {"id": "b"}],
  "edges": [{"from": "a", "to": "b"}, {"from": "b", "to": "a"}]
}`)
	out, _, err = runCLI(t, "validate", cyclic)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidDocument), "got %v", err)
	assert.Contains(t, out, "cycle")

	dangling := writeDoc(t, "dangling.json", `{"items": [{"id": "a"}], "edges": [{"from": "a", "to": "b"}]}`)
	_, _, err = runCLI(t, "validate", dangling)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidDocument), "got %v", err)
}

func TestSchemaCommand(t *testing.T) {
	out, _, err := runCLI(t, "schema")
	require.NoError(t, err)
	assert.Contains(t, out, "https://graphnest.dev/schemas/document.json")
}

func TestExampleDocuments(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"etl.json", "nested.toml"} {
		t.Run(name, func(t *testing.T) {
			out := filepath.Join(dir, defaultOutputPath(name))
			_, _, err := runCLI(t, "--config", "../../examples/layout.toml", "layout", "../../examples/"+name, "-o", out)
			require.NoError(t, err)

			doc, err := document.ReadFile(context.Background(), out)
			require.NoError(t, err)
			assert.NotEmpty(t, doc.Items)
		})
	}
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := runCLI(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "graphnest")
}

package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputName(t *testing.T) {
	tests := []struct {
		input, suffix, want string
	}{
		{"chat.json", ".md", "chat.md"},
		{"chat.json", "_converted.json", "chat_converted.json"},
		{"/exports/page.html", ".md", "page.md"},
		{"noext", ".md", "noext.md"},
		{"my.chat.export.json", ".md", "my.chat.export.md"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OutputName(tt.input, tt.suffix), tt.input)
	}
}

func TestWrite_AlongsideInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "chat.json")

	w, err := New("")
	require.NoError(t, err)

	path, err := w.Write(input, []byte("# Chat\n"), ".md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "chat.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Chat\n", string(data))
}

func TestWrite_OutputDir(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "out")

	w, err := New(out)
	require.NoError(t, err)
	assert.DirExists(t, out)

	path, err := w.Write("/somewhere/else/chat.json", []byte("[]"), "_converted.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "chat_converted.json"), path)
	assert.FileExists(t, path)
}

func TestWriteUnder_MirrorsTree(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	input := filepath.Join(root, "2026", "march", "chat.html")

	w, err := New(out)
	require.NoError(t, err)

	path, err := w.WriteUnder(root, input, []byte("x"), ".md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "2026", "march", "chat.md"), path)
	assert.FileExists(t, path)
}

func TestWriteUnder_NoOutputDir(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	w, err := New("")
	require.NoError(t, err)

	path, err := w.WriteUnder(root, filepath.Join(sub, "a.json"), []byte("x"), ".md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(sub, "a.md"), path)
}

func TestWrite_RefusesToOverwriteInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "chat.md")
	require.NoError(t, os.WriteFile(input, []byte(`[{"role":"user","content":"Hi"}]`), 0o644))

	w, err := New("")
	require.NoError(t, err)

	_, err = w.Write(input, []byte("# chat\n"), ".md")
	require.ErrorIs(t, err, ErrOverwritesInput)

	_, err = w.WriteUnder(dir, input, []byte("# chat\n"), ".md")
	require.ErrorIs(t, err, ErrOverwritesInput)

	data, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Equal(t, `[{"role":"user","content":"Hi"}]`, string(data))
}

func TestSamePath(t *testing.T) {
	assert.True(t, SamePath("dir/chat.md", "dir/./chat.md"))
	assert.True(t, SamePath("dir/chat.md", "dir/sub/../chat.md"))
	assert.False(t, SamePath("dir/chat.json", "dir/chat.md"))
}

func TestPathUnder(t *testing.T) {
	w := &Writer{OutputDir: "/out"}
	assert.Equal(t, filepath.Join("/out", "a", "chat.md"), w.PathUnder("/in", "/in/a/chat.json", ".md"))
	assert.Equal(t, filepath.Join("/out", "chat.md"), w.PathUnder("/in", "/elsewhere/chat.json", ".md"))

	alongside := &Writer{}
	assert.Equal(t, filepath.Join("/in", "a", "chat.md"), alongside.PathUnder("/in", "/in/a/chat.json", ".md"))
}

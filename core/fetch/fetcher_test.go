package fetch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chat.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"role":"user","content":"Hi"}]`), 0o644))

	res, err := New().Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, res.Path)
	assert.Equal(t, `[{"role":"user","content":"Hi"}]`, string(res.Data))
	assert.False(t, res.ModTime.IsZero())
}

func TestFetchStdin(t *testing.T) {
	f := NewWithStdin(strings.NewReader("<html></html>"))

	res, err := f.Fetch(context.Background(), StdinPath)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(res.Data))
	assert.True(t, res.ModTime.IsZero())
}

func TestFetchErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := New().Fetch(context.Background(), filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = New().Fetch(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = New().Fetch(ctx, filepath.Join(dir, "x.json"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchSizeLimit(t *testing.T) {
	f := &FileFetcher{stdin: strings.NewReader("0123456789"), maxSize: 4}

	_, err := f.Fetch(context.Background(), StdinPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds 4 bytes")
}

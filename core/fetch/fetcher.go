// Package fetch implements the Fetcher interface.
// It reads a conversation export from disk, or from stdin when the path is "-".
package fetch

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gaurav-prasanna/chatpipe/core"
)

// StdinPath is the path that selects standard input.
const StdinPath = "-"

// defaultMaxSize caps how much we read. Exports are small documents; anything
// larger is almost certainly the wrong file.
const defaultMaxSize = 64 << 20

// FileFetcher reads input files.
type FileFetcher struct {
	stdin   io.Reader
	maxSize int64
}

// New creates a FileFetcher reading stdin from os.Stdin.
func New() *FileFetcher {
	return &FileFetcher{stdin: os.Stdin, maxSize: defaultMaxSize}
}

// NewWithStdin creates a FileFetcher that reads "-" from r.
func NewWithStdin(r io.Reader) *FileFetcher {
	return &FileFetcher{stdin: r, maxSize: defaultMaxSize}
}

// Fetch reads the whole input at path.
func (f *FileFetcher) Fetch(ctx context.Context, path string) (*core.FetchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if path == StdinPath {
		data, err := f.readAll(f.stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return &core.FetchResult{Path: path, Data: data}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory (use --all to convert a directory)", path)
	}

	data, err := f.readAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return &core.FetchResult{
		Path:    path,
		Data:    data,
		ModTime: info.ModTime(),
	}, nil
}

func (f *FileFetcher) readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, f.maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > f.maxSize {
		return nil, fmt.Errorf("input exceeds %d bytes", f.maxSize)
	}
	return data, nil
}

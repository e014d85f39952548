// Package output handles file naming and writing for chatpipe outputs.
// An output keeps its input's base name and swaps the extension for the
// renderer's suffix: chat.json → chat.md or chat_converted.json.
// In batch mode, files mirror the input tree below the output directory.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOverwritesInput is returned when an output would land on its own input.
var ErrOverwritesInput = errors.New("output would overwrite input")

// Writer writes rendered output to disk.
type Writer struct {
	// OutputDir is where outputs go. Empty means next to each input file.
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, outputs are written alongside their inputs.
func New(outputDir string) (*Writer, error) {
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	return &Writer{OutputDir: outputDir}, nil
}

// Path returns where the output for inputPath goes.
func (w *Writer) Path(inputPath, suffix string) string {
	name := OutputName(inputPath, suffix)
	if w.OutputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), name)
	}
	return filepath.Join(w.OutputDir, name)
}

// Write writes data for a single input file.
func (w *Writer) Write(inputPath string, data []byte, suffix string) (string, error) {
	path := w.Path(inputPath, suffix)
	if err := writeFile(inputPath, path, data); err != nil {
		return "", err
	}
	return path, nil
}

// PathUnder returns where the output for an input found below root goes.
// Example: root/a/b/chat.json → OutputDir/a/b/chat.md
func (w *Writer) PathUnder(root, inputPath, suffix string) string {
	if w.OutputDir == "" {
		return w.Path(inputPath, suffix)
	}
	rel, err := filepath.Rel(root, inputPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return w.Path(inputPath, suffix)
	}
	return filepath.Join(w.OutputDir, filepath.Dir(rel), OutputName(inputPath, suffix))
}

// WriteUnder writes data for an input found below root, mirroring its
// relative directory inside OutputDir.
func (w *Writer) WriteUnder(root, inputPath string, data []byte, suffix string) (string, error) {
	path := w.PathUnder(root, inputPath, suffix)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}
	if err := writeFile(inputPath, path, data); err != nil {
		return "", err
	}
	return path, nil
}

// writeFile refuses to replace the input it was converted from. Detection
// ignores extensions, so chat.md holding JSON maps onto itself.
func writeFile(inputPath, path string, data []byte) error {
	if SamePath(inputPath, path) {
		return fmt.Errorf("%w: %s", ErrOverwritesInput, path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	return nil
}

// SamePath reports whether a and b name the same location once cleaned
// and made absolute.
func SamePath(a, b string) bool {
	return absPath(a) == absPath(b)
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}

// OutputName swaps the extension of inputPath's base name for suffix.
func OutputName(inputPath, suffix string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + suffix
}

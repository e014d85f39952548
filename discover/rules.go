// Package discover: file filtering rules.
// Decides which files below a batch root are conversation exports worth
// converting, and normalizes paths for deduplication.
package discover

import (
	"path/filepath"
	"strings"
)

// candidateExtensions are the file extensions batch mode picks up. Format
// detection itself never looks at the extension; this only narrows the walk.
var candidateExtensions = map[string]bool{
	".json": true,
	".html": true,
	".htm":  true,
}

// ConvertedSuffix marks files we wrote ourselves in workbench mode.
const ConvertedSuffix = "_converted.json"

// IsHidden reports whether a file or directory name is a dotfile.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// IsCandidate reports whether path looks like a conversation export.
// Previous workbench outputs are skipped so reruns don't convert them again.
func IsCandidate(path string) bool {
	name := filepath.Base(path)
	if IsHidden(name) {
		return false
	}
	if strings.HasSuffix(strings.ToLower(name), ConvertedSuffix) {
		return false
	}
	return candidateExtensions[strings.ToLower(filepath.Ext(name))]
}

// NormalizePath cleans a path and makes it absolute when possible so the
// same file reached two ways is only converted once.
func NormalizePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
